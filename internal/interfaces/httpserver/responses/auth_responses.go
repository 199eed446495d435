package responses

import (
	"time"

	"todo-server/internal/domain/user"
)

// UserPayload is the public representation of an account. ID is the opaque
// public identifier, never the database row id.
type UserPayload struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenPayload carries an issued bearer token together with the account it
// belongs to.
type TokenPayload struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresAt   time.Time   `json:"expires_at"`
	User        UserPayload `json:"user"`
}

// FromUser maps a domain account to its payload.
func FromUser(account *user.User) UserPayload {
	return UserPayload{
		ID:        account.PublicID,
		Email:     account.Email,
		Name:      account.Name,
		CreatedAt: account.CreatedAt,
	}
}

// NewTokenPayload assembles the login/signup response.
func NewTokenPayload(token string, expiresAt time.Time, account *user.User) TokenPayload {
	return TokenPayload{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        FromUser(account),
	}
}
