package user

import "time"

// User represents a registered account.
type User struct {
	ID           uint      `json:"-"`
	PublicID     string    `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

// NewUser builds a user with the given public identifier and hashed password.
func NewUser(publicID, email, passwordHash string, name *string) *User {
	now := time.Now()
	return &User{
		PublicID:     publicID,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
