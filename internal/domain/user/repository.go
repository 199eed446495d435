package user

import "context"

// Repository exposes persistence operations for user accounts.
type Repository interface {
	Create(ctx context.Context, account *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPublicID(ctx context.Context, publicID string) (*User, error)
}
