package entities

import (
	"time"

	"todo-server/internal/domain/user"
)

// User represents the database schema for user accounts.
type User struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PublicID     string  `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string  `gorm:"type:varchar(100);not null"`
	Name         *string `gorm:"type:varchar(100)"`
}

// TableName specifies the table name for User.
func (User) TableName() string {
	return "users"
}

// EtoD converts the database entity to the domain model.
func (u *User) EtoD() *user.User {
	return &user.User{
		ID:           u.ID,
		PublicID:     u.PublicID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// NewSchemaUser creates a database entity from the domain model.
func NewSchemaUser(u *user.User) *User {
	return &User{
		ID:           u.ID,
		PublicID:     u.PublicID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
