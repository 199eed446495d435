package task

import "context"

// Repository exposes persistence operations for tasks.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id uint) (*Task, error)
	ListByUser(ctx context.Context, userID uint, filter StatusFilter) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, t *Task) error
}
