package entities

import (
	"time"

	"todo-server/internal/domain/task"
)

// Task represents the database schema for todo items.
type Task struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	UserID      uint    `gorm:"index:idx_task_user_completed;not null"`
	Title       string  `gorm:"type:varchar(200);not null"`
	Description *string `gorm:"type:text"`
	Completed   bool    `gorm:"index:idx_task_user_completed;not null;default:false"`
}

// TableName specifies the table name for Task.
func (Task) TableName() string {
	return "tasks"
}

// EtoD converts the database entity to the domain model.
func (t *Task) EtoD() *task.Task {
	return &task.Task{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewSchemaTask creates a database entity from the domain model.
func NewSchemaTask(t *task.Task) *Task {
	return &Task{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
