package responses

import (
	"time"

	"todo-server/internal/domain/task"
)

// TaskPayload is the task representation returned by the REST surface.
// UserID carries the owner's public id.
type TaskPayload struct {
	ID          uint      `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FromTask maps a domain task to its payload.
func FromTask(t *task.Task, ownerID string) TaskPayload {
	return TaskPayload{
		ID:          t.ID,
		UserID:      ownerID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// FromTasks maps a task listing, preserving order.
func FromTasks(tasks []task.Task, ownerID string) []TaskPayload {
	payloads := make([]TaskPayload, 0, len(tasks))
	for i := range tasks {
		payloads = append(payloads, FromTask(&tasks[i], ownerID))
	}
	return payloads
}
