package task

import "time"

// Validation limits shared by the REST surface and the chat tools.
const (
	TitleMaxLen       = 200
	DescriptionMaxLen = 1000
)

// StatusFilter narrows a task listing by completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
)

// Valid reports whether the filter is one of the supported values.
func (f StatusFilter) Valid() bool {
	switch f {
	case StatusAll, StatusPending, StatusCompleted:
		return true
	}
	return false
}

// Task represents a single todo item owned by a user.
type Task struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"-"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateFields carries a partial update. Nil fields are left untouched.
type UpdateFields struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Empty reports whether the update carries no changes.
func (f UpdateFields) Empty() bool {
	return f.Title == nil && f.Description == nil && f.Completed == nil
}
