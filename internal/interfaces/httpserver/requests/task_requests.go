package requests

// CreateTaskRequest creates a task. Title validation happens in the task
// service so the REST surface and the chat tools reject input the same way.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// UpdateTaskRequest is a partial update. Nil fields are left untouched; a
// present-but-empty description clears the stored one.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}
