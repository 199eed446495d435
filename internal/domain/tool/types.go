package tool

import (
	"context"
	"encoding/json"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ExecutionStatus classifies the outcome of one tool invocation.
type ExecutionStatus string

const (
	ExecutionStatusCompleted ExecutionStatus = "completed"
	ExecutionStatusFailed    ExecutionStatus = "failed"
)

// Status values tools report inside their result payload. The model sees
// these verbatim and phrases its reply from them.
const (
	StatusCreated         = "created"
	StatusSuccess         = "success"
	StatusCompleted       = "completed"
	StatusPending         = "pending"
	StatusDeleted         = "deleted"
	StatusUpdated         = "updated"
	StatusValidationError = "validation_error"
	StatusNotFound        = "not_found"
	StatusUnauthorized    = "unauthorized"
	StatusError           = "error"
)

// Result is the JSON document a tool reports back to the model.
type Result map[string]any

// ErrorResult shapes a failure reply with the given status.
func ErrorResult(status, message string) Result {
	return Result{"error": message, "status": status}
}

// Status returns the result's status field, or "" when absent.
func (r Result) Status() string {
	s, _ := r["status"].(string)
	return s
}

// Failed reports whether the result carries a failure status.
func (r Result) Failed() bool {
	switch r.Status() {
	case StatusValidationError, StatusNotFound, StatusUnauthorized, StatusError:
		return true
	}
	return false
}

// Handler implements one named operation the model can invoke on the
// user's behalf. Execute never returns a Go error: every failure mode is
// encoded in the Result so the orchestration loop can continue.
type Handler interface {
	Definition() openai.Tool
	Execute(ctx context.Context, userID uint, args json.RawMessage) Result
}

// Execution records one tool invocation made during a chat turn.
// Arguments holds the parsed call arguments with the acting user's ID
// injected, matching what the tool actually ran with.
type Execution struct {
	CallID    string
	ToolName  string
	Arguments map[string]any
	Result    Result
	Status    ExecutionStatus
	Order     int
	Duration  time.Duration
}
