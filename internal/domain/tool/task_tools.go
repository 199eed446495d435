package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"todo-server/internal/domain/task"
	"todo-server/internal/utils/platformerrors"
)

// RegisterTaskTools installs the five task operations on the registry.
func RegisterTaskTools(reg *Registry, tasks *task.Service) error {
	handlers := []Handler{
		&addTaskTool{tasks: tasks},
		&listTasksTool{tasks: tasks},
		&completeTaskTool{tasks: tasks},
		&deleteTaskTool{tasks: tasks},
		&updateTaskTool{tasks: tasks},
	}
	for _, h := range handlers {
		if err := reg.Register(h); err != nil {
			return err
		}
	}
	return nil
}

type addTaskTool struct {
	tasks *task.Service
}

func (t *addTaskTool) Definition() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        "add_task",
			Description: "Create a new todo task for the user",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{
						"type":        "string",
						"description": "Task title (1-200 characters)",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "Task description (optional, max 1000 characters)",
					},
				},
				"required": []string{"title"},
			},
		},
	}
}

func (t *addTaskTool) Execute(ctx context.Context, userID uint, raw json.RawMessage) Result {
	var args struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return invalidArguments(err)
	}

	created, err := t.tasks.Create(ctx, userID, args.Title, args.Description)
	if err != nil {
		return failureResult(err, "Failed to create task")
	}

	return Result{
		"task_id":     created.ID,
		"status":      StatusCreated,
		"title":       created.Title,
		"description": created.Description,
		"completed":   created.Completed,
		"created_at":  created.CreatedAt.Format(time.RFC3339),
	}
}

type listTasksTool struct {
	tasks *task.Service
}

func (t *listTasksTool) Definition() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        "list_tasks",
			Description: "Retrieve user's tasks with optional status filter",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"status": map[string]any{
						"type":        "string",
						"enum":        []string{"all", "pending", "completed"},
						"description": "Filter by status: 'all', 'pending', or 'completed'",
					},
				},
			},
		},
	}
}

func (t *listTasksTool) Execute(ctx context.Context, userID uint, raw json.RawMessage) Result {
	var args struct {
		Status string `json:"status"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return invalidArguments(err)
	}

	tasks, err := t.tasks.List(ctx, userID, task.StatusFilter(args.Status))
	if err != nil {
		return failureResult(err, "Failed to list tasks")
	}

	entries := make([]map[string]any, 0, len(tasks))
	for _, item := range tasks {
		entries = append(entries, map[string]any{
			"id":          item.ID,
			"title":       item.Title,
			"description": item.Description,
			"completed":   item.Completed,
			"created_at":  item.CreatedAt.Format(time.RFC3339),
			"updated_at":  item.UpdatedAt.Format(time.RFC3339),
		})
	}

	return Result{
		"status": StatusSuccess,
		"count":  len(tasks),
		"tasks":  entries,
	}
}

type completeTaskTool struct {
	tasks *task.Service
}

func (t *completeTaskTool) Definition() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        "complete_task",
			Description: "Toggle task completion status",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"task_id": map[string]any{
						"type":        "integer",
						"description": "Task ID to complete",
					},
				},
				"required": []string{"task_id"},
			},
		},
	}
}

func (t *completeTaskTool) Execute(ctx context.Context, userID uint, raw json.RawMessage) Result {
	var args struct {
		TaskID uint `json:"task_id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return invalidArguments(err)
	}

	toggled, err := t.tasks.ToggleComplete(ctx, userID, args.TaskID)
	if err != nil {
		return failureResult(err, "Failed to complete task")
	}

	status := StatusPending
	if toggled.Completed {
		status = StatusCompleted
	}

	return Result{
		"task_id":    toggled.ID,
		"status":     status,
		"title":      toggled.Title,
		"completed":  toggled.Completed,
		"updated_at": toggled.UpdatedAt.Format(time.RFC3339),
	}
}

type deleteTaskTool struct {
	tasks *task.Service
}

func (t *deleteTaskTool) Definition() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        "delete_task",
			Description: "Remove a task from the list",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"task_id": map[string]any{
						"type":        "integer",
						"description": "Task ID to delete",
					},
				},
				"required": []string{"task_id"},
			},
		},
	}
}

func (t *deleteTaskTool) Execute(ctx context.Context, userID uint, raw json.RawMessage) Result {
	var args struct {
		TaskID uint `json:"task_id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return invalidArguments(err)
	}

	deleted, err := t.tasks.Delete(ctx, userID, args.TaskID)
	if err != nil {
		return failureResult(err, "Failed to delete task")
	}

	return Result{
		"task_id": deleted.ID,
		"title":   deleted.Title,
		"status":  StatusDeleted,
	}
}

type updateTaskTool struct {
	tasks *task.Service
}

func (t *updateTaskTool) Definition() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        "update_task",
			Description: "Modify task title or description",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"task_id": map[string]any{
						"type":        "integer",
						"description": "Task ID to update",
					},
					"title": map[string]any{
						"type":        "string",
						"description": "New task title (optional)",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "New task description (optional)",
					},
				},
				"required": []string{"task_id"},
			},
		},
	}
}

func (t *updateTaskTool) Execute(ctx context.Context, userID uint, raw json.RawMessage) Result {
	var args struct {
		TaskID      uint    `json:"task_id"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return invalidArguments(err)
	}

	fields := task.UpdateFields{
		Title:       args.Title,
		Description: args.Description,
	}
	if fields.Empty() {
		return ErrorResult(StatusValidationError, "At least one field (title or description) must be provided")
	}

	updated, err := t.tasks.Update(ctx, userID, args.TaskID, fields)
	if err != nil {
		return failureResult(err, "Failed to update task")
	}

	return Result{
		"task_id":     updated.ID,
		"status":      StatusUpdated,
		"title":       updated.Title,
		"description": updated.Description,
		"updated_at":  updated.UpdatedAt.Format(time.RFC3339),
	}
}

func decodeArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func invalidArguments(err error) Result {
	return ErrorResult(StatusValidationError, fmt.Sprintf("Invalid arguments: %v", err))
}

// failureResult maps a task service error onto the tool result contract.
// A task owned by another user is reported as unauthorized, a missing one
// as not found.
func failureResult(err error, action string) Result {
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		switch platformErr.Type {
		case platformerrors.ErrorTypeValidation:
			return ErrorResult(StatusValidationError, platformErr.Message)
		case platformerrors.ErrorTypeNotFound:
			return ErrorResult(StatusNotFound, platformErr.Message)
		case platformerrors.ErrorTypeForbidden:
			return ErrorResult(StatusUnauthorized, "Unauthorized: task belongs to another user")
		}
		return ErrorResult(StatusError, fmt.Sprintf("%s: %s", action, platformErr.Message))
	}
	return ErrorResult(StatusError, fmt.Sprintf("%s: %v", action, err))
}
