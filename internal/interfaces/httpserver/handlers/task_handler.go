package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"todo-server/internal/domain/task"
	"todo-server/internal/infrastructure/auth"
	"todo-server/internal/interfaces/httpserver/requests"
	"todo-server/internal/interfaces/httpserver/responses"
	"todo-server/internal/utils/platformerrors"
)

// TaskHandler exposes the task CRUD endpoints. Every route is scoped to the
// authenticated account; a task owned by someone else is indistinguishable
// from a missing one.
type TaskHandler struct {
	tasks *task.Service
	log   zerolog.Logger
}

// NewTaskHandler constructs the handler.
func NewTaskHandler(tasks *task.Service, log zerolog.Logger) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
		log:   log.With().Str("handler", "task").Logger(),
	}
}

// List handles GET /api/tasks
// @Summary List the account's tasks
// @Description Returns tasks newest first, optionally narrowed by completion state
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter: all, pending or completed" default(all)
// @Success 200 {array} responses.TaskPayload
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /api/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "0c1d2e3f-4a5b-4c6d-7e8f-9a0b1c2d3e4f")
		return
	}

	filter := task.StatusFilter(c.DefaultQuery("status", string(task.StatusAll)))
	listed, err := h.tasks.List(c.Request.Context(), principal.ID, filter)
	if err != nil {
		responses.HandleError(c, err, "failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, responses.FromTasks(listed, principal.PublicID))
}

// Create handles POST /api/tasks
// @Summary Create a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body requests.CreateTaskRequest true "Task fields"
// @Success 201 {object} responses.TaskPayload
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "1d2e3f4a-5b6c-4d7e-8f9a-0b1c2d3e4f5a")
		return
	}

	var req requests.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.tasks.Create(c.Request.Context(), principal.ID, req.Title, req.Description)
	if err != nil {
		responses.HandleError(c, err, "failed to create task")
		return
	}

	c.JSON(http.StatusCreated, responses.FromTask(created, principal.PublicID))
}

// Get handles GET /api/tasks/:task_id
// @Summary Get one task
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param task_id path int true "Task ID"
// @Success 200 {object} responses.TaskPayload
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/tasks/{task_id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "2e3f4a5b-6c7d-4e8f-9a0b-1c2d3e4f5a6b")
		return
	}

	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	t, err := h.tasks.Get(c.Request.Context(), principal.ID, taskID)
	if err != nil {
		h.respondTaskError(c, err, taskID, "failed to get task")
		return
	}

	c.JSON(http.StatusOK, responses.FromTask(t, principal.PublicID))
}

// Update handles PUT /api/tasks/:task_id
// @Summary Update a task
// @Description Applies the provided fields; omitted fields keep their value
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param task_id path int true "Task ID"
// @Param request body requests.UpdateTaskRequest true "Fields to change"
// @Success 200 {object} responses.TaskPayload
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/tasks/{task_id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "3f4a5b6c-7d8e-4f9a-0b1c-2d3e4f5a6b7c")
		return
	}

	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	var req requests.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.tasks.Update(c.Request.Context(), principal.ID, taskID, task.UpdateFields{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		h.respondTaskError(c, err, taskID, "failed to update task")
		return
	}

	c.JSON(http.StatusOK, responses.FromTask(updated, principal.PublicID))
}

// Delete handles DELETE /api/tasks/:task_id
// @Summary Delete a task
// @Tags Tasks
// @Security BearerAuth
// @Param task_id path int true "Task ID"
// @Success 204 "deleted"
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/tasks/{task_id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "4a5b6c7d-8e9f-4a0b-1c2d-3e4f5a6b7c8d")
		return
	}

	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	if _, err := h.tasks.Delete(c.Request.Context(), principal.ID, taskID); err != nil {
		h.respondTaskError(c, err, taskID, "failed to delete task")
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleComplete handles PATCH /api/tasks/:task_id/complete
// @Summary Toggle a task's completion flag
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param task_id path int true "Task ID"
// @Success 200 {object} responses.TaskPayload
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/tasks/{task_id}/complete [patch]
func (h *TaskHandler) ToggleComplete(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "5b6c7d8e-9f0a-4b1c-2d3e-4f5a6b7c8d9e")
		return
	}

	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	toggled, err := h.tasks.ToggleComplete(c.Request.Context(), principal.ID, taskID)
	if err != nil {
		h.respondTaskError(c, err, taskID, "failed to toggle task")
		return
	}

	c.JSON(http.StatusOK, responses.FromTask(toggled, principal.PublicID))
}

func (h *TaskHandler) taskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("task_id"), 10, 32)
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "task id must be a positive integer", "6c7d8e9f-0a1b-4c2d-3e4f-5a6b7c8d9e0f")
		return 0, false
	}
	return uint(id), true
}

// respondTaskError hides ownership: a task that belongs to someone else is
// reported exactly like a missing one.
func (h *TaskHandler) respondTaskError(c *gin.Context, err error, taskID uint, message string) {
	if platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotFound, fmt.Sprintf("task %d not found", taskID), "7d8e9f0a-1b2c-4d3e-4f5a-6b7c8d9e0f1a")
		return
	}
	responses.HandleError(c, err, message)
}
