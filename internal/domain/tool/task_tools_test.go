package tool

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-server/internal/domain/task"
	"todo-server/internal/utils/platformerrors"
)

// taskStore is an in-memory task.Repository honoring the same not-found
// contract as the real one.
type taskStore struct {
	mu     sync.Mutex
	nextID uint
	tasks  map[uint]task.Task
}

func newTaskStore() *taskStore {
	return &taskStore{tasks: make(map[uint]task.Task)}
}

func (s *taskStore) Create(_ context.Context, t *task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t.ID = s.nextID
	t.CreatedAt = time.Now().Add(time.Duration(s.nextID) * time.Millisecond)
	t.UpdatedAt = t.CreatedAt
	s.tasks[t.ID] = *t
	return nil
}

func (s *taskStore) FindByID(ctx context.Context, id uint) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.tasks[id]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "task not found", nil, "store-find")
	}
	return &stored, nil
}

func (s *taskStore) ListByUser(_ context.Context, userID uint, filter task.StatusFilter) ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	listed := make([]task.Task, 0)
	for _, t := range s.tasks {
		if t.UserID != userID {
			continue
		}
		if filter == task.StatusPending && t.Completed {
			continue
		}
		if filter == task.StatusCompleted && !t.Completed {
			continue
		}
		listed = append(listed, t)
	}
	sort.Slice(listed, func(i, j int) bool { return listed[i].CreatedAt.After(listed[j].CreatedAt) })
	return listed, nil
}

func (s *taskStore) Update(ctx context.Context, t *task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[t.ID]; !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "task not found", nil, "store-update")
	}
	t.UpdatedAt = time.Now()
	s.tasks[t.ID] = *t
	return nil
}

func (s *taskStore) Delete(_ context.Context, t *task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, t.ID)
	return nil
}

func newTaskToolEnv(t *testing.T) (*Registry, *task.Service) {
	t.Helper()
	registry := NewRegistry()
	service := task.NewService(newTaskStore(), zerolog.Nop())
	require.NoError(t, RegisterTaskTools(registry, service))
	return registry, service
}

func execute(t *testing.T, registry *Registry, userID uint, name, args string) Result {
	t.Helper()
	handler, ok := registry.Get(name)
	require.True(t, ok, "tool %s not registered", name)
	return handler.Execute(context.Background(), userID, json.RawMessage(args))
}

func TestRegisterTaskTools(t *testing.T) {
	registry, _ := newTaskToolEnv(t)

	assert.Equal(t, []string{"add_task", "list_tasks", "complete_task", "delete_task", "update_task"}, registry.Names())

	for _, def := range registry.Definitions() {
		require.NotNil(t, def.Function)
		assert.NotEmpty(t, def.Function.Description)
	}

	// Double registration of the same name must be rejected.
	service := task.NewService(newTaskStore(), zerolog.Nop())
	assert.Error(t, RegisterTaskTools(registry, service))
}

func TestAddTaskTool(t *testing.T) {
	registry, service := newTaskToolEnv(t)

	result := execute(t, registry, 1, "add_task", `{"title":"Buy milk","description":"2 liters"}`)
	assert.Equal(t, StatusCreated, result.Status())
	assert.Equal(t, "Buy milk", result["title"])
	assert.Equal(t, uint(1), result["task_id"])
	assert.False(t, result.Failed())

	listed, err := service.List(context.Background(), 1, task.StatusAll)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Buy milk", listed[0].Title)
}

func TestAddTaskToolValidation(t *testing.T) {
	registry, _ := newTaskToolEnv(t)

	result := execute(t, registry, 1, "add_task", `{"title":"   "}`)
	assert.Equal(t, StatusValidationError, result.Status())
	assert.Equal(t, "title is required and cannot be empty", result["error"])
	assert.True(t, result.Failed())

	result = execute(t, registry, 1, "add_task", `{"title":`)
	assert.Equal(t, StatusValidationError, result.Status())
	assert.Contains(t, result["error"], "Invalid arguments")
}

func TestListTasksToolPartition(t *testing.T) {
	registry, _ := newTaskToolEnv(t)

	for _, title := range []string{"one", "two", "three"} {
		result := execute(t, registry, 1, "add_task", `{"title":"`+title+`"}`)
		require.Equal(t, StatusCreated, result.Status())
	}
	result := execute(t, registry, 1, "complete_task", `{"task_id":2}`)
	require.Equal(t, StatusCompleted, result.Status())

	all := execute(t, registry, 1, "list_tasks", `{"status":"all"}`)
	pending := execute(t, registry, 1, "list_tasks", `{"status":"pending"}`)
	completed := execute(t, registry, 1, "list_tasks", `{"status":"completed"}`)

	assert.Equal(t, 3, all["count"])
	assert.Equal(t, 2, pending["count"])
	assert.Equal(t, 1, completed["count"])

	// Omitted status behaves like "all".
	unfiltered := execute(t, registry, 1, "list_tasks", `{}`)
	assert.Equal(t, 3, unfiltered["count"])

	entries, ok := all["tasks"].([]map[string]any)
	require.True(t, ok)
	assert.Len(t, entries, 3)
}

func TestListTasksToolInvalidFilter(t *testing.T) {
	registry, _ := newTaskToolEnv(t)

	result := execute(t, registry, 1, "list_tasks", `{"status":"done"}`)
	assert.Equal(t, StatusValidationError, result.Status())
	assert.Equal(t, "status must be 'all', 'pending', or 'completed'", result["error"])
}

func TestCompleteTaskToolToggleTwice(t *testing.T) {
	registry, _ := newTaskToolEnv(t)

	require.Equal(t, StatusCreated, execute(t, registry, 1, "add_task", `{"title":"flip"}`).Status())

	first := execute(t, registry, 1, "complete_task", `{"task_id":1}`)
	assert.Equal(t, StatusCompleted, first.Status())
	assert.Equal(t, true, first["completed"])

	second := execute(t, registry, 1, "complete_task", `{"task_id":1}`)
	assert.Equal(t, StatusPending, second.Status())
	assert.Equal(t, false, second["completed"])
}

func TestCompleteTaskToolNotFound(t *testing.T) {
	registry, _ := newTaskToolEnv(t)

	result := execute(t, registry, 1, "complete_task", `{"task_id":42}`)
	assert.Equal(t, StatusNotFound, result.Status())
	assert.Equal(t, "task 42 not found", result["error"])
}

func TestUpdateTaskToolRequiresAField(t *testing.T) {
	registry, _ := newTaskToolEnv(t)

	require.Equal(t, StatusCreated, execute(t, registry, 1, "add_task", `{"title":"thing"}`).Status())

	result := execute(t, registry, 1, "update_task", `{"task_id":1}`)
	assert.Equal(t, StatusValidationError, result.Status())
	assert.Equal(t, "At least one field (title or description) must be provided", result["error"])
}

func TestUpdateTaskToolUpdates(t *testing.T) {
	registry, service := newTaskToolEnv(t)

	require.Equal(t, StatusCreated, execute(t, registry, 1, "add_task", `{"title":"old"}`).Status())

	result := execute(t, registry, 1, "update_task", `{"task_id":1,"title":"new","description":"details"}`)
	assert.Equal(t, StatusUpdated, result.Status())
	assert.Equal(t, "new", result["title"])

	stored, err := service.Get(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "new", stored.Title)
	require.NotNil(t, stored.Description)
	assert.Equal(t, "details", *stored.Description)
}

func TestTaskToolsCrossUser(t *testing.T) {
	registry, _ := newTaskToolEnv(t)

	require.Equal(t, StatusCreated, execute(t, registry, 1, "add_task", `{"title":"private"}`).Status())

	tests := []struct {
		tool string
		args string
	}{
		{"complete_task", `{"task_id":1}`},
		{"delete_task", `{"task_id":1}`},
		{"update_task", `{"task_id":1,"title":"stolen"}`},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			result := execute(t, registry, 2, tt.tool, tt.args)
			assert.Equal(t, StatusUnauthorized, result.Status())
			assert.Equal(t, "Unauthorized: task belongs to another user", result["error"])
		})
	}

	// The owner's list is unaffected by the rejected calls.
	owned := execute(t, registry, 1, "list_tasks", `{}`)
	assert.Equal(t, 1, owned["count"])
	foreign := execute(t, registry, 2, "list_tasks", `{}`)
	assert.Equal(t, 0, foreign["count"])
}

func TestDeleteTaskTool(t *testing.T) {
	registry, _ := newTaskToolEnv(t)

	require.Equal(t, StatusCreated, execute(t, registry, 1, "add_task", `{"title":"gone soon"}`).Status())

	result := execute(t, registry, 1, "delete_task", `{"task_id":1}`)
	assert.Equal(t, StatusDeleted, result.Status())
	assert.Equal(t, "gone soon", result["title"])

	again := execute(t, registry, 1, "delete_task", `{"task_id":1}`)
	assert.Equal(t, StatusNotFound, again.Status())
	assert.Equal(t, "task 1 not found", again["error"])
}
