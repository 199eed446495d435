package task_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-server/internal/domain/task"
	"todo-server/internal/utils/platformerrors"
)

// memoryRepository keeps tasks in a map and mimics the not-found contract
// of the real store.
type memoryRepository struct {
	mu     sync.Mutex
	nextID uint
	tasks  map[uint]task.Task
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{tasks: make(map[uint]task.Task)}
}

func (r *memoryRepository) Create(_ context.Context, t *task.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	t.ID = r.nextID
	t.CreatedAt = time.Now().Add(time.Duration(r.nextID) * time.Millisecond)
	t.UpdatedAt = t.CreatedAt
	r.tasks[t.ID] = *t
	return nil
}

func (r *memoryRepository) FindByID(ctx context.Context, id uint) (*task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tasks[id]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "task not found", nil, "mem-find")
	}
	return &stored, nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID uint, filter task.StatusFilter) ([]task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	listed := make([]task.Task, 0)
	for _, t := range r.tasks {
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

func (r *memoryRepository) Update(ctx context.Context, t *task.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[t.ID]; !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "task not found", nil, "mem-update")
	}
	t.UpdatedAt = time.Now()
	r.tasks[t.ID] = *t
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, t *task.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, t.ID)
	return nil
}

func newTestService() *task.Service {
	return task.NewService(newMemoryRepository(), zerolog.Nop())
}

func strPtr(s string) *string { return &s }

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description *string
		wantMessage string
	}{
		{"empty title", "", nil, "title is required and cannot be empty"},
		{"whitespace title", "   ", nil, "title is required and cannot be empty"},
		{"title too long", strings.Repeat("x", task.TitleMaxLen+1), nil, "title must be 200 characters or less"},
		{"description too long", "ok", strPtr(strings.Repeat("y", task.DescriptionMaxLen+1)), "description must be 1000 characters or less"},
	}

	svc := newTestService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 1, tt.title, tt.description)
			require.Error(t, err)
			assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

			var platformErr *platformerrors.PlatformError
			require.ErrorAs(t, err, &platformErr)
			assert.Equal(t, tt.wantMessage, platformErr.Message)
		})
	}
}

func TestCreateNormalizesInput(t *testing.T) {
	svc := newTestService()

	created, err := svc.Create(context.Background(), 1, "  Buy milk  ", strPtr("   "))
	require.NoError(t, err)

	assert.Equal(t, "Buy milk", created.Title)
	assert.Nil(t, created.Description, "blank description should be stored as absent")
	assert.False(t, created.Completed)
	assert.NotZero(t, created.ID)
}

func TestListFilterPartition(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		_, err := svc.Create(ctx, 1, title, nil)
		require.NoError(t, err)
	}
	_, err := svc.ToggleComplete(ctx, 1, 2)
	require.NoError(t, err)

	all, err := svc.List(ctx, 1, task.StatusAll)
	require.NoError(t, err)
	pending, err := svc.List(ctx, 1, task.StatusPending)
	require.NoError(t, err)
	completed, err := svc.List(ctx, 1, task.StatusCompleted)
	require.NoError(t, err)

	assert.Len(t, all, 3)
	assert.Len(t, pending, 2)
	assert.Len(t, completed, 1)
	assert.Equal(t, len(all), len(pending)+len(completed), "pending and completed must partition the full list")

	empty, err := svc.List(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, empty, 3, "empty filter defaults to all")

	_, err = svc.List(ctx, 1, "done")
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestListNewestFirst(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, 1, title, nil)
		require.NoError(t, err)
	}

	listed, err := svc.List(ctx, 1, task.StatusAll)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "third", listed[0].Title)
	assert.Equal(t, "first", listed[2].Title)
}

func TestGetOwnership(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "mine", nil)
	require.NoError(t, err)

	got, err := svc.Get(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(ctx, 2, created.ID)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden))

	_, err = svc.Get(ctx, 1, 99)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	var platformErr *platformerrors.PlatformError
	require.ErrorAs(t, err, &platformErr)
	assert.Equal(t, "task 99 not found", platformErr.Message)
}

func TestUpdatePartialFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "original", strPtr("keep me"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, 1, created.ID, task.UpdateFields{Title: strPtr("renamed")})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "keep me", *updated.Description)

	updated, err = svc.Update(ctx, 1, created.ID, task.UpdateFields{Description: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.Description, "blank description clears the stored one")

	completed := true
	updated, err = svc.Update(ctx, 1, created.ID, task.UpdateFields{Completed: &completed})
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	// An empty update must not change anything visible.
	unchanged, err := svc.Update(ctx, 1, created.ID, task.UpdateFields{})
	require.NoError(t, err)
	assert.Equal(t, "renamed", unchanged.Title)
	assert.True(t, unchanged.Completed)
}

func TestUpdateRejectsInvalidTitle(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "fine", nil)
	require.NoError(t, err)

	_, err = svc.Update(ctx, 1, created.ID, task.UpdateFields{Title: strPtr("  ")})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	got, err := svc.Get(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "fine", got.Title, "failed update must leave the task untouched")
}

func TestToggleCompleteInvolution(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "flip me", nil)
	require.NoError(t, err)
	require.False(t, created.Completed)

	once, err := svc.ToggleComplete(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.True(t, once.Completed)

	twice, err := svc.ToggleComplete(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.False(t, twice.Completed, "toggling twice must restore the original state")
}

func TestDeleteRemovesTask(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "ephemeral", nil)
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ephemeral", deleted.Title)

	_, err = svc.Get(ctx, 1, created.ID)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	_, err = svc.Delete(ctx, 2, created.ID)
	require.Error(t, err, "deleting an already removed task must fail")
}
