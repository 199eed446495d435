package task

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "todo-server/internal/domain/task"
	"todo-server/internal/infrastructure/database/entities"
	"todo-server/internal/utils/platformerrors"
)

// PostgresRepository provides persistence for tasks.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new task record and backfills generated fields.
func (r *PostgresRepository) Create(ctx context.Context, t *domain.Task) error {
	entity := entities.NewSchemaTask(t)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create task",
			err,
			"6f7a8b9c-0d1e-4f2a-3b4c-5d6e7f8a9b0c",
		)
	}
	*t = *entity.EtoD()
	return nil
}

// FindByID fetches a task by its internal ID.
func (r *PostgresRepository) FindByID(ctx context.Context, id uint) (*domain.Task, error) {
	var entity entities.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				"task not found",
				err,
				"7a8b9c0d-1e2f-4a3b-4c5d-6e7f8a9b0c1d",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find task by id",
			err,
			"8b9c0d1e-2f3a-4b4c-5d6e-7f8a9b0c1d2e",
		)
	}
	return entity.EtoD(), nil
}

// ListByUser fetches the user's tasks newest-first, narrowed by the
// completion filter.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID uint, filter domain.StatusFilter) ([]domain.Task, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	switch filter {
	case domain.StatusPending:
		query = query.Where("completed = ?", false)
	case domain.StatusCompleted:
		query = query.Where("completed = ?", true)
	}

	var rows []entities.Task
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list tasks",
			err,
			"9c0d1e2f-3a4b-4c5d-6e7f-8a9b0c1d2e3f",
		)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for i := range rows {
		tasks = append(tasks, *rows[i].EtoD())
	}
	return tasks, nil
}

// Update persists the full task record. Save writes every column, so a
// cleared description reaches the database as NULL.
func (r *PostgresRepository) Update(ctx context.Context, t *domain.Task) error {
	entity := entities.NewSchemaTask(t)
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update task",
			err,
			"0d1e2f3a-4b5c-4d6e-7f8a-9b0c1d2e3f4a",
		)
	}
	*t = *entity.EtoD()
	return nil
}

// Delete removes the task record.
func (r *PostgresRepository) Delete(ctx context.Context, t *domain.Task) error {
	if err := r.db.WithContext(ctx).Delete(&entities.Task{}, t.ID).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete task",
			err,
			"2f3a4b5c-6d7e-4f8a-9b0c-1d2e3f4a5b6c",
		)
	}
	return nil
}
