package conversation

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "todo-server/internal/domain/conversation"
	"todo-server/internal/infrastructure/database/entities"
	"todo-server/internal/utils/platformerrors"
)

// Repository persists conversation metadata.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a conversation repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the conversation record.
func (r *Repository) Create(ctx context.Context, conv *domain.Conversation) error {
	entity := entities.NewSchemaConversation(conv)

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create conversation",
			err,
			"3a4b5c6d-7e8f-4a9b-0c1d-2e3f4a5b6c7d",
		)
	}

	conv.ID = entity.ID
	conv.CreatedAt = entity.CreatedAt
	conv.UpdatedAt = entity.UpdatedAt
	return nil
}

// FindByID fetches a conversation by its internal ID.
func (r *Repository) FindByID(ctx context.Context, id uint) (*domain.Conversation, error) {
	var entity entities.Conversation
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				"conversation not found",
				nil,
				"4b5c6d7e-8f9a-4b0c-1d2e-3f4a5b6c7d8e",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch conversation",
			err,
			"5c6d7e8f-9a0b-4c1d-2e3f-4a5b6c7d8e9f",
		)
	}
	return entity.EtoD(), nil
}

// ListByUser fetches the user's conversations, most recently active first.
func (r *Repository) ListByUser(ctx context.Context, userID uint) ([]domain.Conversation, error) {
	var rows []entities.Conversation
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list conversations",
			err,
			"6d7e8f9a-0b1c-4d2e-3f4a-5b6c7d8e9f0a",
		)
	}

	conversations := make([]domain.Conversation, 0, len(rows))
	for i := range rows {
		conversations = append(conversations, *rows[i].EtoD())
	}
	return conversations, nil
}

// Touch bumps the conversation's activity timestamp so listings surface
// the most recently used conversation first.
func (r *Repository) Touch(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Model(&entities.Conversation{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", time.Now().UTC()).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to touch conversation",
			err,
			"7e8f9a0b-1c2d-4e3f-4a5b-6c7d8e9f0a1b",
		)
	}
	return nil
}
