package conversation

import (
	"context"

	"gorm.io/gorm"

	domain "todo-server/internal/domain/conversation"
	"todo-server/internal/infrastructure/database/entities"
	"todo-server/internal/utils/platformerrors"
)

// MessageRepository persists conversation transcript entries.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository builds a message repository.
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create appends a message to the conversation transcript.
func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	entity := entities.NewSchemaMessage(msg)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create message",
			err,
			"8f9a0b1c-2d3e-4f4a-5b6c-7d8e9f0a1b2c",
		)
	}
	msg.ID = entity.ID
	msg.CreatedAt = entity.CreatedAt
	return nil
}

// ListByConversation retrieves the full transcript in chronological order.
func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID uint) ([]domain.Message, error) {
	var rows []entities.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list messages",
			err,
			"9a0b1c2d-3e4f-4a5b-6c7d-8e9f0a1b2c3d",
		)
	}
	return mapMessages(rows), nil
}

// ListRecent retrieves the last limit messages in chronological order.
func (r *MessageRepository) ListRecent(ctx context.Context, conversationID uint, limit int) ([]domain.Message, error) {
	query := r.db.WithContext(ctx).Where("conversation_id = ?", conversationID)
	if limit > 0 {
		query = query.Order("created_at DESC").Limit(limit)
	} else {
		query = query.Order("created_at ASC")
	}

	var rows []entities.Message
	if err := query.Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list recent messages",
			err,
			"0b1c2d3e-4f5a-4b6c-7d8e-9f0a1b2c3d4e",
		)
	}

	messages := mapMessages(rows)
	if limit > 0 {
		reverseMessages(messages)
	}
	return messages, nil
}

func mapMessages(rows []entities.Message) []domain.Message {
	messages := make([]domain.Message, len(rows))
	for i := range rows {
		messages[i] = *rows[i].EtoD()
	}
	return messages
}

func reverseMessages(messages []domain.Message) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
