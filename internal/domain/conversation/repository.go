package conversation

import "context"

// Repository exposes persistence operations for conversation metadata.
type Repository interface {
	Create(ctx context.Context, conv *Conversation) error
	FindByID(ctx context.Context, id uint) (*Conversation, error)
	ListByUser(ctx context.Context, userID uint) ([]Conversation, error)
	Touch(ctx context.Context, id uint) error
}

// MessageRepository persists individual conversation messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *Message) error
	ListByConversation(ctx context.Context, conversationID uint) ([]Message, error)
	ListRecent(ctx context.Context, conversationID uint, limit int) ([]Message, error)
}
