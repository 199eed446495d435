package conversation

import (
	"context"

	"github.com/rs/zerolog"

	"todo-server/internal/utils/platformerrors"
)

// Service manages conversations and their message history.
type Service struct {
	repo     Repository
	messages MessageRepository
	log      zerolog.Logger
}

// NewService builds a conversation service.
func NewService(repo Repository, messages MessageRepository, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		messages: messages,
		log:      log.With().Str("component", "conversation-service").Logger(),
	}
}

// Resolve returns the referenced conversation after an ownership check,
// touching its activity timestamp. When id is nil a new conversation is
// started for the user.
func (s *Service) Resolve(ctx context.Context, userID uint, id *uint) (*Conversation, error) {
	if id == nil {
		conv := &Conversation{UserID: userID}
		if err := s.repo.Create(ctx, conv); err != nil {
			return nil, err
		}
		s.log.Info().Uint("conversation_id", conv.ID).Uint("user_id", userID).Msg("conversation started")
		return conv, nil
	}

	conv, err := s.getOwned(ctx, userID, *id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Touch(ctx, conv.ID); err != nil {
		return nil, err
	}
	return conv, nil
}

// AppendMessage stores one turn in the conversation.
func (s *Service) AppendMessage(ctx context.Context, conv *Conversation, role Role, content string) (*Message, error) {
	msg := &Message{
		ConversationID: conv.ID,
		UserID:         conv.UserID,
		Role:           role,
		Content:        content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// History returns up to limit of the conversation's newest messages in
// chronological order.
func (s *Service) History(ctx context.Context, conversationID uint, limit int) ([]Message, error) {
	return s.messages.ListRecent(ctx, conversationID, limit)
}

// ListForUser returns the user's conversations, most recently active
// first.
func (s *Service) ListForUser(ctx context.Context, userID uint) ([]Conversation, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Messages returns the full transcript oldest-first after an ownership
// check.
func (s *Service) Messages(ctx context.Context, userID, conversationID uint) ([]Message, error) {
	if _, err := s.getOwned(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	return s.messages.ListByConversation(ctx, conversationID)
}

// getOwned fetches a conversation and hides those owned by other users:
// a foreign conversation is reported as missing, never as forbidden.
func (s *Service) getOwned(ctx context.Context, userID, id uint) (*Conversation, error) {
	conv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if conv.UserID != userID {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound,
			"conversation not found",
			nil,
			"4d5e6f7a-8b9c-0d1e-2f3a-4b5c6d7e8f9a",
		)
	}
	return conv, nil
}
