package handlers

import (
	"github.com/rs/zerolog"

	"todo-server/internal/domain/chat"
	"todo-server/internal/domain/conversation"
	"todo-server/internal/domain/task"
	"todo-server/internal/domain/user"
	"todo-server/internal/infrastructure/auth"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Auth *AuthHandler
	Task *TaskHandler
	Chat *ChatHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	users *user.Service,
	tokens *auth.TokenService,
	tasks *task.Service,
	chatService *chat.Service,
	conversations *conversation.Service,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Auth: NewAuthHandler(users, tokens, log),
		Task: NewTaskHandler(tasks, log),
		Chat: NewChatHandler(chatService, conversations, log),
	}
}
