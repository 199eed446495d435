package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"todo-server/internal/domain/conversation"
	"todo-server/internal/domain/tool"
	"todo-server/internal/infrastructure/metrics"
	"todo-server/internal/utils/platformerrors"
)

// Turn is the outcome of one chat exchange.
type Turn struct {
	ConversationID uint
	Response       string
	Executions     []tool.Execution
}

// Service runs the conversational pipeline: it persists the incoming
// message, replays recent history to the model, and stores the final
// assistant reply. Tool side effects happen inside the orchestrator.
type Service struct {
	conversations *conversation.Service
	orchestrator  *tool.Orchestrator
	historyLimit  int
	maxMessageLen int
	log           zerolog.Logger
}

// NewService builds a chat service.
func NewService(conversations *conversation.Service, orchestrator *tool.Orchestrator, historyLimit, maxMessageLen int, log zerolog.Logger) *Service {
	return &Service{
		conversations: conversations,
		orchestrator:  orchestrator,
		historyLimit:  historyLimit,
		maxMessageLen: maxMessageLen,
		log:           log.With().Str("component", "chat-service").Logger(),
	}
}

// HandleMessage runs one full chat turn for the user. The user message is
// persisted before the model is called, so a provider failure leaves the
// message in the transcript without an answer.
func (s *Service) HandleMessage(ctx context.Context, userID uint, conversationID *uint, message string) (*Turn, error) {
	started := time.Now()

	message, err := s.validateMessage(ctx, message)
	if err != nil {
		return nil, err
	}

	conv, err := s.conversations.Resolve(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	if _, err := s.conversations.AppendMessage(ctx, conv, conversation.RoleUser, message); err != nil {
		return nil, err
	}

	history, err := s.conversations.History(ctx, conv.ID, s.historyLimit)
	if err != nil {
		return nil, err
	}

	result, err := s.orchestrator.Execute(ctx, tool.ExecuteParams{
		UserID:   userID,
		Messages: buildTranscript(history),
	})
	if err != nil {
		metrics.RecordChatTurn("error", time.Since(started).Seconds())
		if errors.Is(err, tool.ErrDepthExceeded) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerDomain,
				platformerrors.ErrorTypeInternal,
				"conversation required too many tool rounds",
				err,
				"6c7d8e9f-0a1b-2c3d-4e5f-6a7b8c9d0e1f",
			)
		}
		return nil, err
	}

	for _, e := range result.Executions {
		metrics.RecordToolCall(e.ToolName, string(e.Status), e.Duration.Seconds())
	}

	if _, err := s.conversations.AppendMessage(ctx, conv, conversation.RoleAssistant, result.FinalContent); err != nil {
		metrics.RecordChatTurn("error", time.Since(started).Seconds())
		return nil, err
	}

	s.log.Info().
		Uint("conversation_id", conv.ID).
		Uint("user_id", userID).
		Int("tool_calls", len(result.Executions)).
		Int("total_tokens", result.Usage.TotalTokens).
		Dur("duration", time.Since(started)).
		Msg("chat turn completed")
	metrics.RecordChatTurn("success", time.Since(started).Seconds())

	return &Turn{
		ConversationID: conv.ID,
		Response:       result.FinalContent,
		Executions:     result.Executions,
	}, nil
}

func (s *Service) validateMessage(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"message cannot be empty",
			nil,
			"7d8e9f0a-1b2c-3d4e-5f6a-7b8c9d0e1f2a",
		)
	}
	if utf8.RuneCountInString(message) > s.maxMessageLen {
		return "", platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			fmt.Sprintf("message must be %d characters or less", s.maxMessageLen),
			nil,
			"8e9f0a1b-2c3d-4e5f-6a7b-8c9d0e1f2a3c",
		)
	}
	return message, nil
}

// buildTranscript maps stored history onto the wire format, prefixed with
// the assistant instructions.
func buildTranscript(history []conversation.Message) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if msg.Role == conversation.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}
	return messages
}
