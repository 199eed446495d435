package responses

import (
	"time"

	"todo-server/internal/domain/chat"
	"todo-server/internal/domain/conversation"
)

// ToolCallPayload reports one tool invocation made while answering a turn,
// in execution order.
type ToolCallPayload struct {
	Tool       string         `json:"tool"`
	Parameters map[string]any `json:"parameters"`
	Result     map[string]any `json:"result"`
}

// ChatPayload is the reply to a chat turn.
type ChatPayload struct {
	ConversationID uint              `json:"conversation_id"`
	Response       string            `json:"response"`
	ToolCalls      []ToolCallPayload `json:"tool_calls"`
}

// FromTurn maps a completed chat turn to its payload.
func FromTurn(turn *chat.Turn) ChatPayload {
	toolCalls := make([]ToolCallPayload, 0, len(turn.Executions))
	for _, exec := range turn.Executions {
		toolCalls = append(toolCalls, ToolCallPayload{
			Tool:       exec.ToolName,
			Parameters: exec.Arguments,
			Result:     exec.Result,
		})
	}
	return ChatPayload{
		ConversationID: turn.ConversationID,
		Response:       turn.Response,
		ToolCalls:      toolCalls,
	}
}

// ConversationPayload summarizes one conversation for listings.
type ConversationPayload struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessagePayload is one transcript entry.
type MessagePayload struct {
	ID        uint      `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// FromConversations maps a conversation listing, preserving order.
func FromConversations(conversations []conversation.Conversation) []ConversationPayload {
	payloads := make([]ConversationPayload, 0, len(conversations))
	for _, conv := range conversations {
		payloads = append(payloads, ConversationPayload{
			ID:        conv.ID,
			CreatedAt: conv.CreatedAt,
			UpdatedAt: conv.UpdatedAt,
		})
	}
	return payloads
}

// FromMessages maps a transcript, preserving chronological order.
func FromMessages(messages []conversation.Message) []MessagePayload {
	payloads := make([]MessagePayload, 0, len(messages))
	for _, msg := range messages {
		payloads = append(payloads, MessagePayload{
			ID:        msg.ID,
			Role:      string(msg.Role),
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}
	return payloads
}
