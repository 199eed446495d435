package conversation

import "time"

// Role identifies the author of a stored message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Conversation is a bounded chat session owned by one user. The
// UpdatedAt timestamp moves whenever the session sees activity.
type Conversation struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is one stored turn of a conversation, immutable once written.
// UserID duplicates the conversation owner for direct filtering.
type Message struct {
	ID             uint      `json:"id"`
	ConversationID uint      `json:"-"`
	UserID         uint      `json:"-"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}
