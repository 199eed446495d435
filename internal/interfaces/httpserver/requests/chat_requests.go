package requests

// ChatRequest carries one user message. A nil conversation id starts a new
// conversation; otherwise the message continues the referenced one.
type ChatRequest struct {
	ConversationID *uint  `json:"conversation_id,omitempty"`
	Message        string `json:"message"`
}
