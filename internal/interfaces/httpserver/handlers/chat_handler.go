package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"todo-server/internal/domain/chat"
	"todo-server/internal/domain/conversation"
	"todo-server/internal/domain/user"
	"todo-server/internal/infrastructure/auth"
	"todo-server/internal/infrastructure/observability"
	"todo-server/internal/interfaces/httpserver/requests"
	"todo-server/internal/interfaces/httpserver/responses"
	"todo-server/internal/utils/platformerrors"
)

// ChatHandler exposes the conversational endpoints. The user id in the path
// must match the authenticated account; the handler rejects any cross-user
// access before touching the conversation store.
type ChatHandler struct {
	chat          *chat.Service
	conversations *conversation.Service
	log           zerolog.Logger
}

// NewChatHandler constructs the handler.
func NewChatHandler(chatService *chat.Service, conversations *conversation.Service, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		chat:          chatService,
		conversations: conversations,
		log:           log.With().Str("handler", "chat").Logger(),
	}
}

// SendMessage handles POST /api/:user_id/chat
// @Summary Send a chat message
// @Description Runs one assistant turn; the reply reports any task tools the assistant invoked
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID"
// @Param request body requests.ChatRequest true "Message"
// @Success 200 {object} responses.ChatPayload
// @Failure 400 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /api/{user_id}/chat [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	principal, ok := h.pathPrincipal(c, "Cannot access another user's conversation")
	if !ok {
		return
	}

	var req requests.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, span := observability.StartSpan(c.Request.Context(), "chat.turn")
	defer span.End()
	observability.AddSpanAttributes(ctx, attribute.String("user.id", principal.PublicID))

	turn, err := h.chat.HandleMessage(ctx, principal.ID, req.ConversationID, req.Message)
	if err != nil {
		observability.RecordError(ctx, err)
		responses.HandleError(c, err, "failed to process chat message")
		return
	}

	observability.AddSpanAttributes(ctx, attribute.Int64("conversation.id", int64(turn.ConversationID)))
	for _, exec := range turn.Executions {
		observability.AddSpanEvent(ctx, "tool.call",
			attribute.String("tool.name", exec.ToolName),
			attribute.String("tool.status", string(exec.Status)),
		)
	}

	c.JSON(http.StatusOK, responses.FromTurn(turn))
}

// ListConversations handles GET /api/:user_id/conversations
// @Summary List the account's conversations
// @Description Returns conversations most recently active first
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID"
// @Success 200 {array} responses.ConversationPayload
// @Failure 403 {object} responses.ErrorResponse
// @Router /api/{user_id}/conversations [get]
func (h *ChatHandler) ListConversations(c *gin.Context) {
	principal, ok := h.pathPrincipal(c, "Cannot access another user's conversations")
	if !ok {
		return
	}

	listed, err := h.conversations.ListForUser(c.Request.Context(), principal.ID)
	if err != nil {
		responses.HandleError(c, err, "failed to list conversations")
		return
	}

	c.JSON(http.StatusOK, responses.FromConversations(listed))
}

// ListMessages handles GET /api/:user_id/conversations/:conversation_id/messages
// @Summary Get a conversation transcript
// @Description Returns the conversation's messages oldest first
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID"
// @Param conversation_id path int true "Conversation ID"
// @Success 200 {array} responses.MessagePayload
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/{user_id}/conversations/{conversation_id}/messages [get]
func (h *ChatHandler) ListMessages(c *gin.Context) {
	principal, ok := h.pathPrincipal(c, "Cannot access another user's conversations")
	if !ok {
		return
	}

	conversationID, err := strconv.ParseUint(c.Param("conversation_id"), 10, 32)
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "conversation id must be a positive integer", "8e9f0a1b-2c3d-4e4f-5a6b-7c8d9e0f1a2b")
		return
	}

	messages, err := h.conversations.Messages(c.Request.Context(), principal.ID, uint(conversationID))
	if err != nil {
		responses.HandleError(c, err, "failed to list messages")
		return
	}

	c.JSON(http.StatusOK, responses.FromMessages(messages))
}

// pathPrincipal resolves the authenticated account and enforces that the
// :user_id path segment refers to it.
func (h *ChatHandler) pathPrincipal(c *gin.Context, forbiddenMessage string) (*user.User, bool) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "9f0a1b2c-3d4e-4f5a-6b7c-8d9e0f1a2b3c")
		return nil, false
	}

	if c.Param("user_id") != principal.PublicID {
		responses.HandleNewError(c, platformerrors.ErrorTypeForbidden, forbiddenMessage, "0a1b2c3d-4e5f-4a6b-7c8d-9e0f1a2b3c4d")
		return nil, false
	}
	return principal, true
}
