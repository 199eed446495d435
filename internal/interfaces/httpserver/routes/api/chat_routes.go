package api

import (
	"github.com/gin-gonic/gin"

	"todo-server/internal/interfaces/httpserver/handlers"
)

// Chat routes key on the caller's public id so clients address their own
// conversation space explicitly.
func registerChatRoutes(router gin.IRoutes, handler *handlers.ChatHandler) {
	router.POST("/:user_id/chat", handler.SendMessage)
	router.GET("/:user_id/conversations", handler.ListConversations)
	router.GET("/:user_id/conversations/:conversation_id/messages", handler.ListMessages)
}
