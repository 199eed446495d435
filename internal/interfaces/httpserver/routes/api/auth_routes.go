package api

import (
	"github.com/gin-gonic/gin"

	"todo-server/internal/interfaces/httpserver/handlers"
)

func registerAuthRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc, handler *handlers.AuthHandler) {
	router.POST("/auth/signup", handler.Signup)
	router.POST("/auth/login", handler.Login)
	router.GET("/auth/me", requireAuth, handler.Me)
}
