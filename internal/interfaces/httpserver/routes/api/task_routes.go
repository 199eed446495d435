package api

import (
	"github.com/gin-gonic/gin"

	"todo-server/internal/interfaces/httpserver/handlers"
)

func registerTaskRoutes(router gin.IRoutes, handler *handlers.TaskHandler) {
	router.GET("/tasks", handler.List)
	router.POST("/tasks", handler.Create)
	router.GET("/tasks/:task_id", handler.Get)
	router.PUT("/tasks/:task_id", handler.Update)
	router.DELETE("/tasks/:task_id", handler.Delete)
	router.PATCH("/tasks/:task_id/complete", handler.ToggleComplete)
}
