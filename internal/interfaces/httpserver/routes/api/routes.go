package api

import (
	"github.com/gin-gonic/gin"

	"todo-server/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates registration of everything under /api.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes builds the /api route registrar.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{
		handlers: handlerProvider,
	}
}

// Register attaches all /api routes. Signup and login stay public; every
// other route runs behind the bearer-token middleware.
func (r *Routes) Register(engine *gin.Engine, requireAuth gin.HandlerFunc) {
	group := engine.Group("/api")
	registerAuthRoutes(group, requireAuth, r.handlers.Auth)

	protected := group.Group("", requireAuth)
	registerTaskRoutes(protected, r.handlers.Task)
	registerChatRoutes(protected, r.handlers.Chat)
}
