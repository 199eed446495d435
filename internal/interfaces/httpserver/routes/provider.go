package routes

import (
	"github.com/gin-gonic/gin"

	"todo-server/internal/interfaces/httpserver/handlers"
	"todo-server/internal/interfaces/httpserver/routes/api"
)

// Provider coordinates all route registrations.
type Provider struct {
	API *api.Routes
}

// NewProvider constructs the route provider.
func NewProvider(handlerProvider *handlers.Provider) *Provider {
	return &Provider{
		API: api.NewRoutes(handlerProvider),
	}
}

// Register attaches all available routes to the gin engine.
func (p *Provider) Register(engine *gin.Engine, requireAuth gin.HandlerFunc) {
	p.API.Register(engine, requireAuth)
}
