package tool

import (
	"fmt"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// Registry manages the tool handlers exposed to the model.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	order    []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register adds a handler under its declared function name.
func (r *Registry) Register(h Handler) error {
	def := h.Definition()
	if def.Function == nil || def.Function.Name == "" {
		return fmt.Errorf("tool definition is missing a function name")
	}
	name := def.Function.Name

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("tool already registered: %s", name)
	}

	r.handlers[name] = h
	r.order = append(r.order, name)
	return nil
}

// Get retrieves a handler by name.
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handlers[name]
	return h, ok
}

// Definitions returns the tool definitions in registration order.
func (r *Registry) Definitions() []openai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]openai.Tool, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.handlers[name].Definition())
	}
	return defs
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}
