package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"todo-server/internal/config"
	"todo-server/internal/domain/chat"
	"todo-server/internal/domain/conversation"
	"todo-server/internal/domain/task"
	"todo-server/internal/domain/tool"
	"todo-server/internal/domain/user"
	"todo-server/internal/infrastructure/auth"
	"todo-server/internal/interfaces/httpserver/handlers"
	"todo-server/internal/interfaces/httpserver/routes"
	"todo-server/internal/utils/platformerrors"
)

// In-memory stores backing the real domain services, so handler tests
// exercise the full route, middleware, and service stack without a
// database.

type userStore struct {
	mu       sync.Mutex
	nextID   uint
	accounts map[string]user.User
}

func newUserStore() *userStore {
	return &userStore{accounts: make(map[string]user.User)}
}

func (s *userStore) Create(_ context.Context, account *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	account.ID = s.nextID
	s.accounts[account.Email] = *account
	return nil
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.accounts[email]
	if !ok {
		return nil, notFound(ctx, "account not found")
	}
	return &stored, nil
}

func (s *userStore) FindByPublicID(ctx context.Context, publicID string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stored := range s.accounts {
		if stored.PublicID == publicID {
			account := stored
			return &account, nil
		}
	}
	return nil, notFound(ctx, "account not found")
}

type taskStore struct {
	mu     sync.Mutex
	nextID uint
	tasks  map[uint]task.Task
}

func newTaskStore() *taskStore {
	return &taskStore{tasks: make(map[uint]task.Task)}
}

func (s *taskStore) Create(_ context.Context, t *task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t.ID = s.nextID
	t.CreatedAt = time.Now().Add(time.Duration(s.nextID) * time.Millisecond)
	t.UpdatedAt = t.CreatedAt
	s.tasks[t.ID] = *t
	return nil
}

func (s *taskStore) FindByID(ctx context.Context, id uint) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.tasks[id]
	if !ok {
		return nil, notFound(ctx, "task not found")
	}
	return &stored, nil
}

func (s *taskStore) ListByUser(_ context.Context, userID uint, filter task.StatusFilter) ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	listed := make([]task.Task, 0)
	for _, stored := range s.tasks {
		if stored.UserID != userID {
			continue
		}
		if filter == task.StatusPending && stored.Completed {
			continue
		}
		if filter == task.StatusCompleted && !stored.Completed {
			continue
		}
		listed = append(listed, stored)
	}
	sort.Slice(listed, func(i, j int) bool {
		return listed[i].CreatedAt.After(listed[j].CreatedAt)
	})
	return listed, nil
}

func (s *taskStore) Update(ctx context.Context, t *task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[t.ID]; !ok {
		return notFound(ctx, "task not found")
	}
	t.UpdatedAt = time.Now()
	s.tasks[t.ID] = *t
	return nil
}

func (s *taskStore) Delete(_ context.Context, t *task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, t.ID)
	return nil
}

type conversationStore struct {
	mu     sync.Mutex
	nextID uint
	convs  map[uint]conversation.Conversation
}

func newConversationStore() *conversationStore {
	return &conversationStore{convs: make(map[uint]conversation.Conversation)}
}

func (s *conversationStore) Create(_ context.Context, conv *conversation.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	conv.ID = s.nextID
	conv.CreatedAt = time.Now()
	conv.UpdatedAt = conv.CreatedAt
	s.convs[conv.ID] = *conv
	return nil
}

func (s *conversationStore) FindByID(ctx context.Context, id uint) (*conversation.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.convs[id]
	if !ok {
		return nil, notFound(ctx, "conversation not found")
	}
	return &stored, nil
}

func (s *conversationStore) ListByUser(_ context.Context, userID uint) ([]conversation.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	listed := make([]conversation.Conversation, 0)
	for _, conv := range s.convs {
		if conv.UserID == userID {
			listed = append(listed, conv)
		}
	}
	sort.Slice(listed, func(i, j int) bool {
		return listed[i].UpdatedAt.After(listed[j].UpdatedAt)
	})
	return listed, nil
}

func (s *conversationStore) Touch(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if conv, ok := s.convs[id]; ok {
		conv.UpdatedAt = time.Now()
		s.convs[id] = conv
	}
	return nil
}

type chatMessageStore struct {
	mu       sync.Mutex
	nextID   uint
	messages []conversation.Message
}

func newChatMessageStore() *chatMessageStore {
	return &chatMessageStore{}
}

func (s *chatMessageStore) Create(_ context.Context, msg *conversation.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	msg.ID = s.nextID
	msg.CreatedAt = time.Now().Add(time.Duration(s.nextID) * time.Millisecond)
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *chatMessageStore) ListByConversation(_ context.Context, conversationID uint) ([]conversation.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	listed := make([]conversation.Message, 0)
	for _, msg := range s.messages {
		if msg.ConversationID == conversationID {
			listed = append(listed, msg)
		}
	}
	return listed, nil
}

func (s *chatMessageStore) ListRecent(ctx context.Context, conversationID uint, limit int) ([]conversation.Message, error) {
	listed, _ := s.ListByConversation(ctx, conversationID)
	if limit > 0 && len(listed) > limit {
		listed = listed[len(listed)-limit:]
	}
	return listed, nil
}

func notFound(ctx context.Context, message string) error {
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, message, nil, "test-store")
}

// scriptedProvider replays canned completions in order, repeating the
// last one once the script runs out.
type scriptedProvider struct {
	responses []openai.ChatCompletionResponse
	err       error
	requests  []openai.ChatCompletionRequest
}

func (p *scriptedProvider) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	i := len(p.requests) - 1
	if i >= len(p.responses) {
		i = len(p.responses) - 1
	}
	resp := p.responses[i]
	return &resp, nil
}

func (p *scriptedProvider) script(responses ...openai.ChatCompletionResponse) {
	p.responses = responses
	p.requests = nil
}

func assistantText(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: content,
			},
		}},
	}
}

func assistantToolCall(callID, name, arguments string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{
				Role: openai.ChatMessageRoleAssistant,
				ToolCalls: []openai.ToolCall{{
					ID:       callID,
					Type:     openai.ToolTypeFunction,
					Function: openai.FunctionCall{Name: name, Arguments: arguments},
				}},
			},
		}},
	}
}

// testEnv wires the real handler, route, and middleware stack over
// in-memory stores.
type testEnv struct {
	router   *gin.Engine
	provider *scriptedProvider
	users    *userStore
	tasks    *taskStore
	convs    *conversationStore
	messages *chatMessageStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zerolog.Nop()

	users := newUserStore()
	tasks := newTaskStore()
	convs := newConversationStore()
	messages := newChatMessageStore()
	provider := &scriptedProvider{responses: []openai.ChatCompletionResponse{assistantText("ok")}}

	userService := user.NewService(users, log)
	taskService := task.NewService(tasks, log)
	conversationService := conversation.NewService(convs, messages, log)

	registry := tool.NewRegistry()
	if err := tool.RegisterTaskTools(registry, taskService); err != nil {
		t.Fatalf("Failed to register task tools: %v", err)
	}
	orchestrator := tool.NewOrchestrator(provider, registry, "test-model", 5, time.Second)
	chatService := chat.NewService(conversationService, orchestrator, 10, 2000, log)

	tokens := auth.NewTokenService(&config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour})
	middleware := auth.NewMiddleware(tokens, userService, log)

	router := gin.New()
	handlerProvider := handlers.NewProvider(userService, tokens, taskService, chatService, conversationService, log)
	routes.NewProvider(handlerProvider).Register(router, middleware.Handler())

	return &testEnv{
		router:   router,
		provider: provider,
		users:    users,
		tasks:    tasks,
		convs:    convs,
		messages: messages,
	}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// signup registers an account and returns its bearer token and public id.
func (env *testEnv) signup(t *testing.T, email string) (string, string) {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"email":    email,
		"password": "opensesame",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Signup failed with status %d: %s", w.Code, w.Body.String())
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Failed to parse signup response: %v", err)
	}
	return payload.AccessToken, payload.User.ID
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var decoded map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("Failed to parse response %q: %v", w.Body.String(), err)
	}
	return decoded
}

func decodeArray(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var decoded []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("Failed to parse response %q: %v", w.Body.String(), err)
	}
	return decoded
}

func createTaskViaAPI(t *testing.T, env *testEnv, token, title string) uint {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/tasks", token, map[string]any{"title": title})
	if w.Code != http.StatusCreated {
		t.Fatalf("Create task failed with status %d: %s", w.Code, w.Body.String())
	}
	created := decodeObject(t, w)
	id, ok := created["id"].(float64)
	if !ok {
		t.Fatalf("Create task response has no numeric id: %v", created)
	}
	return uint(id)
}

func taskPath(id uint) string {
	return fmt.Sprintf("/api/tasks/%d", id)
}
