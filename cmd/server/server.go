package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"todo-server/internal/config"
	"todo-server/internal/domain/chat"
	"todo-server/internal/domain/conversation"
	"todo-server/internal/domain/task"
	"todo-server/internal/domain/tool"
	"todo-server/internal/domain/user"
	"todo-server/internal/infrastructure/auth"
	"todo-server/internal/infrastructure/database"
	"todo-server/internal/infrastructure/llmprovider"
	"todo-server/internal/infrastructure/logger"
	"todo-server/internal/infrastructure/observability"
	conversationrepo "todo-server/internal/infrastructure/repository/conversation"
	taskrepo "todo-server/internal/infrastructure/repository/task"
	userrepo "todo-server/internal/infrastructure/repository/user"
	"todo-server/internal/interfaces/httpserver"
	"todo-server/internal/interfaces/httpserver/handlers"
)

// @title Todo API
// @version 1.0
// @description Task management service with a tool-calling chat assistant.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	userRepository := userrepo.NewPostgresRepository(db)
	taskRepository := taskrepo.NewPostgresRepository(db)
	conversationRepository := conversationrepo.NewRepository(db)
	messageRepository := conversationrepo.NewMessageRepository(db)

	userService := user.NewService(userRepository, log)
	taskService := task.NewService(taskRepository, log)
	conversationService := conversation.NewService(conversationRepository, messageRepository, log)

	registry := tool.NewRegistry()
	if err := tool.RegisterTaskTools(registry, taskService); err != nil {
		log.Fatal().Err(err).Msg("register task tools")
	}

	llmClient := llmprovider.NewClient(cfg)
	orchestrator := tool.NewOrchestrator(llmClient, registry, cfg.LLMModel, cfg.MaxToolDepth, cfg.ToolTimeout)
	chatService := chat.NewService(conversationService, orchestrator, cfg.ChatHistoryLimit, cfg.ChatMessageMaxLen, log)

	tokenService := auth.NewTokenService(cfg)
	authMiddleware := auth.NewMiddleware(tokenService, userService, log)

	handlerProvider := handlers.NewProvider(userService, tokenService, taskService, chatService, conversationService, log)

	httpServer := httpserver.New(cfg, log, db, handlerProvider, authMiddleware)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
