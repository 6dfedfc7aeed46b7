// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/shayanh/go-chatbox/internal/config"
	"github.com/shayanh/go-chatbox/internal/domain"
	"github.com/shayanh/go-chatbox/internal/handlers"
	"github.com/shayanh/go-chatbox/internal/middleware"
	"github.com/shayanh/go-chatbox/internal/repository/chat"
	"github.com/shayanh/go-chatbox/internal/repository/message"
	"github.com/shayanh/go-chatbox/internal/services"
	"github.com/shayanh/go-chatbox/internal/services/ai"
)

func main() {
	cfg := config.Load()

	db, err := gorm.Open(sqlite.Open(cfg.DBFile), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	// Schema creation is idempotent; an existing database file is reused.
	if err := db.AutoMigrate(&domain.Chat{}, &domain.Message{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	logger := services.NewLogger("go_chatbox")

	// --- Repositories ---
	chatRepo := chat.NewChatRepository(db)
	messageRepo := message.NewMessageRepository(db)

	// --- Services ---
	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.AIAPIKey
	aiConfig.BaseURL = cfg.AIBaseURL
	aiConfig.Model = cfg.AIModel
	aiConfig.Timeout = time.Duration(cfg.AITimeoutSeconds) * time.Second
	if err := aiConfig.Validate(); err != nil {
		log.Fatalf("FATAL: Invalid AI configuration: %v", err)
	}

	completionService, err := services.NewCompletionService(ai.NewOpenAIProvider(aiConfig), aiConfig.Timeout, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Completion Service: %v", err)
	}

	chatService, err := services.NewChatService(chatRepo, messageRepo, completionService, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Chat Service: %v", err)
	}

	// --- Handlers ---
	chatHandler, err := handlers.NewChatHandler(chatService)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Chat Handler: %v", err)
	}

	// --- Router Setup ---
	r := handlers.NewRouter(chatHandler)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	// --- Server Configuration ---
	port := ":" + cfg.ServerPort
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Chatbox server starting on port %s", port)
	log.Printf("Local access: http://localhost%s", port)

	// --- Start Server in Goroutine ---
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}
