package main

import (
	"context"
	"net/http"

	"fertilitycare/internal/api"
	"fertilitycare/internal/api/handlers"
	"fertilitycare/internal/auth"
	"fertilitycare/internal/config"
	"fertilitycare/internal/logger"
	"fertilitycare/internal/repository/postgres"
	chatService "fertilitycare/internal/service/chat"
	conversationService "fertilitycare/internal/service/conversation"
	"fertilitycare/internal/service/llm"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments configure through the environment
	if err := godotenv.Load(); err == nil {
		logger.Log.Info("Loaded configuration from .env")
	}

	appConfig, err := config.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load configuration")
	}

	database, err := postgres.NewPostgresDB(appConfig.Database)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close()

	provider, err := llm.NewProvider(context.Background(), &appConfig.LLM)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to create model provider")
	}
	defer provider.Close()

	authService := auth.NewService(appConfig.Auth, database)
	chatSvc := chatService.NewChatService(database, provider)
	conversationSvc := conversationService.NewConversationService(database)
	chatHandlers := handlers.NewChatHandlers(database, chatSvc, conversationSvc)

	router := api.NewRouter(authService, chatHandlers)

	addr := ":" + appConfig.Server.Port
	logger.Log.WithField("addr", addr).Info("Server starting")
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Log.WithError(err).Fatal("Server failed")
	}
}
