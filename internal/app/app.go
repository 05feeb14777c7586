package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"geticard_backend/internal/auth"
	"geticard_backend/internal/config"
	"geticard_backend/internal/handlers"
	"geticard_backend/internal/logger"
	"geticard_backend/internal/middleware"
	"geticard_backend/internal/repositories"
	"geticard_backend/internal/routes"
	"geticard_backend/internal/services"
	"geticard_backend/internal/storage"
	"geticard_backend/internal/validator"
)

// Run boots the process: config, logger, storage, repositories, router.
func Run() {
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	router, err := SetupRouter(cfg)
	if err != nil {
		logger.Fatal("Failed to set up server", "error", err)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires the whole application. Storage and store clients are
// created once here and injected; no per-module store handles.
func SetupRouter(cfg *config.Config) (*gin.Engine, error) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	repos, err := repositories.New(repositories.Config{
		Type: cfg.Database.Type,
		DSN:  cfg.Database.DSN,
		Dynamo: repositories.DynamoConfig{
			Region:     cfg.Database.Region,
			Endpoint:   cfg.Database.Endpoint,
			AccessKey:  cfg.Database.AccessKey,
			SecretKey:  cfg.Database.SecretKey,
			UsersTable: cfg.Database.UsersTable,
			CardsTable: cfg.Database.CardsTable,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}
	logger.Info("Document store initialized", "type", cfg.Database.Type)

	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)

	authService := services.NewAuthService(repos.Users, repos.Cards, tokens)
	cardService := services.NewCardService(repos.Cards, storageInstance, cfg.Upload.AllowedTypes)

	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &routes.Handlers{
		Auth: handlers.NewAuthHandler(base, authService, tokens),
		Card: handlers.NewCardHandler(base, cardService, tokens, cfg.Server.BaseURL),
		File: handlers.NewFileHandler(base, storageInstance),
	}

	router := initializeGinRouter(cfg)
	routes.RegisterRoutes(router, appHandlers)

	return router, nil
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxSize
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	return router
}
