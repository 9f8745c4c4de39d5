package main

import (
	"context"
	"log"

	"github.com/enigma-chat/enigma/config"
	"github.com/enigma-chat/enigma/internal/handler"
	"github.com/enigma-chat/enigma/internal/redis"
	"github.com/enigma-chat/enigma/internal/repository"
	"github.com/enigma-chat/enigma/internal/server"
	"github.com/enigma-chat/enigma/internal/services"
	"github.com/enigma-chat/enigma/internal/storage"
	"github.com/enigma-chat/enigma/pkg/database"
	"github.com/enigma-chat/enigma/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.AppMode)
	logger.SetGlobalLogger(l)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	redisClient := redis.NewClient(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	presence := redis.NewPresenceStore(redisClient, cfg.PresenceTimeout)
	signaling := redis.NewSignalingStore(redisClient, cfg.SignalTTL)

	objectStore, err := storage.NewClient(context.Background(), storage.S3Config{
		Region:     cfg.S3Region,
		Bucket:     cfg.S3Bucket,
		AccessKey:  cfg.S3AccessKey,
		SecretKey:  cfg.S3SecretKey,
		Endpoint:   cfg.S3Endpoint,
		PublicBase: cfg.S3PublicBase,
	})
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	keyRepo := repository.NewKeyRepository(db)
	callRepo := repository.NewCallRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	identityService := services.NewIdentityService(userRepo, presence, cfg.PresenceTimeout)
	chatService := services.NewChatService(messageRepo, keyRepo, identityService, cfg.FeedWindow)
	mediaService := services.NewMediaService(mediaRepo, identityService, objectStore)
	callService := services.NewCallService(callRepo, identityService, signaling)
	statsService := services.NewStatsService(statsRepo, userRepo)
	sessionService := services.NewSessionService(cfg.SessionSecret)
	executor := services.NewCommandExecutor(identityService, chatService, mediaService, callService)

	handlers := &server.Handlers{
		Command: handler.NewCommandHandler(executor),
		Feed:    handler.NewFeedHandler(chatService),
		Keys:    handler.NewKeyHandler(chatService),
		Calls:   handler.NewCallHandler(callService),
		Stats:   handler.NewStatsHandler(statsService),
	}

	srv := server.New(cfg, l, db)
	srv.SetupRoutes(handlers, sessionService, identityService)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server terminated: %v", err)
	}
}
