package main

import (
	"log"

	api "leaguepush/cmd/api"
	channelRepo "leaguepush/internal/channel/repository"
	channelUsecase "leaguepush/internal/channel/usecase"
	pushRepo "leaguepush/internal/push/repository"
	pushUsecase "leaguepush/internal/push/usecase"
	"leaguepush/pkg/config"
	"leaguepush/pkg/store"
	"leaguepush/pkg/webpush"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize the shared key-value store
	redisClient, err := store.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatal("Failed to connect to redis:", err)
	}
	channelStore := store.NewRedisStore(redisClient)

	// Initialize the web push transport
	pushClient, err := webpush.NewClient(cfg.VAPIDSubject, cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey)
	if err != nil {
		log.Fatal("Failed to initialize web push client:", err)
	}

	// Initialize repositories (dependency injection)
	channelRepository := channelRepo.NewChannelRepository(channelStore)
	subscriptionRepository := pushRepo.NewSubscriptionRepository(channelStore)
	eventRepository := pushRepo.NewEventRepository(channelStore)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := channelUsecase.NewAuthUsecase(channelRepository)
	fanoutUsecaseInstance := pushUsecase.NewFanoutUsecase(pushClient)
	pushUsecaseInstance := pushUsecase.NewPushUsecase(subscriptionRepository, eventRepository, fanoutUsecaseInstance)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, pushUsecaseInstance, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
