package main

import (
	"lingora/internal/app"
	"lingora/pkg/cache"
	"lingora/pkg/config"
	"lingora/pkg/database"
	"lingora/pkg/logger"
	"lingora/pkg/queue"
	"lingora/pkg/s3"

	_ "lingora/docs" // Swagger docs
)

// @title           Lingora API
// @version         1.0
// @description     Language learning community backend: posts, questions, consultations, point ledger and daily words.

// @contact.name   API Support
// @contact.email  support@lingora.io

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		// The API works without the broker, events are just dropped.
		log.Warn("RabbitMQ unavailable, continuing without events: %v", err)
		queueClient = nil
	}

	app.Run(cfg, log, db, s3Client, queueClient, redisClient)
}
