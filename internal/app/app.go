package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	lingoraHTTP "lingora/internal/controller/http"
	"lingora/internal/entity"
	"lingora/internal/repo/persistent"
	"lingora/internal/usecase"
	"lingora/pkg/config"
	"lingora/pkg/jwt"
	"lingora/pkg/logger"
	"lingora/pkg/middleware"
	"lingora/pkg/queue"
	"lingora/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "lingora/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	postRepo := persistent.NewPostRepository(db)
	queryRepo := persistent.NewQueryRepository(db)
	ledgerRepo := persistent.NewLedgerRepository(db)
	userRepo := persistent.NewUserRepository(db)
	wordRepo := persistent.NewWordRepository(db)
	bannerRepo := persistent.NewBannerRepository(db)
	countryRepo := persistent.NewCountryRepository(db)
	variants := persistent.NewVariantStore()

	// Initialize use cases
	postUseCase := usecase.NewPostUseCase(postRepo, queryRepo, ledgerRepo, variants, queueClient, log)
	authUseCase := usecase.NewAuthUseCase(userRepo, jwtService, s3Client, queueClient, log)
	pointsUseCase := usecase.NewPointsUseCase(ledgerRepo)
	wordUseCase := usecase.NewWordUseCase(wordRepo, redisClient, cfg.DailyWordCount, log)
	bannerUseCase := usecase.NewBannerUseCase(bannerRepo)
	countryUseCase := usecase.NewCountryUseCase(countryRepo, redisClient, log)

	// Initialize HTTP handlers
	postHandler := lingoraHTTP.NewPostHandler(postUseCase, log)
	authHandler := lingoraHTTP.NewAuthHandler(authUseCase, log)
	pointsHandler := lingoraHTTP.NewPointsHandler(pointsUseCase)
	wordHandler := lingoraHTTP.NewWordHandler(wordUseCase)
	bannerHandler := lingoraHTTP.NewBannerHandler(bannerUseCase)
	countryHandler := lingoraHTTP.NewCountryHandler(countryUseCase)
	mediaHandler := lingoraHTTP.NewMediaHandler(s3Client, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := r.Group("/api/v1")
	{
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/login", authHandler.Login)
		public.GET("/countries", countryHandler.ListCountries)
		public.GET("/ad-banners", bannerHandler.ListBanners)
		public.GET("/ad-banners/:id", bannerHandler.GetBanner)
		public.GET("/words/today", wordHandler.TodayWords)
	}

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtService))
	api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))

	{
		api.GET("/auth/me", authHandler.Me)
		api.PATCH("/auth/me", authHandler.UpdateProfile)
		api.POST("/auth/me/avatar", authHandler.UploadAvatar)

		api.POST("/posts", postHandler.CreatePost)
		api.GET("/posts", postHandler.ListPosts)
		api.POST("/posts/drafts", postHandler.CreateDraft)
		api.GET("/posts/drafts", postHandler.ListDrafts)
		api.GET("/posts/:id", postHandler.GetPost)
		api.PUT("/posts/:id", postHandler.UpdatePost)
		api.DELETE("/posts/:id", postHandler.DeletePost)
		api.POST("/posts/:id/view", postHandler.IncrementView)
		api.POST("/posts/:id/like", postHandler.ToggleLike)
		api.POST("/posts/:id/tags", postHandler.AttachTags)

		api.GET("/consultations", postHandler.ListConsultations)
		api.GET("/consultations/:id", postHandler.GetConsultation)

		api.GET("/points/balance", pointsHandler.Balance)
		api.GET("/points/history", pointsHandler.History)

		api.POST("/media/upload", mediaHandler.Upload)
	}

	admin := api.Group("")
	admin.Use(middleware.RequireRoles(string(entity.RoleAdmin)))
	{
		admin.POST("/posts/:id/admin-pick", postHandler.ToggleAdminPick)
		admin.POST("/ad-banners", bannerHandler.CreateBanner)
		admin.PATCH("/ad-banners/:id", bannerHandler.UpdateBanner)
		admin.DELETE("/ad-banners/:id", bannerHandler.DeleteBanner)
		admin.POST("/words", wordHandler.CreateWord)
		admin.GET("/words", wordHandler.ListWords)
		admin.POST("/words/rotate", wordHandler.Rotate)
	}

	// Kick off the daily word rotation and keep it running on a ticker.
	// The redis claim inside RotateDaily makes concurrent instances
	// safe.
	rotationCtx, stopRotation := context.WithCancel(context.Background())
	go runWordRotation(rotationCtx, wordUseCase, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Lingora API starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	stopRotation()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Lingora API exited")
}

func runWordRotation(ctx context.Context, wordUseCase usecase.WordUseCase, log *logger.Logger) {
	if _, err := wordUseCase.RotateDaily(ctx); err != nil {
		log.Error("Initial word rotation failed: %v", err)
	}

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := wordUseCase.RotateDaily(ctx); err != nil {
				log.Error("Word rotation failed: %v", err)
			}
		}
	}
}
