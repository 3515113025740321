package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"community-wins-system/config"
	"community-wins-system/handlers"
	"community-wins-system/models"
	"community-wins-system/pkg/logger"
	"community-wins-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️  No .env file found, reading environment variables directly")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFormat, cfg.LogOutput); err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 2 * 1024 * 1024,
	})

	origins := strings.Split(cfg.AllowedOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Whop-Signature",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logger.Errorf("failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.WinSubmission{},
		&models.Bounty{},
		&models.Payout{},
		&models.Notification{},
		&models.LeaderboardSnapshot{},
	); err != nil {
		logger.Errorf("failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Redis is optional: without it sessions live in process memory and the
	// leaderboard is rendered from the DB on every read.
	var redisClient *redis.Client
	var sessionStorage services.SessionStorage
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		sessionStorage = services.NewRedisSessionStorage(redisClient)
	} else {
		logger.Warn("REDIS_ADDR not set, sessions will not survive a restart")
		sessionStorage = services.NewMemorySessionStorage()
	}

	sessions := services.NewSessionStore(sessionStorage)
	userService := services.NewUserService(db)
	authService := services.NewAuthService(userService, services.NewWhopClient(cfg.WhopAPIURL), sessions)
	winService := services.NewWinService(db)
	reviewService := services.NewReviewService(db, userService)
	bountyService := services.NewBountyService(db)
	leaderboardService := services.NewLeaderboardService(db, redisClient)
	webhookService := services.NewWebhookService(db, userService, cfg.WebhookSecret)

	leaderboardService.StartSnapshotScheduler(cfg.SnapshotInterval, cfg.SnapshotTopN)

	handlers.SetupAuthRoutes(app, authService)
	handlers.SetupWinRoutes(app, winService, reviewService, sessions)
	handlers.SetupBountyRoutes(app, bountyService, sessions)
	handlers.SetupLeaderboardRoutes(app, leaderboardService)
	handlers.SetupWebhookRoutes(app, webhookService)
	handlers.SetupHealthRoutes(app, db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logger.Errorf("Server error: %v", err)
		}
	}()

	logger.Infof("✅ Server running on http://localhost:%d", cfg.Port)
	logger.Infof("✅ Leaderboard snapshots every %s (top %d)", cfg.SnapshotInterval, cfg.SnapshotTopN)
	logger.Infof("✅ CORS configured for origins: %s", strings.Join(origins, ","))

	<-ctx.Done()
	logger.Info("Shutting down server...")
	_ = app.Shutdown()
}
