package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gatepass/internal/adapters/http/routes"
	"gatepass/internal/adapters/messaging"
	"gatepass/internal/adapters/persistence/models"
	"gatepass/internal/adapters/persistence/repositories"
	"gatepass/internal/config"
	"gatepass/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "gatepass/docs" // Swagger docs
)

// @title Gate Pass API
// @version 1.0
// @description Campus gate pass requests, moderator decisions and gate use.

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

// run serves until shutdown. Storage and backups are released before it returns.
func run(cfg *config.Config) error {
	// Open snapshot storage
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}
	defer closeStore()

	repo := repositories.NewSnapshotRepository(
		store,
		config.SeedSnapshot,
		repositories.WithSerializedWrites(cfg.Storage.SerializeWrites),
	)

	// Pass events (disabled without AMQP_URL)
	var publisher services.EventPublisher
	if cfg.Events.AMQPURL != "" {
		publisher = messaging.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Queue)
		log.Printf("✅ Pass events enabled [queue: %s]", cfg.Events.Queue)
	}
	notifier := services.NewNotificationService(publisher)

	// Scheduled snapshot backups
	if cfg.Backup.Schedule != "" {
		backupService := services.NewBackupService(repo, cfg.Backup.Dir)
		if err := backupService.Start(cfg.Backup.Schedule); err != nil {
			return fmt.Errorf("failed to start backups: %w", err)
		}
		defer backupService.Stop()
	}

	// Create Fiber app with middlewares
	app := routes.NewApp(cfg)

	// Setup routes
	routes.Setup(app, repo, notifier, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %s is already in use, choose another PORT or stop the service using it: %w", cfg.Port, err)
		}
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// openStore selects the snapshot store for STORAGE_DRIVER
func openStore(cfg *config.Config) (repositories.SnapshotStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMySQL:
		db, err := config.ConnectDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := models.AutoMigrate(db); err != nil {
			_ = config.CloseDatabase(db)
			return nil, nil, err
		}
		log.Println("✅ Database migration completed")
		return repositories.NewMySQLStore(db, cfg.Storage.Key), func() {
			_ = config.CloseDatabase(db)
		}, nil

	case config.StorageRedis:
		client, err := config.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewRedisStore(client, cfg.Storage.Key), func() {
			_ = client.Close()
		}, nil

	case config.StorageMemory:
		log.Println("⚠️ Using in-memory storage, data is lost on restart")
		return repositories.NewMemoryStore(), func() {}, nil

	default:
		return repositories.NewFileStore(cfg.Storage.File), func() {}, nil
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
