// File: cmd/server/main.go
package main

import (
	"context"
	"log" // Standard log for critical startup/shutdown messages before/after zap is active
	"os"
	"os/signal"
	"syscall"

	"uslocal_backend/internal/category"
	"uslocal_backend/internal/config"
	"uslocal_backend/internal/feedback"
	"uslocal_backend/internal/listing"
	"uslocal_backend/internal/notification"
	"uslocal_backend/internal/placement"
	"uslocal_backend/internal/platform/database"
	"uslocal_backend/internal/platform/logger"
	"uslocal_backend/internal/review"
	"uslocal_backend/internal/user"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrations()
		return
	}

	startServer()
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}

// runMigrations applies the GORM schema for every module and exits.
func runMigrations() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration for migrate: %v", err)
	}
	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger for migrate: %v", err)
	}
	db, err := database.NewGORM(cfg)
	if err != nil {
		appLogger.Fatal("FATAL: Failed to initialize database for migrate", zap.Error(err))
	}
	defer database.CloseGORMDB(db)

	appLogger.Info("Running schema migrations...")
	err = db.AutoMigrate(
		&user.User{},
		&user.Favorite{},
		&category.Category{},
		&listing.Listing{},
		&review.Review{},
		&placement.Placement{},
		&feedback.Feedback{},
		&notification.Notification{},
	)
	if err != nil {
		appLogger.Fatal("FATAL: Schema migration failed", zap.Error(err))
	}
	appLogger.Info("Schema migrations completed successfully.")
}
