// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"uslocal_backend/internal/app"
	"uslocal_backend/internal/category"
	"uslocal_backend/internal/config"
	"uslocal_backend/internal/feed"
	"uslocal_backend/internal/feedback"
	"uslocal_backend/internal/filestorage"
	"uslocal_backend/internal/firebase"
	"uslocal_backend/internal/jobs"
	"uslocal_backend/internal/listing"
	"uslocal_backend/internal/notification"
	"uslocal_backend/internal/placement"
	"uslocal_backend/internal/platform/database"
	"uslocal_backend/internal/platform/logger"
	"uslocal_backend/internal/review"
	"uslocal_backend/internal/shared"
	"uslocal_backend/internal/user"

	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		provideDatabase,
		firebase.NewFirebaseService,
		provideFileStorage,

		// Core user services
		user.NewGORMRepository,
		user.NewService,
		wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
		wire.Bind(new(shared.Service), new(*user.ServiceImplementation)),
		user.NewHandler,

		// Categories
		category.NewGORMRepository,
		category.NewService,
		wire.Bind(new(category.Service), new(*category.ServiceImplementation)),
		category.NewHandler,

		// Notifications double as the listing moderation notifier.
		notification.NewGORMRepository,
		notification.NewService,
		wire.Bind(new(notification.Service), new(*notification.ServiceImplementation)),
		wire.Bind(new(listing.ModerationNotifier), new(*notification.ServiceImplementation)),
		notification.NewHandler,

		// Listings
		listing.NewGORMRepository,
		listing.NewService,
		wire.Bind(new(listing.Service), new(*listing.ServiceImplementation)),
		listing.NewHandler,

		// Reviews
		review.NewGORMRepository,
		review.NewService,
		wire.Bind(new(review.Service), new(*review.ServiceImplementation)),
		review.NewHandler,

		// Sponsored placements
		placement.NewGORMRepository,
		placement.NewService,
		wire.Bind(new(placement.Service), new(*placement.ServiceImplementation)),
		placement.NewHandler,

		// Home feed
		feed.NewService,
		wire.Bind(new(feed.Service), new(*feed.ServiceImplementation)),
		feed.NewHandler,

		// Feedback
		feedback.NewGORMRepository,
		feedback.NewService,
		wire.Bind(new(feedback.Service), new(*feedback.ServiceImplementation)),
		feedback.NewHandler,

		// Uploads
		filestorage.NewHandler,

		// Jobs
		jobs.NewPlacementSweepJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}

func provideDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewGORM(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		logger.Info("Closing database connection...")
		database.CloseGORMDB(db)
	}
	return db, cleanup, nil
}

func provideFileStorage(cfg *config.Config, logger *zap.Logger) (*filestorage.Service, error) {
	return filestorage.NewService(cfg.ImageStoragePath, cfg.ImagePublicBaseURL, logger)
}
