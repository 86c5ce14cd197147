// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"uslocal_backend/internal/category"
	"uslocal_backend/internal/common"
	"uslocal_backend/internal/config"
	"uslocal_backend/internal/feed"
	"uslocal_backend/internal/feedback"
	"uslocal_backend/internal/filestorage"
	"uslocal_backend/internal/firebase"
	"uslocal_backend/internal/jobs"
	"uslocal_backend/internal/listing"
	"uslocal_backend/internal/middleware"
	"uslocal_backend/internal/notification"
	"uslocal_backend/internal/placement"
	"uslocal_backend/internal/review"
	"uslocal_backend/internal/shared"
	"uslocal_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Jobs
	placementSweepJob *jobs.PlacementSweepJob
}

// NewServer builds the Gin engine, wires every module's routes, and
// prepares (but does not start) the HTTP server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	userHandler *user.Handler,
	categoryHandler *category.Handler,
	listingHandler *listing.Handler,
	reviewHandler *review.Handler,
	placementHandler *placement.Handler,
	feedHandler *feed.Handler,
	feedbackHandler *feedback.Handler,
	notificationHandler *notification.Handler,
	uploadHandler *filestorage.Handler,
	placementSweepJob *jobs.PlacementSweepJob,
	firebaseService *firebase.FirebaseService,
	userService shared.Service,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(firebaseService, userService, logger.Named("AuthMiddleware"))
	optionalAuthMW := middleware.OptionalAuthMiddleware(firebaseService, userService, logger.Named("OptionalAuthMiddleware"))
	adminRoleMW := middleware.RoleAuthMiddleware(common.RoleAdmin)

	// --- Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "US Local API is healthy!"})
	})

	// Uploaded images are served straight off local disk.
	if cfg.ImageStoragePath != "" {
		router.Static("/images", cfg.ImageStoragePath)
	}

	v1 := router.Group("/api/v1")

	userHandler.RegisterRoutes(v1, authMW)
	categoryHandler.RegisterRoutes(v1, authMW, adminRoleMW)
	listingHandler.RegisterRoutes(v1, authMW, optionalAuthMW, adminRoleMW)
	reviewHandler.RegisterRoutes(v1, authMW, adminRoleMW)
	placementHandler.RegisterRoutes(v1, authMW, adminRoleMW)
	feedHandler.RegisterRoutes(v1, optionalAuthMW)
	feedbackHandler.RegisterRoutes(v1, authMW, adminRoleMW)
	notificationHandler.RegisterRoutes(v1, authMW)
	uploadHandler.RegisterRoutes(v1, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:        httpServer,
		router:            router,
		cfg:               cfg,
		logger:            logger,
		placementSweepJob: placementSweepJob,
	}, nil
}

// Start launches background jobs and serves HTTP until Shutdown.
func (s *Server) Start() error {
	if s.placementSweepJob != nil {
		if err := s.placementSweepJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start placement sweep job", zap.Error(err))
		}
	} else {
		s.logger.Info("Placement sweep job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

// Shutdown stops background jobs and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.placementSweepJob != nil {
		s.placementSweepJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
