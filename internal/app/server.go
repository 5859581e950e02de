// Package app assembles the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/config"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/email"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/geocode"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/jobs"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/middleware"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/property"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/review"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/schema"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger
	db         *gorm.DB

	storeHealth *jobs.StoreHealthJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	propertyHandler *property.Handler,
	reviewHandler *review.Handler,
	emailHandler *email.Handler,
	geocodeHandler *geocode.Handler,
	storeHealth *jobs.StoreHealthJob,
) *Server {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	router := gin.New()

	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins, logger.Named("CORS")))

	s := &Server{
		router:      router,
		cfg:         cfg,
		logger:      logger,
		db:          db,
		storeHealth: storeHealth,
	}

	api := router.Group("/api")
	api.GET("/health", s.health)
	propertyHandler.RegisterRoutes(api)
	reviewHandler.RegisterRoutes(api)
	emailHandler.RegisterRoutes(api)
	geocodeHandler.RegisterRoutes(api)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine { return s.router }

// health answers before touching the store; the connectivity check follows
// in the background. database reports the previous check's result.
func (s *Server) health(c *gin.Context) {
	database := "unknown"
	if s.storeHealth != nil {
		if up, known := s.storeHealth.Status(); known && up {
			database = "up"
		} else if known {
			database = "down"
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"status":    "OK",
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if s.storeHealth != nil {
		s.storeHealth.CheckAsync()
	}
}

// Bootstrap runs the one-shot startup work. Failures are logged only.
func (s *Server) Bootstrap() {
	schema.Run(s.db, s.logger)
	if s.storeHealth == nil {
		return
	}
	if err := s.storeHealth.SetupAndStart(); err != nil {
		s.logger.Error("Failed to start store health job", zap.Error(err))
	}
}

// Start bootstraps and then blocks serving HTTP.
func (s *Server) Start() error {
	s.Bootstrap()

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

// Shutdown stops background jobs and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.storeHealth != nil {
		s.storeHealth.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
