// {{RIPER-5-Enhanced:
//   Action: "Modified"
//   Task_ID: "Web Server Implementation"
//   Timestamp: "2025-11-27T13:20:00Z"
//   Authoring_Role: "LD"
//   Analysis_Performed: "Exposed string analysis, lookup, deletion and filtering over REST"
//   Principle_Applied: "Aether-Engineering-SOLID-S, RESTful API"
//   Quality_Check: "Gin framework with request ID, logging and metrics middleware"
// }}

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/analyzer"
	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/config"
	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/database"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Server represents the web server
type Server struct {
	engine    *gin.Engine
	server    *http.Server
	cfg       *config.Config
	service   *analyzer.Service
	db        database.Database
	startedAt time.Time
}

// NewServer creates a new web server
func NewServer(cfg *config.Config, service *analyzer.Service, db database.Database) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	// match on the escaped path so values containing "/" reach the :value param
	engine.UseRawPath = true
	engine.UnescapePathValues = true
	engine.Use(gin.Recovery())
	engine.Use(RequestIDMiddleware())
	engine.Use(LoggerMiddleware())
	if cfg.MetricsEnabled {
		engine.Use(MetricsMiddleware())
	}

	s := &Server{
		engine:    engine,
		cfg:       cfg,
		service:   service,
		db:        db,
		startedAt: time.Now(),
	}

	// Setup routes
	s.setupRoutes()

	// Create HTTP server
	s.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        engine,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return s
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	str := s.engine.Group("/strings")
	{
		str.POST("", s.handleCreate)
		str.GET("", s.handleList)
		str.GET("/filter-by-natural-language", s.handleNaturalLanguage)
		str.GET("/:value", s.handleGet)
		str.DELETE("/:value", s.handleDelete)
	}

	api := s.engine.Group("/api")
	{
		api.GET("/health", s.handleHealth)
	}

	if s.cfg.MetricsEnabled {
		s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start starts the web server
func (s *Server) Start() error {
	log.Infof("web server listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("shutting down web server...")
	return s.server.Shutdown(ctx)
}

// handleHealth returns health status
func (s *Server) handleHealth(c *gin.Context) {
	status, dbStatus, code := "ok", "connected", http.StatusOK
	if err := s.db.Ping(); err != nil {
		log.Warnf("health check: database ping failed: %v", err)
		status, dbStatus, code = "degraded", "unavailable", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": dbStatus,
		"uptime":   time.Since(s.startedAt).Round(time.Second).String(),
	})
}
