package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/minazuki-dev/todo-list/api"
	"github.com/minazuki-dev/todo-list/config"
	"github.com/minazuki-dev/todo-list/db"
	"github.com/minazuki-dev/todo-list/log"
)

// Server owns and coordinates all application components
type Server struct {
	cfg      *config.Config
	database *db.DB

	router *gin.Engine
	http   *http.Server
}

// New creates a new server with all components initialized
func New(cfg *config.Config) (*Server, error) {
	s := &Server{cfg: cfg}

	log.Info().Str("path", cfg.DatabasePath).Msg("initializing database")
	database, err := db.Open(db.Config{Path: cfg.DatabasePath})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s.database = database

	s.setupRouter()

	log.Info().Msg("server initialized")
	return s, nil
}

// DB returns the storage handle, mainly for tests
func (s *Server) DB() *db.DB {
	return s.database
}

// Router returns the HTTP handler, mainly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter creates and configures the Gin router
func (s *Server) setupRouter() {
	if !s.cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	s.router.Use(gin.Recovery())
	s.router.Use(log.GinLogger())
	s.router.Use(s.corsMiddleware())
	s.router.Use(gzip.Gzip(gzip.DefaultCompression))

	s.router.SetTrustedProxies(nil)

	api.SetupRoutes(s.router, s.database)
}

// corsMiddleware restricts cross-origin access to the single configured
// client origin, the four API methods plus preflight, and the
// Content-Type header.
func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Header.Get("Origin") == s.cfg.ClientOrigin {
			c.Writer.Header().Set("Access-Control-Allow-Origin", s.cfg.ClientOrigin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Start starts the HTTP server (blocks until shutdown or failure)
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:     fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:  s.router,
		ErrorLog: log.StdErrorLogger(), // Route Go's internal HTTP errors through zerolog
	}

	log.Info().
		Str("addr", s.http.Addr).
		Str("env", s.cfg.Env).
		Msg("HTTP server starting")

	return s.http.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("shutting down server")

	// Stop accepting new requests and wait for in-flight ones
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("http server shutdown error")
		}
	}

	// Close database last
	if s.database != nil {
		if err := s.database.Close(); err != nil {
			log.Error().Err(err).Msg("database close error")
			return err
		}
	}

	log.Info().Msg("server stopped")
	return nil
}
