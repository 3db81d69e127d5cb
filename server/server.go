// Package server exposes the note store as a local JSON API for a browser
// front-end.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/existflow/sticky/internal/logger"
	"github.com/existflow/sticky/internal/notes"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// ThemeStore persists the dark mode flag
type ThemeStore interface {
	Dark() bool
	SetDark(dark bool) error
}

// Server is the local API server
type Server struct {
	store *notes.Store
	theme ThemeStore
	echo  *echo.Echo
	log   *logger.Logger

	accessLog io.Writer
}

// Option configures a Server
type Option func(*Server)

// WithAccessLog echoes one line per request to w
func WithAccessLog(w io.Writer) Option {
	return func(s *Server) { s.accessLog = w }
}

// New creates a new server over store and theme
func New(store *notes.Store, theme ThemeStore, opts ...Option) *Server {
	s := &Server{
		store: store,
		theme: theme,
		log:   logger.WithFields(logger.F("component", "server")),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.errorHandler

	e.Use(s.requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("2M"))

	// Health check
	e.GET("/health", s.handleHealth)

	// API v1
	api := e.Group("/api/v1")

	api.GET("/notes", s.handleListNotes)
	api.POST("/notes", s.handleCreateNote)
	api.DELETE("/notes", s.handleClearNotes)
	api.GET("/notes/:id", s.handleGetNote)
	api.PUT("/notes/:id", s.handleUpdateNote)
	api.DELETE("/notes/:id", s.handleDeleteNote)
	api.PUT("/notes/:id/notified", s.handleSetNotified)

	api.GET("/export", s.handleExport)
	api.POST("/import", s.handleImport)

	api.GET("/theme", s.handleGetTheme)
	api.PUT("/theme", s.handleSetTheme)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Server listening", logger.F("addr", addr))
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("Server shutting down")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"status": "ok", "notes": s.store.Len()})
}
