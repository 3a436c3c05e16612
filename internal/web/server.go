package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/kozaktomas/photo-report/internal/config"
	"github.com/kozaktomas/photo-report/internal/web/handlers"
	"github.com/kozaktomas/photo-report/internal/web/middleware"
)

// Server bundles the router, the per-session draft state and the HTTP
// listener for the report editor.
type Server struct {
	config         *config.Config
	router         *chi.Mux
	httpServer     *http.Server
	draftStore     *handlers.DraftStore
	sessionManager *middleware.SessionManager
}

// NewServer wires a ready-to-start web server from the configuration.
func NewServer(cfg *config.Config) *Server {
	r := chi.NewRouter()

	// Each browser session works on its own draft
	draftStore := handlers.NewDraftStore()
	sessionManager := middleware.NewSessionManager(cfg.Web.SessionSecret)

	// Drop the draft when its session expires
	sessionManager.OnExpire(draftStore.Delete)

	s := &Server{
		config:         cfg,
		router:         r,
		draftStore:     draftStore,
		sessionManager: sessionManager,
	}

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(2 * time.Minute))
	r.Use(middleware.CORS())
	r.Use(middleware.SecurityHeaders())

	s.setupRoutes(sessionManager)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // Long timeout for uploads and PDF export
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown stops the session janitor and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down web server...")

	if s.sessionManager != nil {
		s.sessionManager.Stop()
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router exposes the chi mux so tests can drive the full middleware chain.
func (s *Server) Router() *chi.Mux {
	return s.router
}
