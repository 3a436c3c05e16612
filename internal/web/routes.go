package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/photo-report/internal/report"
	"github.com/kozaktomas/photo-report/internal/web/handlers"
	"github.com/kozaktomas/photo-report/internal/web/middleware"
	"github.com/kozaktomas/photo-report/internal/web/static"
)

func (s *Server) setupRoutes(sessionManager *middleware.SessionManager) {
	// Create handlers
	composer := report.NewComposer(s.config.Render.FontPath)
	reportHandler := handlers.NewReportHandler(s.config, s.draftStore, composer)

	// Health check (no session required)
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Every report route is scoped to a browser session.
		// The middleware creates one on first contact.
		r.Group(func(r chi.Router) {
			r.Use(middleware.WithSession(sessionManager))

			// Report metadata
			r.Get("/report", reportHandler.GetReport)
			r.Put("/report", reportHandler.UpdateReport)
			r.Delete("/report", reportHandler.ClearReport)

			// Pages
			r.Post("/report/pages", reportHandler.AddPage)
			r.Put("/report/pages/{id}", reportHandler.UpdatePage)
			r.Delete("/report/pages/{id}", reportHandler.DeletePage)
			r.Get("/report/pages/{id}/thumbnail", reportHandler.Thumbnail)

			// Export
			r.Get("/report/pdf", reportHandler.ExportPDF)
		})
	})

	// Serve the embedded frontend
	s.router.Get("/*", s.serveUI)
}

// serveUI serves the embedded single-file web UI.
func (s *Server) serveUI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(static.IndexHTML)
}
