package api

import (
	"log/slog"
	"net/http"

	"github.com/archetype-tools/proteusview/internal/config"
	"github.com/archetype-tools/proteusview/internal/export"
	"github.com/archetype-tools/proteusview/internal/i18n"
	"github.com/archetype-tools/proteusview/internal/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for proteusview.
type Server struct {
	router   chi.Router
	renderer *render.Renderer
	bundle   *i18n.Bundle
	pdf      export.PageExporter // nil when the deployment has no PDF converter
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server. pdf may be nil, in
// which case the PDF export endpoint reports itself unavailable.
func NewServer(renderer *render.Renderer, bundle *i18n.Bundle, pdf export.PageExporter, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		renderer: renderer,
		bundle:   bundle,
		pdf:      pdf,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/render", s.handleRender)
		r.Post("/api/export/html", s.handleExportHTML)
		r.Post("/api/export/pdf", s.handleExportPDF)
		r.Get("/api/languages", s.handleLanguages)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
