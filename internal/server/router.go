package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sevigo/pr-triage/internal/config"
	"github.com/sevigo/pr-triage/internal/server/handler"
	"github.com/sevigo/pr-triage/internal/triage"
)

// NewRouter creates and configures a new HTTP router with middleware and API routes.
func NewRouter(cfg *config.Config, svc *triage.Service, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Configure middleware stack. The request timeout must cover a full
	// retry sequence including a rate-limit wait.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	statusHandler := handler.NewStatusHandler(cfg)
	r.Get("/status", statusHandler.Handle)

	// API routes
	r.Route("/api", func(r chi.Router) {
		webhookHandler := handler.NewWebhookHandler(svc, logger)
		analyzeHandler := handler.NewAnalyzeHandler(svc, logger)
		r.Post("/github-webhook", webhookHandler.Handle)
		r.Post("/analyze-pr", analyzeHandler.Handle)
	})

	return r
}
