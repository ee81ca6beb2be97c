// Package app initializes and orchestrates the main components of the PR
// triage service. It wires together the configuration, server, and the
// triage pipeline.
package app

import (
	"log/slog"

	"github.com/sevigo/pr-triage/internal/config"
	"github.com/sevigo/pr-triage/internal/server"
	"github.com/sevigo/pr-triage/internal/triage"
)

// App holds the main application components. Triage is exposed so the CLI can
// run the analyze pipeline without going through HTTP.
type App struct {
	cfg    *config.Config
	server *server.Server
	logger *slog.Logger

	Triage *triage.Service
}

// NewApp assembles the application from its wired components.
func NewApp(cfg *config.Config, svc *triage.Service, srv *server.Server, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		server: srv,
		logger: logger,
		Triage: svc,
	}
}

// Start runs the HTTP server and blocks until shutdown or error.
func (a *App) Start() error {
	a.logger.Info("starting PR triage service",
		"server_port", a.cfg.Server.Port,
		"llm_provider", a.cfg.AI.Provider,
		"llm_protocol", a.cfg.AI.Protocol)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.logger.Info("shutting down PR triage service")

	if err := a.server.Stop(); err != nil {
		a.logger.Error("error during HTTP server shutdown", "error", err)
		return err
	}

	a.logger.Info("PR triage service stopped")
	return nil
}
