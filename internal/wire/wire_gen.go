// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"

	"github.com/sevigo/pr-triage/internal/app"
	"github.com/sevigo/pr-triage/internal/config"
	"github.com/sevigo/pr-triage/internal/github"
	"github.com/sevigo/pr-triage/internal/llm"
	"github.com/sevigo/pr-triage/internal/server"
	"github.com/sevigo/pr-triage/internal/slack"
	"github.com/sevigo/pr-triage/internal/triage"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	slogLogger := provideSlogLogger(cfg)

	model, err := provideModel(ctx, cfg, slogLogger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create model backend: %w", err)
	}

	classifier := llm.NewClassifier(cfg, model, slogLogger)
	channels := provideChannelMap(cfg, slogLogger)
	notifier := slack.New(cfg, channels, slogLogger)
	fetcher := github.NewFetcher(cfg, slogLogger)
	svc := triage.NewService(cfg, fetcher, classifier, notifier, slogLogger)
	srv := server.NewServer(ctx, cfg, svc, slogLogger)
	application := app.NewApp(cfg, svc, srv, slogLogger)

	cleanup := func() {}
	return application, cleanup, nil
}
