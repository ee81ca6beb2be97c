//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/sevigo/pr-triage/internal/app"
	"github.com/sevigo/pr-triage/internal/config"
	"github.com/sevigo/pr-triage/internal/github"
	"github.com/sevigo/pr-triage/internal/llm"
	"github.com/sevigo/pr-triage/internal/server"
	"github.com/sevigo/pr-triage/internal/slack"
	"github.com/sevigo/pr-triage/internal/triage"
)

func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(
		app.NewApp,
		server.NewServer,
		config.LoadConfig,
		triage.NewService,
		llm.NewClassifier,
		slack.New,
		github.NewFetcher,
		wire.Bind(new(triage.DiffFetcher), new(*github.Fetcher)),
		provideSlogLogger,
		provideModel,
		provideChannelMap,
	)
	return &app.App{}, nil, nil
}
