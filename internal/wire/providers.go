package wire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"

	"github.com/sevigo/pr-triage/internal/config"
	"github.com/sevigo/pr-triage/internal/core"
	"github.com/sevigo/pr-triage/internal/llm"
	"github.com/sevigo/pr-triage/internal/logger"
)

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	return logger.NewLogger(cfg.Logging, nil)
}

// provideModel creates the configured model backend. A gemini provider
// without an API key yields a nil backend rather than an error: the
// classifier then degrades every result to NEEDS_REVIEW, which keeps the
// webhook path alive on an unconfigured deployment.
func provideModel(ctx context.Context, cfg *config.Config, logger *slog.Logger) (llm.TextGenerator, error) {
	switch cfg.AI.Provider {
	case "gemini":
		if cfg.AI.GeminiAPIKey == "" {
			logger.Warn("GEMINI_API_KEY is not set, classification degrades to NEEDS_REVIEW")
			return nil, nil
		}
		return gemini.New(ctx,
			gemini.WithModel(cfg.AI.Model),
			gemini.WithAPIKey(cfg.AI.GeminiAPIKey),
		)

	case "ollama":
		return ollama.New(
			ollama.WithServerURL(cfg.AI.OllamaHost),
			ollama.WithModel(cfg.AI.Model),
			ollama.WithLogger(logger),
		)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.AI.Provider)
	}
}

// provideChannelMap loads the verdict routing, falling back to the defaults
// when the file is absent or unusable.
func provideChannelMap(cfg *config.Config, logger *slog.Logger) map[core.Verdict]string {
	channels, err := config.LoadChannelMap(cfg.Slack.ChannelMapFile)
	if err != nil {
		if errors.Is(err, config.ErrChannelConfigNotFound) {
			logger.Debug("no channel config file, using default routing", "path", cfg.Slack.ChannelMapFile)
		} else {
			logger.Warn("failed to load channel config, using default routing", "error", err)
			channels = config.DefaultChannelMap()
		}
	}
	return channels
}
