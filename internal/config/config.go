package config

import (
	"log/slog"

	"github.com/spf13/viper"

	"github.com/sevigo/pr-triage/internal/logger"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// GitHubConfig holds everything needed to reach the diff sources. Token is
// optional at startup; the analyze path enforces its presence per request,
// and the status endpoint reports whether it is set.
type GitHubConfig struct {
	Token         string
	APIBaseURL    string
	MirrorBaseURL string
}

// SlackConfig holds notification settings. ChannelMapFile points to an
// optional YAML file overriding the default verdict-to-channel mapping.
type SlackConfig struct {
	BotToken       string
	ChannelMapFile string
}

// AIConfig holds the model backend selection. Provider chooses the LLM
// backend (gemini or ollama); Protocol chooses how its output is reduced to a
// verdict ("two-pass" natural language or "structured" JSON).
type AIConfig struct {
	Provider     string
	Protocol     string
	Model        string
	GeminiAPIKey string
	OllamaHost   string
}

// Config holds the application's configuration values. It is constructed once
// at process start and passed by reference into the components that need it.
type Config struct {
	Server  ServerConfig
	Logging logger.Config
	GitHub  GitHubConfig
	Slack   SlackConfig
	AI      AIConfig
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, and assembles the Config struct. Missing credentials
// are not startup errors: the service degrades per request instead, and the
// status endpoint reports which integrations are configured.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("LOG_OUTPUT", "stdout")
	viper.SetDefault("GITHUB_API_URL", "https://api.github.com")
	viper.SetDefault("GITHUB_MIRROR_URL", "https://patch-diff.githubusercontent.com")
	viper.SetDefault("SLACK_CHANNELS_FILE", "channels.yml")
	viper.SetDefault("LLM_PROVIDER", "gemini")
	viper.SetDefault("LLM_PROTOCOL", "two-pass")
	viper.SetDefault("OLLAMA_HOST", "http://localhost:11434")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Debug("no .env file loaded", "error", err)
		}
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Logging: logger.Config{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
			Output: viper.GetString("LOG_OUTPUT"),
		},
		GitHub: GitHubConfig{
			Token:         viper.GetString("GITHUB_TOKEN"),
			APIBaseURL:    viper.GetString("GITHUB_API_URL"),
			MirrorBaseURL: viper.GetString("GITHUB_MIRROR_URL"),
		},
		Slack: SlackConfig{
			BotToken:       viper.GetString("SLACK_BOT_TOKEN"),
			ChannelMapFile: viper.GetString("SLACK_CHANNELS_FILE"),
		},
		AI: AIConfig{
			Provider:     viper.GetString("LLM_PROVIDER"),
			Protocol:     viper.GetString("LLM_PROTOCOL"),
			Model:        generatorModelName(),
			GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
			OllamaHost:   viper.GetString("OLLAMA_HOST"),
		},
	}, nil
}

// generatorModelName resolves the model name with a provider-specific default.
func generatorModelName() string {
	if name := viper.GetString("GENERATOR_MODEL_NAME"); name != "" {
		return name
	}
	if viper.GetString("LLM_PROVIDER") == "ollama" {
		return "gemma3:latest"
	}
	return "gemini-2.5-flash"
}

// BackendConfigured reports whether the selected model backend has the
// credentials it needs, and if not, which variable is missing. Ollama needs no
// credential, only a host, which always has a default.
func (c AIConfig) BackendConfigured() (bool, string) {
	if c.Provider == "gemini" && c.GeminiAPIKey == "" {
		return false, "GEMINI_API_KEY"
	}
	return true, ""
}
