package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sevigo/pr-triage/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows which external integrations have credentials configured",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		aiOK, aiMissing := cfg.AI.BackendConfigured()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "INTEGRATION\tSTATUS")
		fmt.Fprintf(w, "ai (%s)\t%s\n", cfg.AI.Provider, integrationStatus(aiOK, aiMissing))
		fmt.Fprintf(w, "slack\t%s\n", integrationStatus(cfg.Slack.BotToken != "", "SLACK_BOT_TOKEN"))
		fmt.Fprintf(w, "github\t%s\n", integrationStatus(cfg.GitHub.Token != "", "GITHUB_TOKEN"))
		return w.Flush()
	},
}

func integrationStatus(configured bool, missing string) string {
	if configured {
		return "configured"
	}
	return "missing " + missing
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.AddCommand(statusCmd)
}
