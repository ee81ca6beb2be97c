package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sevigo/pr-triage/internal/wire"
)

var outputJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <pr-url>",
	Short: "Fetches a pull request diff and classifies its risk severity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		app, cleanup, err := wire.InitializeApp(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize app services: %w", err)
		}
		defer cleanup()

		result, err := app.Triage.Analyze(ctx, args[0])
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		if outputJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(result)
		}

		fmt.Printf("Verdict: %s\n\n%s\n", result.Verdict, result.Comment)
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	analyzeCmd.Flags().BoolVar(&outputJSON, "json", false, "Output the result as JSON")
	rootCmd.AddCommand(analyzeCmd)
}
