package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the Scoring Service is reachable",
	RunE:  runHealth,
}

var healthTimeout time.Duration

func init() {
	healthCmd.Flags().DurationVar(&healthTimeout, "timeout", 5*time.Second, "How long to wait for the service")
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
	defer cancel()

	client := newScoringClient()
	status, err := client.Health(ctx)
	if err != nil {
		return fmt.Errorf("scoring service at %s is unavailable: %w", client.BaseURL(), err)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintHealth(client.BaseURL(), status)
	return nil
}
