package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the analyses the Scoring Service stored for a session",
	Long: "Look up the server-side history for the session id printed after an analysis. " +
		"Local history lives only as long as a session or serve process.",
	RunE: runHistory,
}

var historySession string

func init() {
	historyCmd.Flags().StringVarP(&historySession, "session", "s", "", "Session id from a previous analysis (required)")
	_ = historyCmd.MarkFlagRequired("session")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), settings.MatchTimeout)
	defer cancel()

	items, err := newScoringClient().SessionHistory(ctx, historySession)
	if err != nil {
		return fmt.Errorf("failed to load session history: %w", err)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSessionHistory(historySession, items)
	return nil
}
