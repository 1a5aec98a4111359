package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-matcher/internal/fileset"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/spf13/cobra"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight",
	Short: "List the keywords a resume and job description share",
	RunE:  runHighlight,
}

var (
	highlightResume string
	highlightJD     string
)

func init() {
	highlightCmd.Flags().StringVarP(&highlightResume, "resume", "r", "", "Path to the resume (required)")
	highlightCmd.Flags().StringVarP(&highlightJD, "jd", "j", "", "Path to the job description (required)")
	_ = highlightCmd.MarkFlagRequired("resume")
	_ = highlightCmd.MarkFlagRequired("jd")
	rootCmd.AddCommand(highlightCmd)
}

func runHighlight(cmd *cobra.Command, _ []string) error {
	files, err := fileset.LoadFiles(cmd.Context(), []string{highlightResume, highlightJD})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), settings.MatchTimeout)
	defer cancel()

	h, err := newScoringClient().HighlightKeywords(ctx, files[0], files[1])
	if err != nil {
		return fmt.Errorf("failed to highlight keywords: %w", err)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintHighlight(h)
	return nil
}
