package main

import (
	"fmt"

	"github.com/jonathan/resume-matcher/internal/fileset"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [resume...]",
	Short: "Rank several resumes against one job description",
	Long: "Upload one job description and at least two resumes to the Scoring Service and print the comparison " +
		"in the order the service returned it. Resumes may be given with --resume or as arguments.",
	RunE: runCompare,
}

var (
	compareJD      string
	compareResumes []string
)

func init() {
	compareCmd.Flags().StringVarP(&compareJD, "jd", "j", "", "Path to the job description (required)")
	compareCmd.Flags().StringArrayVarP(&compareResumes, "resume", "r", nil, "Path to a resume (repeatable)")

	_ = compareCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	printer := observability.NewPrinter(cmd.OutOrStdout())

	paths := append([]string{compareJD}, compareResumes...)
	paths = append(paths, args...)
	files, err := fileset.LoadFiles(ctx, paths)
	if err != nil {
		return err
	}

	controller := newController(newScoringClient(), "")
	controller.Toggle()
	controller.SelectJobDescription(files[0])
	controller.AddResumes(files[1:]...)

	submitErr := controller.Submit(ctx)
	state := controller.State()
	printer.PrintComparison(state.Comparison)
	printer.PrintStatus(state.Status)
	if submitErr != nil {
		return fmt.Errorf("comparison failed: %w", submitErr)
	}
	return nil
}
