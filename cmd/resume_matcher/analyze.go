package main

import (
	"fmt"

	"github.com/jonathan/resume-matcher/internal/fileset"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one resume against one job description",
	Long: "Upload a resume and a job description (PDF or DOCX) to the Scoring Service and print the match analysis. " +
		"With --report the PDF report is downloaded as well.",
	RunE: runAnalyze,
}

var (
	analyzeResume string
	analyzeJD     string
	analyzeReport bool
	analyzeOut    string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to the resume (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJD, "jd", "j", "", "Path to the job description (required)")
	analyzeCmd.Flags().BoolVar(&analyzeReport, "report", false, "Download the PDF report after a successful analysis")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Directory for the downloaded report (default: download_dir from config)")

	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = analyzeCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	printer := observability.NewPrinter(cmd.OutOrStdout())

	files, err := fileset.LoadFiles(ctx, []string{analyzeResume, analyzeJD})
	if err != nil {
		return err
	}

	controller := newController(newScoringClient(), analyzeOut)
	controller.SelectResume(files[0])
	controller.SelectJobDescription(files[1])

	submitErr := controller.Submit(ctx)
	state := controller.State()
	printer.PrintAnalysis(state.Analysis)
	printer.PrintStatus(state.Status)
	if submitErr != nil {
		return fmt.Errorf("analysis failed: %w", submitErr)
	}

	if !analyzeReport {
		return nil
	}
	saved, err := controller.ExportReport(ctx)
	printer.PrintStatus(controller.State().Status)
	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s (%d bytes)\n", saved.Path, saved.Bytes)
	return nil
}
