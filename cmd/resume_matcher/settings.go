package main

import (
	"log/slog"
	"os"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/logging"
	"github.com/jonathan/resume-matcher/internal/report"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/workflow"
	"github.com/spf13/cobra"
)

var (
	configPath     string
	flagServiceURL string
	flagLogLevel   string
	flagLogFormat  string

	settings config.Config
	logger   = slog.Default()
)

// loadSettings resolves the configuration (flags over env over file over
// defaults) and installs the logger before any subcommand runs.
func loadSettings(_ *cobra.Command, _ []string) error {
	loaded, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	flags := config.Config{
		ServiceURL: flagServiceURL,
		LogLevel:   flagLogLevel,
		LogFormat:  flagLogFormat,
	}
	merged := flags.MergeWithDefaults(*loaded)
	if err := merged.Validate(); err != nil {
		return err
	}

	l, err := logging.New(merged.LogLevel, merged.LogFormat, os.Stderr)
	if err != nil {
		return err
	}
	settings = merged
	logger = l
	slog.SetDefault(l)
	logger.Debug("configuration loaded", "service_url", settings.ServiceURL, "download_dir", settings.DownloadDir)
	return nil
}

func newScoringClient() *scoring.Client {
	return scoring.NewClient(scoring.Options{
		BaseURL: settings.ServiceURL,
		Logger:  logger,
	})
}

// newController wires the workflow to the Scoring Service and a report
// directory.
func newController(client *scoring.Client, downloadDir string) *workflow.Controller {
	if downloadDir == "" {
		downloadDir = settings.DownloadDir
	}
	return workflow.NewController(workflow.Options{
		Scorer:         client,
		Exporter:       report.NewExporter(client, report.NewDirPersister(downloadDir), nil),
		MatchTimeout:   settings.MatchTimeout,
		CompareTimeout: settings.CompareTimeout,
		ReportTimeout:  settings.ReportTimeout,
		Logger:         logger,
	})
}
