package main

import (
	"github.com/jonathan/resume-matcher/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveListen      string
	serveDownloadDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local intent API",
	Long: `Start an HTTP server that holds one workflow session and exposes its intents
(mode toggle, document selection, submit, report) plus a state event stream.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Address to listen on (default: listen from config)")
	serveCmd.Flags().StringVar(&serveDownloadDir, "out", "", "Directory for downloaded reports (default: download_dir from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := serveListen
	if addr == "" {
		addr = settings.Listen
	}

	client := newScoringClient()
	srv := server.New(server.Config{
		Addr:       addr,
		Controller: newController(client, serveDownloadDir),
		Service:    client,
		Logger:     logger,
	})
	logger.Info("using scoring service", "url", client.BaseURL())

	return srv.ListenAndStart(cmd.Context())
}
