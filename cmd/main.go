package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/pagebridge/internal/app"
	"github.com/yungbote/pagebridge/internal/platform/logger"
)

var rootCmd = &cobra.Command{
	Use:           "pagebridge",
	Short:         "Read-only content API over a page tree",
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       app.Version,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, schemaCmd, checkCmd)
}

// setup loads .env and the config, returning a logger in the configured mode.
func setup() (*logger.Logger, app.Config, error) {
	app.LoadDotEnv()
	cfg := app.LoadConfig(nil)
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, cfg, fmt.Errorf("init logger: %w", err)
	}
	return log, cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
