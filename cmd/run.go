package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/psyquest/internal/app"
	"github.com/abhisek/psyquest/internal/logging"
)

// runApp loads the catalog and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cat, source, err := loadCatalog(cmd.Context())
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	logger := logging.Nop()
	if cfg.Log.File != "" {
		logger, err = logging.NewFile(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer logger.Sync()
	}
	logger.Info("starting ui", zap.String("catalog", source), zap.Int("tests", len(cat.Tests())))

	skip, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(app.Options{
		Catalog:    cat,
		Source:     source,
		BaseURL:    cfg.Server.BaseURL,
		Logger:     logger,
		SkipSplash: skip,
	})
}

func init() {
	rootCmd.Flags().Bool("no-splash", false, "Start on the test list")
}
