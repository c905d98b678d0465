package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/psyquest/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tests over HTTP",
	Long: `Run the JSON API: test listing, questions, answer encoding and result
resolution, plus /healthz and Prometheus /metrics.`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", "", "Listen address (default :8080)")
	f.String("base-url", "", "Public base URL used in share links")
	f.Int("cache-size", 0, "Result cache entries, 0 disables (default 1024)")
	f.StringSlice("cors-origin", nil, "Allowed CORS origins (default *)")

	bindFlags(v, f, map[string]string{
		"server.addr":         "addr",
		"server.base_url":     "base-url",
		"server.cache_size":   "cache-size",
		"server.cors_origins": "cors-origin",
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cat, source, err := loadCatalog(cmd.Context())
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	srv, err := server.New(cat, server.Options{
		BaseURL:     cfg.Server.BaseURL,
		CacheSize:   cfg.Server.CacheSize,
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("serving",
		zap.String("addr", cfg.Server.Addr),
		zap.String("catalog", source),
		zap.Int("tests", len(cat.Tests())),
	)
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}
