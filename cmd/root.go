package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/abhisek/psyquest/internal/config"
	"github.com/abhisek/psyquest/internal/logging"
	"github.com/abhisek/psyquest/internal/store"
)

var (
	v   = config.New()
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "psyquest",
	Short: "Personality quizzes in the terminal",
	Long:  "psyquest runs short multiple-choice personality tests, in the terminal or over HTTP, and turns the answers into a shareable result.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default: ./psyquest.yaml or ~/.config/psyquest/psyquest.yaml)")
	pf.String("db", "", "SQLite catalog store (overrides PSYQUEST_DB)")
	pf.String("catalog", "", "YAML catalog file (default: embedded catalog)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-format", "", "Log format: json or console")
	pf.String("log-file", "", "Write the interactive UI's log to this file")

	bindFlags(v, pf, map[string]string{
		"db":         "db",
		"catalog":    "catalog",
		"log.level":  "log-level",
		"log.format": "log-format",
		"log.file":   "log-file",
	})

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

// bindFlags ties config keys to flags. Flags left unset never override
// config files or environment.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// loadConfig merges defaults, the config file, environment and flags into cfg.
func loadConfig(cmd *cobra.Command) error {
	file, _ := cmd.Flags().GetString("config")
	c, err := config.Load(v, file)
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// newLogger builds the logger for non-interactive commands.
func newLogger() (*zap.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.Format)
}

// resolveDBPath returns the store path using --db / PSYQUEST_DB / config
// (highest priority), then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
