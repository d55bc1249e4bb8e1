package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/logger"
	"github.com/abhisek/mathgen/internal/store"
)

var (
	cfgFile string
	cfg     = config.DefaultConfig()
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "mathgen",
	Short: "Randomized math practice problems",
	Long: "mathgen generates randomized math practice problems with worked answers.\n" +
		"Every generator declares its parameters, presets and rules; run\n" +
		"'mathgen describe <generator>' to see them.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default $XDG_CONFIG_HOME/mathgen/config.yaml)")
	pf.String("db", "", "Path to SQLite history database (overrides MATHGEN_DB env var)")
	pf.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error, disabled")
	pf.Bool("log-json", false, "Log as JSON")
	for _, name := range []string{"db", "log-level", "log-json"} {
		_ = v.BindPFlag(name, pf.Lookup(name))
	}

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig loads the configuration and installs the logger on the
// command context. Flags of the running command that share a config key
// (seed, workers, format) take precedence over the environment and file.
func initConfig(cmd *cobra.Command) error {
	for _, name := range []string{"seed", "workers", "format"} {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(name, f); err != nil {
				return err
			}
		}
	}

	loaded, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	log := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		Output:     cmd.ErrOrStderr(),
		JSON:       cfg.LogJSON,
		TimeFormat: "15:04:05",
	})
	if f := config.ConfigFile(v); f != "" {
		log.Debug("Using config file", "file", f)
	}
	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), log))
	return nil
}

// resolveDBPath returns the database path using --db or MATHGEN_DB (both
// land in cfg.DBPath), then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore(ctx context.Context) (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.FromContext(ctx).Debug("Opened history store", "path", dbPath)
	return st, nil
}
