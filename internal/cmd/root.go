package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"gestorpro/internal/config"
	"gestorpro/internal/database"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gestorpro",
	Short: "GestorPro - offline point of sale and inventory",
	Long: `GestorPro keeps a small shop's catalog, sales, receivables, customers and
quotes in one JSON file on this computer, and serves the register UI on a
local address.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "folder holding database.json (default: user config dir)")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration, installs the logger and opens the store.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, *database.Store, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	store := database.NewStore(cfg.DataDir, logger)
	if err := store.Initialize(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize data file: %w", err)
	}
	return cfg, logger, store, nil
}
