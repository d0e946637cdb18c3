package cmd

import (
	"fmt"
	"os"

	"catalog-reconciler/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "catalog-reconciler",
	Short: "Product catalog reconciliation",
	Long: `Catalog Reconciler merges a master product feed and a supplement feed
(JSON, XML or CSV) into one canonical product list, exports it as JSON
and persists it into the products table.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Debug preset for ISO8601 timestamps, console encoding for terminals.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().String("profiles", "", "YAML file with additional source profiles (overrides RECONCILE_PROFILES_FILE)")
}
