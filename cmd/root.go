package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spyglass-realty/permit-search/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "permit-search",
	Short: "Building-permit search across Central Texas jurisdictions",
	Long:  "Geocodes a street address to a city/county and cascades through jurisdiction permit portals, returning confirmed permits or manual search links.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
