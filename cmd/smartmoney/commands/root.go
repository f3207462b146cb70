package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dataDir   string
	outputDir string
	verbose   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "smartmoney",
	Short: "Smart-money options flow scanner",
	Long: `Smart-money scanner CLI

Reads pre-collected options flow, open-interest and sentiment caches,
resolves a direction per instrument and ranks bullish / bearish candidates.
S0 sources → S1 universe → S2 signals → S3 direction → S4 conviction → S5 stability → S6 export.

Usage:
  go run ./cmd/smartmoney [command]

Examples:
  go run ./cmd/smartmoney scan run --top 10
  go run ./cmd/smartmoney scheduler start
  go run ./cmd/smartmoney snapshot show
  go run ./cmd/smartmoney config check --thresholds thresholds.yaml`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags (override DATA_DIR / OUTPUT_DIR)
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "source cache directory (default $DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "snapshot directory (default $OUTPUT_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
