package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/achavala/Meta-Engine-sub001/internal/brain"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "스캔 실행",
	Long: `Runs the smart-money pipeline once.

Subcommands:
  run   - run one scan and print the ranked candidates

Example:
  go run ./cmd/smartmoney scan run
  go run ./cmd/smartmoney scan run --json
  go run ./cmd/smartmoney scan run --no-persist --top 5`,
}

var (
	scanRunCmd = &cobra.Command{
		Use:   "run",
		Short: "스캔 1회 실행",
		Long: `Loads every source cache, scores the universe and prints the bullish and
bearish lists. Unless --no-persist is set the snapshot and audit entry are
written so the next scan can apply the direction-flip guard.`,
		RunE: runScan,
	}

	scanJSON      bool
	scanTop       int
	scanNoPersist bool
	scanID        string
)

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.AddCommand(scanRunCmd)

	// Flags
	scanRunCmd.Flags().BoolVar(&scanJSON, "json", false, "print the full result as JSON")
	scanRunCmd.Flags().IntVar(&scanTop, "top", 10, "rows per side in table output (0 = all)")
	scanRunCmd.Flags().BoolVar(&scanNoPersist, "no-persist", false, "read the previous snapshot but do not write one")
	scanRunCmd.Flags().StringVar(&scanID, "scan-id", "", "scan identifier (default: random UUID)")
}

func runScan(cmd *cobra.Command, args []string) error {
	a, err := newApp(scanJSON)
	if err != nil {
		return err
	}
	defer a.close()

	orch, err := a.orchestrator()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := orch.Run(ctx, brain.RunConfig{
		ScanID: scanID,
		DryRun: scanNoPersist,
	})
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	if scanJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printScanResult(result, scanTop)
	return nil
}

func printScanResult(result *brain.ScanResult, top int) {
	PrintHeader("Smart-Money Scan")
	PrintKeyValue("Scan ID", result.ScanID, 12)
	PrintKeyValue("Time", result.Timestamp.Format("2006-01-02 15:04:05 MST"), 12)
	PrintKeyValue("Instruments", fmt.Sprintf("%d", result.InstrumentsScanned), 12)
	PrintKeyValue("Sources", fmt.Sprintf("%d loaded %v", result.Quality.Loaded, result.SourcesLoaded), 12)
	PrintKeyValue("Fingerprint", result.Fingerprint, 12)
	PrintKeyValue("Flips", fmt.Sprintf("%d", result.Flips), 12)
	PrintKeyValue("Duration", result.Duration.String(), 12)

	PrintCandidates("Bullish", result.Bullish, top)
	PrintCandidates("Bearish", result.Bearish, top)

	fmt.Println()
	for _, w := range result.Warnings {
		PrintWarning(w)
	}
	switch {
	case result.Persisted:
		PrintSuccess("Snapshot saved")
	case len(result.Warnings) == 0:
		PrintInfo("Dry run: snapshot not written")
	}
}
