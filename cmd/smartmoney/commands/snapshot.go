package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
)

// snapshotCmd represents the snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "마지막 스캔 스냅샷 조회",
	Long: `Inspects the persisted last-scan snapshot and its audit trail.

Example:
  go run ./cmd/smartmoney snapshot show
  go run ./cmd/smartmoney snapshot history --limit 10`,
}

var (
	snapshotShowCmd = &cobra.Command{
		Use:   "show",
		Short: "마지막 스냅샷 출력",
		RunE:  showSnapshot,
	}

	snapshotHistoryCmd = &cobra.Command{
		Use:   "history",
		Short: "스캔 감사 이력 출력",
		RunE:  showHistory,
	}

	snapshotTop  int
	historyLimit int
)

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotShowCmd)
	snapshotCmd.AddCommand(snapshotHistoryCmd)

	snapshotShowCmd.Flags().IntVar(&snapshotTop, "top", 10, "rows per side (0 = all)")
	snapshotHistoryCmd.Flags().IntVar(&historyLimit, "limit", 20, "most recent entries to print (0 = all)")
}

func showSnapshot(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.close()

	snap, err := a.store.Previous(context.Background())
	if errors.Is(err, contracts.ErrNoSnapshot) {
		PrintInfo("No snapshot has been written yet")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	PrintHeader("Last Scan Snapshot")
	PrintKeyValue("Scan ID", snap.ScanID, 12)
	PrintKeyValue("Time", snap.Timestamp.Format("2006-01-02 15:04:05 MST"), 12)
	PrintKeyValue("Version", fmt.Sprintf("%d", snap.Version), 12)
	PrintKeyValue("Fingerprint", snap.DataFingerprint, 12)
	PrintKeyValue("Sources", strings.Join(snap.SourcesLoaded, ", "), 12)

	PrintCandidates("Bullish", snap.BullishCandidates, snapshotTop)
	PrintCandidates("Bearish", snap.BearishCandidates, snapshotTop)
	return nil
}

func showHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.close()

	entries, err := a.store.History(context.Background())
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if historyLimit > 0 && len(entries) > historyLimit {
		entries = entries[len(entries)-historyLimit:]
	}

	PrintHeader(fmt.Sprintf("Scan History (%d)", len(entries)))
	widths := []int{19, 36, 4, 4, 30, 30}
	PrintTableHeader([]string{"Time", "Scan ID", "Bull", "Bear", "Top bullish", "Top bearish"}, widths)
	for _, e := range entries {
		PrintTableRow([]string{
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.ScanID,
			fmt.Sprintf("%d", e.NBullish),
			fmt.Sprintf("%d", e.NBearish),
			truncate(strings.Join(e.Top5Bull, ","), widths[4]),
			truncate(strings.Join(e.Top5Bear, ","), widths[5]),
		}, widths)
	}
	return nil
}
