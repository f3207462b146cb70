package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
	"github.com/achavala/Meta-Engine-sub001/pkg/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "설정 검증",
	Long: `Validates the environment and the threshold file.

Example:
  go run ./cmd/smartmoney config check
  go run ./cmd/smartmoney config check --thresholds thresholds.yaml`,
}

var (
	configCheckCmd = &cobra.Command{
		Use:   "check",
		Short: "환경변수와 임계값 파일 검증",
		RunE:  checkConfig,
	}

	thresholdsPath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configCheckCmd)

	configCheckCmd.Flags().StringVar(&thresholdsPath, "thresholds", "", "threshold YAML to check (default $THRESHOLDS_FILE)")
}

func checkConfig(cmd *cobra.Command, args []string) error {
	PrintHeader("Configuration Check")

	// 1. Environment
	cfg, err := config.Load()
	if err != nil {
		PrintError(err.Error())
		return err
	}
	PrintKeyValue("Env", cfg.Env, 14)
	PrintKeyValue("Data dir", cfg.DataDir, 14)
	PrintKeyValue("Snapshot", fmt.Sprintf("%s (%s)", cfg.Snapshot.Backend, cfg.SnapshotPath()), 14)
	PrintKeyValue("Schedule", fmt.Sprintf("%s / %s %s", cfg.Schedule.MorningCron, cfg.Schedule.AfternoonCron, cfg.Schedule.Timezone), 14)

	// 2. Thresholds
	path := thresholdsPath
	if path == "" {
		path = cfg.ThresholdsFile
	}
	scan, err := scanconfig.LoadOrDefault(path)
	if err != nil {
		PrintError(err.Error())
		return err
	}

	hash, err := scanconfig.Hash(scan)
	if err != nil {
		return fmt.Errorf("hash thresholds: %w", err)
	}
	source := path
	if source == "" {
		source = "built-in defaults"
	}
	PrintKeyValue("Thresholds", source, 14)
	PrintKeyValue("Hash", hash[:16], 14)

	fmt.Println()
	warnings := scanconfig.Warn(scan)
	for _, w := range warnings {
		PrintWarning(fmt.Sprintf("[%s] %s", w.Code, w.Message))
	}
	PrintSuccess(fmt.Sprintf("Configuration valid (%d warnings)", len(warnings)))
	return nil
}
