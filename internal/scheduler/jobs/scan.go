package jobs

import (
	"context"
	"fmt"

	"github.com/achavala/Meta-Engine-sub001/internal/brain"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
)

// ScanRunner executes one scan
type ScanRunner interface {
	Run(ctx context.Context, config brain.RunConfig) (*brain.ScanResult, error)
}

// Publisher receives every completed scan (e.g. the ops stream hub)
type Publisher interface {
	Publish(result *brain.ScanResult)
}

// ScanJob runs a full smart-money scan on a session schedule
// ⭐ SSOT: 세션 스캔 스케줄은 이 Job에서만
type ScanJob struct {
	name      string
	schedule  string
	runner    ScanRunner
	publisher Publisher // optional
	logger    *logger.Logger
}

// NewScanJob creates a new scan job
func NewScanJob(name, schedule string, runner ScanRunner, publisher Publisher, log *logger.Logger) *ScanJob {
	return &ScanJob{
		name:      name,
		schedule:  schedule,
		runner:    runner,
		publisher: publisher,
		logger:    log.WithField("job", name),
	}
}

// SessionJobs returns the morning and afternoon scans
func SessionJobs(morningCron, afternoonCron string, runner ScanRunner, publisher Publisher, log *logger.Logger) []*ScanJob {
	return []*ScanJob{
		NewScanJob("scan_morning", morningCron, runner, publisher, log),
		NewScanJob("scan_afternoon", afternoonCron, runner, publisher, log),
	}
}

// Name returns the job name
func (j *ScanJob) Name() string {
	return j.name
}

// Schedule returns the cron schedule (with seconds)
func (j *ScanJob) Schedule() string {
	return j.schedule
}

// Run executes one persisted scan
func (j *ScanJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled scan")

	result, err := j.runner.Run(ctx, brain.RunConfig{})
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	if j.publisher != nil {
		j.publisher.Publish(result)
	}

	log := j.logger.WithFields(map[string]interface{}{
		"scan_id":   result.ScanID,
		"bullish":   len(result.Bullish),
		"bearish":   len(result.Bearish),
		"flips":     result.Flips,
		"persisted": result.Persisted,
	})
	if len(result.Warnings) > 0 {
		log.WithField("warnings", result.Warnings).Warn("Scheduled scan completed with warnings")
		return nil
	}
	log.Info("Scheduled scan completed")

	return nil
}
