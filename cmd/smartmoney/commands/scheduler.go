package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/achavala/Meta-Engine-sub001/internal/api"
	"github.com/achavala/Meta-Engine-sub001/internal/api/handlers"
	"github.com/achavala/Meta-Engine-sub001/internal/scheduler"
	"github.com/achavala/Meta-Engine-sub001/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `Runs the session scans on a cron schedule.

Subcommands:
  start   - 스케줄러 시작
  list    - 등록된 작업 목록
  run     - 특정 작업 즉시 실행

Example:
  go run ./cmd/smartmoney scheduler start
  go run ./cmd/smartmoney scheduler list
  go run ./cmd/smartmoney scheduler run scan_morning`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `Starts the scheduler with the morning and afternoon scans.

등록되는 작업:
- scan_morning:   $SCAN_CRON_MORNING (default 09:35 weekdays)
- scan_afternoon: $SCAN_CRON_AFTERNOON (default 15:15 weekdays)

Only one scan runs at a time; a trigger that fires while a scan is still
running is skipped. With METRICS_ENABLED=true an ops server exposes
/health, /metrics, /api/snapshot and /api/history on METRICS_PORT.

스케줄러는 Ctrl+C로 종료할 수 있습니다.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.close()

	// Ops server + scan stream
	var (
		server    *api.Server
		hub       *api.Hub
		publisher jobs.Publisher
	)
	serverErr := make(chan error, 1)
	if a.cfg.MetricsEnabled {
		hub = api.NewHub(a.log)
		publisher = hub
		router := api.NewRouter(handlers.NewSnapshotHandler(a.store, a.log), a.recorder.Handler(), hub, a.log)
		server = api.New(a.cfg, a.log, router)
	}

	sched, scanJobs, err := initScheduler(a, publisher)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	if server != nil {
		go func() {
			serverErr <- server.Start()
		}()
	}

	// Start scheduler
	sched.Start()

	PrintSuccess("Scheduler started")
	fmt.Println("\nRegistered jobs:")
	for _, j := range scanJobs {
		fmt.Printf("  - %s (%s %s)\n", j.Name(), j.Schedule(), a.cfg.Schedule.Timezone)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		if err != nil {
			a.log.WithError(err).Error("Ops server stopped")
		}
	}

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()

	if server != nil {
		hub.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			a.log.WithError(err).Warn("Ops server shutdown failed")
		}
	}
	fmt.Println("Scheduler stopped")

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.close()

	_, scanJobs, err := initScheduler(a, nil)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	fmt.Println("Registered jobs:")
	for _, j := range scanJobs {
		fmt.Printf("  - %s (%s %s)\n", j.Name(), j.Schedule(), a.cfg.Schedule.Timezone)
	}

	return nil
}

// runJob runs one job in the foreground, bypassing its schedule
func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.close()

	_, scanJobs, err := initScheduler(a, nil)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	for _, j := range scanJobs {
		if j.Name() != jobName {
			continue
		}

		fmt.Printf("Running job: %s\n", jobName)
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := j.Run(ctx); err != nil {
			return fmt.Errorf("run job: %w", err)
		}
		PrintSuccess("Job completed")
		return nil
	}

	return fmt.Errorf("job %s not found", jobName)
}

func initScheduler(a *app, publisher jobs.Publisher) (*scheduler.Scheduler, []*jobs.ScanJob, error) {
	// 1. Pipeline
	orch, err := a.orchestrator()
	if err != nil {
		return nil, nil, err
	}

	// 2. Scheduler
	sched, err := scheduler.New(a.cfg.Schedule.Timezone, a.log)
	if err != nil {
		return nil, nil, err
	}

	// 3. Register jobs
	scanJobs := jobs.SessionJobs(a.cfg.Schedule.MorningCron, a.cfg.Schedule.AfternoonCron, orch, publisher, a.log)
	for _, j := range scanJobs {
		if err := sched.AddJob(j); err != nil {
			return nil, nil, err
		}
	}

	return sched, scanJobs, nil
}
