package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
)

type funcJob struct {
	name     string
	schedule string
	run      func(ctx context.Context) error
}

func (j *funcJob) Name() string                  { return j.name }
func (j *funcJob) Schedule() string              { return j.schedule }
func (j *funcJob) Run(ctx context.Context) error { return j.run(ctx) }

func newJob(name string, run func(ctx context.Context) error) *funcJob {
	return &funcJob{name: name, schedule: "0 35 9 * * 1-5", run: run}
}

func newScheduler(t *testing.T, opts ...Option) *Scheduler {
	t.Helper()
	s, err := New("America/New_York", logger.NewNop(), opts...)
	require.NoError(t, err)
	t.Cleanup(s.cancel)
	return s
}

func TestNew_InvalidTimezone(t *testing.T) {
	_, err := New("Mars/Olympus_Mons", logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load timezone")
}

func TestAddJob(t *testing.T) {
	s := newScheduler(t)
	ok := func(context.Context) error { return nil }

	require.NoError(t, s.AddJob(newJob("scan_morning", ok)))
	require.NoError(t, s.AddJob(newJob("scan_afternoon", ok)))

	err := s.AddJob(newJob("scan_morning", ok))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	bad := &funcJob{name: "bad", schedule: "every tuesday", run: ok}
	require.Error(t, s.AddJob(bad))

	assert.Equal(t, []string{"scan_afternoon", "scan_morning"}, s.GetAllJobs())
	assert.Len(t, s.cron.Entries(), 2)

	require.NoError(t, s.RemoveJob("scan_afternoon"))
	assert.Equal(t, []string{"scan_morning"}, s.GetAllJobs())
	assert.Len(t, s.cron.Entries(), 1)
	require.Error(t, s.RemoveJob("scan_afternoon"))
}

func TestRunJob_Retries(t *testing.T) {
	s := newScheduler(t, WithRetry(2, 0))

	var calls int32
	job := newJob("flaky", func(context.Context) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	history, err := s.GetJobHistory("flaky")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.True(t, history.Results[0].Success)
	assert.Equal(t, 3, history.Results[0].Attempts)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestRunJob_FailsAfterRetries(t *testing.T) {
	s := newScheduler(t, WithRetry(1, 0))

	job := newJob("broken", func(context.Context) error { return errors.New("S4 failed") })
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	stats := s.GetJobStats()["broken"]
	assert.Equal(t, 1, stats.TotalRuns)
	assert.Equal(t, 1, stats.FailureCount)
	assert.Zero(t, stats.SuccessRate)
	require.NotNil(t, stats.LastFailure)
	assert.Nil(t, stats.LastSuccess)

	history, err := s.GetJobHistory("broken")
	require.NoError(t, err)
	assert.Equal(t, 2, history.Results[0].Attempts)
	assert.Equal(t, "S4 failed", history.Results[0].Error)
}

func TestRunJob_Timeout(t *testing.T) {
	s := newScheduler(t, WithRetry(0, 0), WithTimeout(20*time.Millisecond))

	job := newJob("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	history, err := s.GetJobHistory("slow")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.False(t, history.Results[0].Success)
	assert.Equal(t, context.DeadlineExceeded.Error(), history.Results[0].Error)
}

func TestRunJob_NoOverlap(t *testing.T) {
	s := newScheduler(t, WithRetry(0, 0))

	started := make(chan struct{})
	release := make(chan struct{})
	morning := newJob("scan_morning", func(context.Context) error {
		close(started)
		<-release
		return nil
	})
	afternoon := newJob("scan_afternoon", func(context.Context) error {
		t.Error("overlapping job must not run")
		return nil
	})
	require.NoError(t, s.AddJob(morning))
	require.NoError(t, s.AddJob(afternoon))

	done := make(chan struct{})
	go func() {
		s.runJob(morning)
		close(done)
	}()
	<-started

	s.runJob(afternoon)
	close(release)
	<-done

	stats := s.GetJobStats()
	assert.Equal(t, 1, stats["scan_morning"].TotalRuns)
	assert.Equal(t, 1, stats["scan_morning"].SuccessCount)
	assert.Equal(t, 0, stats["scan_afternoon"].TotalRuns)
	assert.Equal(t, 1, stats["scan_afternoon"].SkippedCount)
	assert.Nil(t, stats["scan_afternoon"].LastRun)
}

func TestStop_CancelsRunningJob(t *testing.T) {
	s, err := New("UTC", logger.NewNop(), WithRetry(3, time.Hour))
	require.NoError(t, err)

	started := make(chan struct{})
	job := newJob("scan", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	require.NoError(t, s.AddJob(job))
	s.Start()

	done := make(chan struct{})
	go func() {
		s.runJob(job)
		close(done)
	}()
	<-started

	s.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not stop after cancellation")
	}

	history, err := s.GetJobHistory("scan")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.Equal(t, 1, history.Results[0].Attempts)
	assert.Equal(t, context.Canceled.Error(), history.Results[0].Error)
}

func TestStop_WaitsForManualRun(t *testing.T) {
	s, err := New("UTC", logger.NewNop(), WithRetry(0, 0))
	require.NoError(t, err)

	started := make(chan struct{})
	var finished int32
	job := newJob("scan_morning", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		time.Sleep(20 * time.Millisecond)
		atomic.StoreInt32(&finished, 1)
		return ctx.Err()
	})
	require.NoError(t, s.AddJob(job))
	require.Error(t, s.RunJob("missing"))

	require.NoError(t, s.RunJob("scan_morning"))
	<-started

	s.Stop()

	// Stop returns only after the manual run has been recorded
	assert.EqualValues(t, 1, atomic.LoadInt32(&finished))
	history, err := s.GetJobHistory("scan_morning")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.Equal(t, context.Canceled.Error(), history.Results[0].Error)
}

func TestJobHistory(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < historyLimit+20; i++ {
		h.AddResult(JobResult{JobName: "scan", Success: i%2 == 0, Skipped: i%10 == 9})
	}

	assert.Len(t, h.Results, historyLimit)
	assert.Len(t, h.GetLatestResults(5), 5)
	assert.Len(t, h.GetLatestResults(500), historyLimit)
	assert.Equal(t, 10, h.SkippedCount())
	// skipped entries are odd indices, so all 10 fall on the failure side
	assert.Len(t, h.GetFailedResults(), 40)
	assert.InDelta(t, 50.0/90.0, h.GetSuccessRate(), 1e-9)

	assert.Zero(t, (&JobHistory{}).GetSuccessRate())
	assert.Empty(t, (&JobHistory{}).GetLatestResults(3))
}

func TestKVFields(t *testing.T) {
	fields := kvFields([]interface{}{"entry", 3, "now", "x", "dangling"})
	assert.Equal(t, map[string]interface{}{"entry": 3, "now": "x"}, fields)
}
