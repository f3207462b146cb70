package commands

import (
	"fmt"
	"os"

	"github.com/achavala/Meta-Engine-sub001/internal/brain"
	"github.com/achavala/Meta-Engine-sub001/internal/s1_universe"
	"github.com/achavala/Meta-Engine-sub001/internal/s5_stability"
	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
	"github.com/achavala/Meta-Engine-sub001/pkg/config"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
	"github.com/achavala/Meta-Engine-sub001/pkg/metrics"
	"github.com/achavala/Meta-Engine-sub001/pkg/redis"
)

// app holds the process-wide dependencies shared by every command
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	scan     *scanconfig.Config
	store    s5_stability.Store
	redis    *redis.Client
	recorder *metrics.Recorder
}

// newApp loads configuration and opens the snapshot store.
// With logToStderr set, logs go to stderr so stdout stays machine-readable.
func newApp(logToStderr bool) (*app, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	// 2. Initialize logger
	log := logger.New(cfg)
	if logToStderr {
		log = logger.NewWithWriter(os.Stderr, cfg.LogLevel)
	}

	// 3. Load thresholds
	scan, err := scanconfig.LoadOrDefault(cfg.ThresholdsFile)
	if err != nil {
		return nil, fmt.Errorf("load thresholds: %w", err)
	}
	for _, w := range scanconfig.Warn(scan) {
		log.WithField("code", w.Code).Warn(w.Message)
	}

	// 4. Connect to Redis (no-op client when disabled)
	rc, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	// 5. Snapshot store
	var storeClient *redis.Client
	if rc.Enabled() {
		storeClient = rc
	}
	store, err := s5_stability.NewStore(cfg, storeClient, log)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}

	return &app{
		cfg:      cfg,
		log:      log,
		scan:     scan,
		store:    store,
		redis:    rc,
		recorder: metrics.New(),
	}, nil
}

// orchestrator wires the full scan pipeline
func (a *app) orchestrator() (*brain.Orchestrator, error) {
	list, err := s1_universe.LoadList(a.cfg.UniverseFile)
	if err != nil {
		return nil, fmt.Errorf("load universe: %w", err)
	}
	return brain.New(a.cfg.DataDir, a.scan, list, a.store, a.recorder, a.log), nil
}

func (a *app) close() {
	if err := a.redis.Close(); err != nil {
		a.log.WithError(err).Warn("Failed to close redis")
	}
}
