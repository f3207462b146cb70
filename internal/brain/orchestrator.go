package brain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/s0_sources"
	"github.com/achavala/Meta-Engine-sub001/internal/s2_signals"
	"github.com/achavala/Meta-Engine-sub001/internal/s3_direction"
	"github.com/achavala/Meta-Engine-sub001/internal/s4_conviction"
	"github.com/achavala/Meta-Engine-sub001/internal/s5_stability"
	"github.com/achavala/Meta-Engine-sub001/internal/s6_export"
	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
	"github.com/achavala/Meta-Engine-sub001/pkg/metrics"
)

// Orchestrator coordinates one scan through every stage
// ⭐ SSOT: 스캔 파이프라인 조율은 여기서만
//
// The orchestrator takes no lock. Callers must ensure at most one Run is in
// flight against the same snapshot store.
type Orchestrator struct {
	// Stage components
	loader          contracts.SourceLoader
	universeBuilder contracts.UniverseBuilder
	signalBuilder   *s2_signals.Builder
	resolver        *s3_direction.Resolver
	aggregator      *s4_conviction.Aggregator
	guard           *s5_stability.Guard
	exporter        *s6_export.Exporter

	// Cross-scan state
	store contracts.SnapshotStore

	stability scanconfig.Stability
	metrics   *metrics.Recorder
	logger    *logger.Logger
}

// RunConfig holds configuration for one scan
type RunConfig struct {
	ScanID    string    // generated when empty
	Timestamp time.Time // time.Now() when zero
	DryRun    bool      // if true, the previous snapshot is read but nothing is persisted
}

// ScanResult holds the outcome of one scan
type ScanResult struct {
	ScanID    string    `json:"scan_id"`
	Timestamp time.Time `json:"timestamp"`

	Bullish        []contracts.ConvictionResult `json:"bullish"`
	Bearish        []contracts.ConvictionResult `json:"bearish"`
	CallCandidates []s6_export.Candidate        `json:"call_candidates"`
	PutCandidates  []s6_export.Candidate        `json:"put_candidates"`

	InstrumentsScanned int               `json:"instruments_scanned"`
	SourcesLoaded      []string          `json:"sources_loaded"`
	Quality            s0_sources.Report `json:"quality"`
	Fingerprint        string            `json:"fingerprint"`
	Flips              int               `json:"flips"`
	HadPrevious        bool              `json:"had_previous"`
	Persisted          bool              `json:"persisted"`

	// Warnings lists degraded-but-completed conditions (failed sources,
	// unreadable previous snapshot, persistence failures)
	Warnings []string      `json:"warnings,omitempty"`
	Duration time.Duration `json:"duration"`
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(
	loader contracts.SourceLoader,
	universeBuilder contracts.UniverseBuilder,
	signalBuilder *s2_signals.Builder,
	resolver *s3_direction.Resolver,
	aggregator *s4_conviction.Aggregator,
	guard *s5_stability.Guard,
	exporter *s6_export.Exporter,
	store contracts.SnapshotStore,
	stability scanconfig.Stability,
	recorder *metrics.Recorder,
	log *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		loader:          loader,
		universeBuilder: universeBuilder,
		signalBuilder:   signalBuilder,
		resolver:        resolver,
		aggregator:      aggregator,
		guard:           guard,
		exporter:        exporter,
		store:           store,
		stability:       stability,
		metrics:         recorder,
		logger:          log.WithField("module", "brain"),
	}
}

// Run executes one scan
// S0 → S1 → S2 → S3 → S4 → S5 → S6
func (o *Orchestrator) Run(ctx context.Context, config RunConfig) (*ScanResult, error) {
	startTime := time.Now()

	if config.ScanID == "" {
		config.ScanID = uuid.NewString()
	}
	if config.Timestamp.IsZero() {
		config.Timestamp = startTime
	}

	log := o.logger.WithScan(config.ScanID)
	result := &ScanResult{
		ScanID:    config.ScanID,
		Timestamp: config.Timestamp,
	}

	log.WithField("dry_run", config.DryRun).Info("Starting scan")

	err := o.run(ctx, config, result, log)
	result.Duration = time.Since(startTime)
	if err != nil {
		o.metrics.RecordScan("failed", result.Duration.Seconds())
		log.WithError(err).Error("Scan failed")
		return result, err
	}

	o.metrics.RecordScan("success", result.Duration.Seconds())
	log.WithFields(map[string]interface{}{
		"duration":    result.Duration.Seconds(),
		"instruments": result.InstrumentsScanned,
		"bullish":     len(result.Bullish),
		"bearish":     len(result.Bearish),
		"flips":       result.Flips,
		"warnings":    len(result.Warnings),
		"fingerprint": result.Fingerprint,
	}).Info("Scan completed successfully")

	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, config RunConfig, result *ScanResult, log *logger.Logger) error {
	// S0: Source loading
	set, err := o.runS0(ctx, result, log)
	if err != nil {
		return fmt.Errorf("S0 failed: %w", err)
	}

	// 이전 스캔은 스코어링 전에 한 번만 읽음
	prev := o.readPrevious(ctx, result, log)

	// S1: Universe
	universe, err := o.universeBuilder.Build(ctx, set)
	if err != nil {
		return fmt.Errorf("S1 failed: %w", err)
	}
	result.InstrumentsScanned = len(universe.Symbols)
	o.metrics.RecordInstruments(len(universe.Symbols))

	// S2: Signals
	signals, err := o.signalBuilder.Build(ctx, universe, set)
	if err != nil {
		return fmt.Errorf("S2 failed: %w", err)
	}

	// S3: Direction
	calls := o.resolver.ResolveAll(signals)

	// S4: Conviction
	results, err := o.aggregator.AggregateAll(signals, calls)
	if err != nil {
		return fmt.Errorf("S4 failed: %w", err)
	}

	// S5: Stability guard
	result.Flips = o.guard.Apply(results, prev)
	o.metrics.RecordFlips(result.Flips)

	// S6: Export
	result.Bullish, result.Bearish = o.exporter.Split(results)
	result.CallCandidates = o.exporter.BuildCallCandidates(result.Bullish)
	result.PutCandidates = o.exporter.BuildPutCandidates(result.Bearish)
	o.metrics.RecordCandidates(string(contracts.Bullish), len(result.Bullish))
	o.metrics.RecordCandidates(string(contracts.Bearish), len(result.Bearish))

	result.Fingerprint = s5_stability.Fingerprint(set)

	// S5: Persist for the next scan
	if !config.DryRun {
		o.persist(ctx, result, log)
	}

	o.logTop(result, log)
	return nil
}

// runS0 loads every source and records availability
func (o *Orchestrator) runS0(ctx context.Context, result *ScanResult, log *logger.Logger) (*contracts.SourceSet, error) {
	set, err := o.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}

	result.Quality = s0_sources.Summarize(set)
	result.SourcesLoaded = set.LoadedNames()

	for _, src := range contracts.AllSources() {
		o.metrics.RecordSourceRecords(src.String(), set.Count(src))
		if msg := set.Errors[src]; msg != "" {
			o.metrics.RecordSourceFailure(src.String())
			result.Warnings = append(result.Warnings, fmt.Sprintf("source %s unavailable: %s", src, msg))
		}
	}
	if !result.Quality.Passed() {
		result.Warnings = append(result.Warnings, "no flow or open-interest data: directions limited to tiers 4-5")
	}

	log.WithFields(map[string]interface{}{
		"loaded":  result.Quality.Loaded,
		"failed":  result.Quality.Failed,
		"missing": result.Quality.Missing,
	}).Info("S0 completed")

	return set, nil
}

// readPrevious returns nil when there is no usable previous snapshot
func (o *Orchestrator) readPrevious(ctx context.Context, result *ScanResult, log *logger.Logger) *contracts.ScanSnapshot {
	prev, err := o.store.Previous(ctx)
	switch {
	case errors.Is(err, contracts.ErrNoSnapshot):
		log.Info("No previous snapshot, stability guard skipped")
		return nil
	case err != nil:
		log.WithError(err).Warn("Previous snapshot unreadable, stability guard skipped")
		result.Warnings = append(result.Warnings, fmt.Sprintf("previous snapshot unreadable: %v", err))
		return nil
	}

	result.HadPrevious = true
	log.WithFields(map[string]interface{}{
		"previous_scan": prev.ScanID,
		"previous_at":   prev.Timestamp,
	}).Debug("Previous snapshot loaded")
	return prev
}

// persist saves the snapshot and appends the audit entry.
// Failures are warnings; the computed lists are never discarded.
func (o *Orchestrator) persist(ctx context.Context, result *ScanResult, log *logger.Logger) {
	snap := s5_stability.NewSnapshot(result.ScanID, result.Timestamp, result.Bullish, result.Bearish,
		result.Fingerprint, result.SourcesLoaded, o.stability.SnapshotTopN)
	entry := s5_stability.NewAuditEntry(result.ScanID, result.Timestamp, result.Bullish, result.Bearish,
		result.Fingerprint, o.stability.AuditTopN)

	saved := true
	if err := o.store.Save(ctx, snap); err != nil {
		saved = false
		log.WithError(err).Warn("Failed to save snapshot")
		result.Warnings = append(result.Warnings, fmt.Sprintf("snapshot save failed: %v", err))
	}
	if err := o.store.AppendAudit(ctx, entry); err != nil {
		saved = false
		log.WithError(err).Warn("Failed to append audit entry")
		result.Warnings = append(result.Warnings, fmt.Sprintf("audit append failed: %v", err))
	}
	result.Persisted = saved
}

var printer = message.NewPrinter(language.English)

// logTop logs the five strongest candidates of each side
func (o *Orchestrator) logTop(result *ScanResult, log *logger.Logger) {
	if len(result.Bullish) > 0 {
		log.WithField("top", describe(result.Bullish, 5, true)).Info("Top bullish")
	}
	if len(result.Bearish) > 0 {
		log.WithField("top", describe(result.Bearish, 5, false)).Info("Top bearish")
	}
}

func describe(list []contracts.ConvictionResult, n int, calls bool) string {
	parts := make([]string, 0, n)
	for i, r := range list {
		if i == n {
			break
		}
		if calls {
			parts = append(parts, printer.Sprintf("%s %.0f%%C $%.0f conv=%.2f", r.Symbol, r.CallPct*100, r.TotalPremium, r.Conviction))
		} else {
			parts = append(parts, printer.Sprintf("%s %.0f%%P $%.0f conv=%.2f", r.Symbol, r.PutPct()*100, r.TotalPremium, r.Conviction))
		}
	}
	return strings.Join(parts, ", ")
}
