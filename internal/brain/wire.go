package brain

import (
	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/s0_sources"
	"github.com/achavala/Meta-Engine-sub001/internal/s1_universe"
	"github.com/achavala/Meta-Engine-sub001/internal/s2_signals"
	"github.com/achavala/Meta-Engine-sub001/internal/s3_direction"
	"github.com/achavala/Meta-Engine-sub001/internal/s4_conviction"
	"github.com/achavala/Meta-Engine-sub001/internal/s5_stability"
	"github.com/achavala/Meta-Engine-sub001/internal/s6_export"
	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
	"github.com/achavala/Meta-Engine-sub001/pkg/metrics"
)

// New assembles an orchestrator reading source caches from dataDir
func New(
	dataDir string,
	scan *scanconfig.Config,
	list *s1_universe.List,
	store contracts.SnapshotStore,
	recorder *metrics.Recorder,
	log *logger.Logger,
) *Orchestrator {
	return NewOrchestrator(
		s0_sources.New(dataDir, s0_sources.DefaultFiles(), log),
		s1_universe.NewBuilder(list, log),
		s2_signals.NewBuilder(scan, log),
		s3_direction.NewResolver(scan.Resolver, log),
		s4_conviction.NewAggregator(scan, log),
		s5_stability.NewGuard(scan.Stability, log),
		s6_export.NewExporter(scan.Export, log),
		store,
		scan.Stability,
		recorder,
		log,
	)
}
