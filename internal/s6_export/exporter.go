package s6_export

import (
	"sort"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
)

// Exporter splits results into the two ranked output lists
// ⭐ SSOT: S6 출력 필터/정렬은 여기서만
type Exporter struct {
	cfg    scanconfig.Export
	logger *logger.Logger
}

// NewExporter creates a new exporter
func NewExporter(cfg scanconfig.Export, log *logger.Logger) *Exporter {
	return &Exporter{
		cfg:    cfg,
		logger: log.WithField("module", "s6_export"),
	}
}

// Split drops neutral and below-floor results and ranks each side by
// conviction, highest first, ties by symbol
func (e *Exporter) Split(results []contracts.ConvictionResult) (bullish, bearish []contracts.ConvictionResult) {
	bullish = make([]contracts.ConvictionResult, 0)
	bearish = make([]contracts.ConvictionResult, 0)

	below := 0
	for _, r := range results {
		if !r.Direction.IsDirectional() {
			continue
		}
		if r.Conviction < e.cfg.MinConviction {
			below++
			continue
		}
		if r.Direction == contracts.Bullish {
			bullish = append(bullish, r)
		} else {
			bearish = append(bearish, r)
		}
	}

	Rank(bullish)
	Rank(bearish)

	e.logger.WithFields(map[string]interface{}{
		"bullish":        len(bullish),
		"bearish":        len(bearish),
		"below_floor":    below,
		"min_conviction": e.cfg.MinConviction,
	}).Info("Candidates exported")

	return bullish, bearish
}

// Rank sorts results by conviction (descending), then symbol
func Rank(results []contracts.ConvictionResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Conviction != results[j].Conviction {
			return results[i].Conviction > results[j].Conviction
		}
		return results[i].Symbol < results[j].Symbol
	})
}
