package s5_stability

import (
	"fmt"
	"math"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
)

// Guard discounts direction flips against the previous scan
// ⭐ SSOT: 방향 전환 안정성 규칙은 여기서만
type Guard struct {
	cfg    scanconfig.Stability
	logger *logger.Logger
}

// NewGuard creates a new stability guard
func NewGuard(cfg scanconfig.Stability, log *logger.Logger) *Guard {
	return &Guard{
		cfg:    cfg,
		logger: log.WithField("module", "s5_stability"),
	}
}

// Apply adjusts results in place and returns how many flipped.
// A flip keeps full strength only when the new conviction beats the
// previous opposite conviction by the override ratio.
func (g *Guard) Apply(results []contracts.ConvictionResult, prev *contracts.ScanSnapshot) int {
	if prev == nil {
		return 0
	}

	prevBull := prev.Convictions(contracts.Bullish)
	prevBear := prev.Convictions(contracts.Bearish)

	flips := 0
	for i := range results {
		r := &results[i]

		var old float64
		var found bool
		switch r.Direction {
		case contracts.Bullish:
			old, found = prevBear[r.Symbol]
		case contracts.Bearish:
			old, found = prevBull[r.Symbol]
		}
		if !found {
			continue
		}

		flips++
		from := r.Direction.Opposite().Short()
		if r.Conviction <= old*g.cfg.FlipOverrideRatio {
			r.Conviction = math.Round(r.Conviction*g.cfg.FlipPenalty*1e4) / 1e4
			r.Signals = append(r.Signals, fmt.Sprintf("FLIPPED_from_%s_penalized", from))
		} else {
			r.Signals = append(r.Signals, fmt.Sprintf("FLIPPED_from_%s_stronger_signal", from))
		}

		g.logger.WithFields(map[string]interface{}{
			"symbol":         r.Symbol,
			"direction":      r.Direction,
			"old_conviction": old,
			"new_conviction": r.Conviction,
		}).Debug("Direction flipped since last scan")
	}

	if flips > 0 {
		g.logger.WithField("flips", flips).Info("Stability guard applied")
	}
	return flips
}
