package s2_signals

import (
	"fmt"
	"math"
	"strings"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
)

// SkewCalculator scores skew reversals and extreme bearish hedging.
// A static skew level saturates across names and is ignored.
type SkewCalculator struct {
	cfg scanconfig.Skew
}

// NewSkewCalculator creates a new skew calculator
func NewSkewCalculator(cfg scanconfig.Skew) *SkewCalculator {
	return &SkewCalculator{cfg: cfg}
}

// Calculate scores a skew record
func (c *SkewCalculator) Calculate(rec contracts.SkewRecord) contracts.ScoreContribution {
	result := contracts.NeutralContribution()
	trend := strings.ToUpper(rec.Trend)

	switch {
	case strings.Contains(trend, "REVERSAL_TO_BEARISH"):
		result.Score = c.cfg.ReversalScore
		result.Labels = []string{"skew_reversal_bearish"}
		result.Lean = contracts.Bearish
	case strings.Contains(trend, "REVERSAL_TO_BULLISH"):
		result.Score = c.cfg.ReversalScore
		result.Labels = []string{"skew_reversal_bullish"}
		result.Lean = contracts.Bullish
	case rec.BearishHedge && rec.ZScore < c.cfg.HedgeZScore:
		result.Score = c.cfg.HedgeScore
		result.Labels = []string{fmt.Sprintf("skew_bearish_hedge_z=%+.1f", rec.ZScore)}
		result.Lean = contracts.Bearish
	}

	result.Score = math.Min(result.Score, c.cfg.MaxScore)
	return result
}
