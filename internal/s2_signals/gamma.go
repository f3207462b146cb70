package s2_signals

import (
	"math"
	"strings"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
)

// GammaCalculator scores dealer gamma regime flips
//
// A negative GEX level is not directional; it only amplifies conviction
// because dealer hedging exaggerates moves either way.
type GammaCalculator struct {
	cfg scanconfig.Gamma
}

// NewGammaCalculator creates a new gamma calculator
func NewGammaCalculator(cfg scanconfig.Gamma) *GammaCalculator {
	return &GammaCalculator{cfg: cfg}
}

// Calculate returns the flip contribution and the conviction amplifier (≥1.0)
func (c *GammaCalculator) Calculate(rec contracts.GammaRecord) (contracts.ScoreContribution, float64) {
	result := contracts.NeutralContribution()
	amplifier := 1.0

	if rec.FlipToday {
		result.Score = math.Min(c.cfg.FlipScore, c.cfg.MaxScore)
		result.Labels = []string{"GEX_FLIP_" + rec.FlipDirection}
		result.Lean = flipLean(rec.FlipDirection)
	}

	if rec.NetGEX < -c.cfg.AmplifierMinGEX {
		amplifier = math.Min(1+math.Abs(rec.NetGEX)/c.cfg.AmplifierScale, c.cfg.AmplifierCap)
	}

	return result, amplifier
}

func flipLean(direction string) contracts.Direction {
	d := strings.ToUpper(direction)
	switch {
	case strings.Contains(d, "BULL"):
		return contracts.Bullish
	case strings.Contains(d, "BEAR"):
		return contracts.Bearish
	}
	return contracts.Neutral
}
