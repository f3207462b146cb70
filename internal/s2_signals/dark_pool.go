package s2_signals

import (
	"fmt"
	"math"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
)

// DarkPoolCalculator scores block activity (non-directional) and derives a
// weak lean from above-ask vs below-bid prints
type DarkPoolCalculator struct {
	cfg scanconfig.DarkPool
}

// NewDarkPoolCalculator creates a new dark-pool calculator
func NewDarkPoolCalculator(cfg scanconfig.DarkPool) *DarkPoolCalculator {
	return &DarkPoolCalculator{cfg: cfg}
}

// Calculate scores a dark-pool record
func (c *DarkPoolCalculator) Calculate(rec contracts.DarkPoolRecord) contracts.ScoreContribution {
	result := contracts.NeutralContribution()
	if len(rec.Prints) < c.cfg.MinPrints {
		return result
	}

	value := rec.TotalValue
	blocks := 0
	sum := 0.0
	for _, p := range rec.Prints {
		sum += p.Value
		if p.Value >= c.cfg.BlockValue {
			blocks++
		}
	}
	if value == 0 {
		value = sum
	}

	score := 0.0
	var labels []string

	switch {
	case value >= c.cfg.LargeValue && blocks >= c.cfg.MinBlocks:
		score += c.cfg.LargeScore
		labels = append(labels, fmt.Sprintf("dark_pool_$%s_%d_blocks", money(value), blocks))
	case value >= c.cfg.Value:
		score += c.cfg.ValueScore
		labels = append(labels, fmt.Sprintf("dark_pool_$%s", money(value)))
	}

	above, below := rec.AboveAskCount, rec.BelowBidCount
	if total := above + below; total >= c.cfg.MinDirectional {
		switch {
		case float64(above) > float64(below)*c.cfg.DirectionalRatio:
			result.Lean = contracts.Bullish
			labels = append(labels, fmt.Sprintf("dp_aggressive_buy_%d/%d", above, total))
		case float64(below) > float64(above)*c.cfg.DirectionalRatio:
			result.Lean = contracts.Bearish
			labels = append(labels, fmt.Sprintf("dp_aggressive_sell_%d/%d", below, total))
		}
	}

	result.Score = math.Min(score, c.cfg.MaxScore)
	result.Labels = labels
	return result
}
