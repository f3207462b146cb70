package s2_signals

import (
	"fmt"
	"math"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
)

// IVTermCalculator scores an inverted IV term structure as a catalyst.
// It never produces a lean.
type IVTermCalculator struct {
	cfg scanconfig.IVTerm
}

// NewIVTermCalculator creates a new IV term calculator
func NewIVTermCalculator(cfg scanconfig.IVTerm) *IVTermCalculator {
	return &IVTermCalculator{cfg: cfg}
}

// Calculate scores an IV term record
func (c *IVTermCalculator) Calculate(rec contracts.IVTermRecord) contracts.ScoreContribution {
	result := contracts.NeutralContribution()
	score := 0.0
	var labels []string

	inverted, spread := rec.Inverted, rec.TermSpread
	if !inverted && rec.FrontIV > 0 && rec.BackIV > 0 && rec.FrontIV > rec.BackIV*c.cfg.InversionRatio {
		inverted = true
		spread = rec.FrontIV - rec.BackIV
	}

	if inverted {
		switch {
		case math.Abs(spread) > c.cfg.ExtremeSpread:
			score += c.cfg.ExtremeScore
			labels = append(labels, fmt.Sprintf("IV_extreme_inversion_spread=%+.2f", spread))
		case math.Abs(spread) > c.cfg.Spread:
			score += c.cfg.SpreadScore
			labels = append(labels, fmt.Sprintf("IV_inverted_spread=%+.2f", spread))
		default:
			score += c.cfg.InvertedScore
			labels = append(labels, "IV_inverted")
		}
	}

	move := impliedMovePct(rec)
	switch {
	case move > c.cfg.LargeMovePct:
		score += c.cfg.LargeMoveScore
		labels = append(labels, fmt.Sprintf("implied_move_%.1f%%", move))
	case move > c.cfg.MovePct:
		score += c.cfg.MoveScore
		labels = append(labels, fmt.Sprintf("implied_move_%.1f%%", move))
	}

	result.Score = math.Min(score, c.cfg.MaxScore)
	result.Labels = labels
	return result
}

// impliedMovePct prefers the standard implied move, falls back to the weekly
// one and scales fractional values to percent
func impliedMovePct(rec contracts.IVTermRecord) float64 {
	move := rec.ImpliedMovePct
	if move == 0 {
		move = rec.WeeklyImpliedMovePct
	}
	if move > 0 && move < 1 {
		move *= 100
	}
	return move
}
