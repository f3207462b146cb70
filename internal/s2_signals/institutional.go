package s2_signals

import (
	"fmt"
	"math"
	"strings"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
)

// InstitutionalCalculator scores multi-signal institutional radar hits
type InstitutionalCalculator struct {
	cfg scanconfig.Institutional
}

// NewInstitutionalCalculator creates a new institutional radar calculator
func NewInstitutionalCalculator(cfg scanconfig.Institutional) *InstitutionalCalculator {
	return &InstitutionalCalculator{cfg: cfg}
}

// Calculate scores an institutional radar record
func (c *InstitutionalCalculator) Calculate(rec contracts.InstitutionalRecord) contracts.ScoreContribution {
	result := contracts.NeutralContribution()
	score := 0.0
	var labels []string

	n := rec.SignalCount
	switch {
	case n >= 4:
		score += c.cfg.FourPlusScore
	case n == 3:
		score += c.cfg.ThreeScore
	case n == 2:
		score += c.cfg.TwoScore
	case n == 1:
		score += c.cfg.OneScore
	}
	switch {
	case n > 1:
		labels = append(labels, fmt.Sprintf("inst_radar_%d_signals", n))
	case n == 1:
		labels = append(labels, "inst_radar_1_signal")
	}

	// 마지막으로 일치한 콜/풋 시그널이 방향을 결정, 바나 크러시는 약세가 없을 때만
	var ivExtreme, oiDominant, dpMassive bool
	for _, s := range rec.Signals {
		sig := strings.ToUpper(s)
		switch {
		case strings.Contains(sig, "CALL_OI_DOMINANT"), strings.Contains(sig, "CALL_SWEEP"):
			result.Lean = contracts.Bullish
		case strings.Contains(sig, "PUT_OI_DOMINANT"), strings.Contains(sig, "PUT_SWEEP"):
			result.Lean = contracts.Bearish
		case strings.Contains(sig, "VANNA_CRUSH_BULLISH"):
			if result.Lean != contracts.Bearish {
				result.Lean = contracts.Bullish
			}
		}
		ivExtreme = ivExtreme || strings.Contains(sig, "IV_EXTREME")
		oiDominant = oiDominant || strings.Contains(sig, "OI_DOMINANT")
		dpMassive = dpMassive || strings.Contains(sig, "DARK_POOL_MASSIVE")
	}

	switch {
	case rec.ImpliedMove >= c.cfg.LargeMove:
		score += c.cfg.LargeMoveScore
		labels = append(labels, fmt.Sprintf("inst_implied_move_%.0f%%", rec.ImpliedMove))
	case rec.ImpliedMove >= c.cfg.Move:
		score += c.cfg.MoveScore
		labels = append(labels, fmt.Sprintf("inst_implied_move_%.0f%%", rec.ImpliedMove))
	}

	if ivExtreme && oiDominant {
		score += c.cfg.IVOIScore
		labels = append(labels, "inst_iv_extreme+oi_convergence")
	}
	if dpMassive {
		score += c.cfg.DarkPoolScore
	}

	switch rec.Conviction {
	case "HIGH":
		score += c.cfg.HighConvictionScore
	case "MEDIUM":
		score += c.cfg.MediumConvictionScore
	}

	result.Score = math.Min(score, c.cfg.MaxScore)
	result.Labels = labels
	return result
}
