package s2_signals

import (
	"fmt"
	"math"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
)

// OpenInterestCalculator scores one-sided open-interest builds
// ⭐ SSOT: 미결제약정 비대칭 점수 계산은 여기서만
//
// Symmetric growth on both sides is hedging and scores zero.
type OpenInterestCalculator struct {
	cfg    scanconfig.OpenInterest
	logger *logger.Logger
}

// NewOpenInterestCalculator creates a new open-interest calculator
func NewOpenInterestCalculator(cfg scanconfig.OpenInterest, log *logger.Logger) *OpenInterestCalculator {
	return &OpenInterestCalculator{
		cfg:    cfg,
		logger: log,
	}
}

// Calculate scores an OI change record
func (c *OpenInterestCalculator) Calculate(symbol string, rec contracts.OIRecord) contracts.ScoreContribution {
	score, labels, lean := c.asymmetry(rec)

	if lean == contracts.Neutral && score == 0 {
		s, l, d := c.percentSkew(rec)
		score, labels, lean = score+s, append(labels, l...), d
	}

	s, l := c.persistence(rec)
	score += s
	labels = append(labels, l...)

	if lean == contracts.Neutral {
		s, l, d := c.topContracts(rec.TopContracts)
		score, labels, lean = score+s, append(labels, l...), d
	}

	result := contracts.ScoreContribution{
		Score:  math.Min(score, c.cfg.MaxScore),
		Labels: labels,
		Lean:   lean,
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol":      symbol,
		"call_change": rec.CallOIChange,
		"put_change":  rec.PutOIChange,
		"score":       result.Score,
		"lean":        result.Lean,
	}).Debug("Calculated open interest signal")

	return result
}

// asymmetry scores absolute OI imbalance
func (c *OpenInterestCalculator) asymmetry(rec contracts.OIRecord) (float64, []string, contracts.Direction) {
	call, put := rec.CallOIChange, rec.PutOIChange

	switch {
	case call > c.cfg.BothSidesMin && put > c.cfg.BothSidesMin:
		ratio := call / math.Max(put, 1)
		switch {
		case ratio > c.cfg.StrongRatio:
			return c.cfg.StrongScore, []string{fmt.Sprintf("OI_asymmetry_calls_%.1fx_puts", ratio)}, contracts.Bullish
		case ratio < 1/c.cfg.StrongRatio:
			return c.cfg.StrongScore, []string{fmt.Sprintf("OI_asymmetry_puts_%.1fx_calls", 1/ratio)}, contracts.Bearish
		case ratio > c.cfg.LeanRatio:
			return c.cfg.LeanScore, []string{fmt.Sprintf("OI_lean_calls_%.1fx", ratio)}, contracts.Bullish
		case ratio < 1/c.cfg.LeanRatio:
			return c.cfg.LeanScore, []string{fmt.Sprintf("OI_lean_puts_%.1fx", 1/ratio)}, contracts.Bearish
		default:
			return 0, []string{"OI_mixed_no_signal"}, contracts.Neutral
		}

	case call > c.cfg.PureBuildMin && put <= c.cfg.PureOtherMax:
		return c.cfg.PureScore, []string{"pure_call_OI_build_+" + count(call)}, contracts.Bullish
	case put > c.cfg.PureBuildMin && call <= c.cfg.PureOtherMax:
		return c.cfg.PureScore, []string{"pure_put_OI_build_+" + count(put)}, contracts.Bearish

	case call > c.cfg.DominantMin && rec.CallOIPctChange > c.cfg.DominantPct && put < call*c.cfg.DominantOtherFrac:
		return c.cfg.DominantScore,
			[]string{fmt.Sprintf("call_OI_dominant_+%s_%+.0f%%", count(call), rec.CallOIPctChange)},
			contracts.Bullish
	case put > c.cfg.DominantMin && rec.PutOIPctChange > c.cfg.DominantPct && call < put*c.cfg.DominantOtherFrac:
		return c.cfg.DominantScore,
			[]string{fmt.Sprintf("put_OI_dominant_+%s_%+.0f%%", count(put), rec.PutOIPctChange)},
			contracts.Bearish
	}

	return 0, nil, contracts.Neutral
}

// percentSkew catches small names where absolute counts are low but the
// relative change is extreme
func (c *OpenInterestCalculator) percentSkew(rec contracts.OIRecord) (float64, []string, contracts.Direction) {
	callPct, putPct := rec.CallOIPctChange, rec.PutOIPctChange

	switch {
	case callPct > c.cfg.PctSkewMin && putPct < callPct*c.cfg.PctSkewOtherFrac && rec.CallOIChange > c.cfg.PctSkewAbsMin:
		return c.cfg.PctSkewScore,
			[]string{fmt.Sprintf("pct_OI_skew_calls_%+.0f%%_vs_puts_%+.0f%%", callPct, putPct)},
			contracts.Bullish
	case putPct > c.cfg.PctSkewMin && callPct < putPct*c.cfg.PctSkewOtherFrac && rec.PutOIChange > c.cfg.PctSkewAbsMin:
		return c.cfg.PctSkewScore,
			[]string{fmt.Sprintf("pct_OI_skew_puts_%+.0f%%_vs_calls_%+.0f%%", putPct, callPct)},
			contracts.Bearish
	}
	return 0, nil, contracts.Neutral
}

// persistence scores multi-day accumulation and aggressive new contracts
func (c *OpenInterestCalculator) persistence(rec contracts.OIRecord) (float64, []string) {
	score := 0.0
	var labels []string

	days, n := rec.MaxDaysOIIncreasing, rec.Contracts3PlusDaysOIIncr
	switch {
	case days >= c.cfg.SustainedDays && n >= c.cfg.SustainedContracts:
		score += c.cfg.SustainedScore
		labels = append(labels, fmt.Sprintf("sustained_OI_build_%dd_%dcontracts", days, n))
	case days >= c.cfg.AccumDays && n >= c.cfg.AccumContracts:
		score += c.cfg.AccumScore
		labels = append(labels, fmt.Sprintf("OI_accumulating_%dd", days))
	}

	if rec.VolGtOICount >= c.cfg.VolGtOIMin {
		score += c.cfg.VolGtOIScore
		labels = append(labels, fmt.Sprintf("aggressive_new_positions_%d_contracts", rec.VolGtOICount))
	}

	return score, labels
}

// topContracts derives a lean from the previous-flow direction of the largest builds
func (c *OpenInterestCalculator) topContracts(top []contracts.TopContract) (float64, []string, contracts.Direction) {
	n := len(top)
	if n > c.cfg.TopContracts {
		n = c.cfg.TopContracts
	}
	if n < c.cfg.TopMinContracts {
		return 0, nil, contracts.Neutral
	}

	bull, bear := 0, 0
	for _, tc := range top[:n] {
		switch tc.PrevDirection {
		case contracts.Bullish:
			bull++
		case contracts.Bearish:
			bear++
		}
	}

	need := float64(n) * c.cfg.TopMajority
	switch {
	case float64(bull) >= need:
		return c.cfg.TopScore, []string{fmt.Sprintf("top_contract_flow_bullish_%d/%d", bull, n)}, contracts.Bullish
	case float64(bear) >= need:
		return c.cfg.TopScore, []string{fmt.Sprintf("top_contract_flow_bearish_%d/%d", bear, n)}, contracts.Bearish
	}
	return 0, nil, contracts.Neutral
}
