package s2_signals

import (
	"fmt"
	"math"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
)

// FlowCalculator scores options flow
// ⭐ SSOT: 옵션 플로우 점수 계산은 여기서만
//
// Short-dated flow is the primary lean: it is fresh, time-pressured money.
// Aggregate call/put share follows price and only counts when it agrees.
type FlowCalculator struct {
	cfg    scanconfig.Flow
	logger *logger.Logger
}

// NewFlowCalculator creates a new flow calculator
func NewFlowCalculator(cfg scanconfig.Flow, log *logger.Logger) *FlowCalculator {
	return &FlowCalculator{
		cfg:    cfg,
		logger: log,
	}
}

// flowTotals are the raw sums behind FlowMetrics
type flowTotals struct {
	metrics    contracts.FlowMetrics
	shortCall  float64
	shortPut   float64
	shortTotal float64
}

// Calculate scores an instrument's trades and returns the raw flow metrics.
// Below MinTrades (or with no premium) the result is neutral and unqualified.
func (c *FlowCalculator) Calculate(symbol string, trades []contracts.FlowTrade) (contracts.ScoreContribution, contracts.FlowMetrics) {
	result := contracts.NeutralContribution()
	if len(trades) < c.cfg.MinTrades {
		return result, contracts.EmptyFlowMetrics(len(trades))
	}

	totals := c.aggregate(trades)
	m := totals.metrics
	if m.TotalPremium <= 0 {
		return result, contracts.EmptyFlowMetrics(len(trades))
	}
	m.Qualified = true

	score := 0.0
	var labels []string

	// 1. 단기물 방향성 (primary)
	shortDir := contracts.Neutral
	if totals.shortTotal >= c.cfg.ShortLeanMinPremium && m.ShortDTERatio >= c.cfg.ShortLeanMinRatio {
		switch {
		case m.ShortCallPct >= c.cfg.ShortBullishShare:
			score += c.cfg.ShortLeanScore
			shortDir = contracts.Bullish
			labels = append(labels, fmt.Sprintf("short_dte_calls_%.0f%%_$%s", m.ShortCallPct*100, money(totals.shortTotal)))
		case m.ShortCallPct <= c.cfg.ShortBearishShare():
			score += c.cfg.ShortLeanScore
			shortDir = contracts.Bearish
			labels = append(labels, fmt.Sprintf("short_dte_puts_%.0f%%_$%s", (1-m.ShortCallPct)*100, money(totals.shortTotal)))
		case m.ShortDTERatio >= c.cfg.ShortMixedRatio:
			score += c.cfg.ShortMixedScore
			labels = append(labels, fmt.Sprintf("high_short_dte_%.0f%%_mixed", m.ShortDTERatio*100))
		}
	}

	// 2. 신규 포지션 (vol/OI)
	switch {
	case m.AvgVolOI >= c.cfg.FreshVolOI:
		score += c.cfg.FreshVolOIScore
		labels = append(labels, fmt.Sprintf("fresh_positions_vol/oi=%.1fx", m.AvgVolOI))
	case m.AvgVolOI >= c.cfg.NewVolOI:
		score += c.cfg.NewVolOIScore
		labels = append(labels, fmt.Sprintf("new_positions_vol/oi=%.1fx", m.AvgVolOI))
	}

	// 3. 전체 플로우: 단기물과 일치하거나 단기물이 중립일 때만 반영
	lean := shortDir
	if math.Max(m.CallPct, 1-m.CallPct) >= c.cfg.StrongDirectionalPct {
		totalDir := contracts.Bearish
		if m.CallPct >= c.cfg.StrongDirectionalPct {
			totalDir = contracts.Bullish
		}

		if shortDir == totalDir || shortDir == contracts.Neutral {
			score += c.cfg.TotalFlowScore
			if totalDir == contracts.Bullish {
				labels = append(labels, fmt.Sprintf("total_call_flow_%.0f%%", m.CallPct*100))
			} else {
				labels = append(labels, fmt.Sprintf("total_put_flow_%.0f%%", (1-m.CallPct)*100))
			}
			lean = totalDir
		} else {
			labels = append(labels, fmt.Sprintf("FLOW_CONFLICT:total_%s_vs_shortDTE_%s", totalDir, shortDir))
		}
	}

	// 4. 긴급도 (단기물 프리미엄 규모)
	switch {
	case totals.shortTotal >= c.cfg.UrgentPremium:
		score += c.cfg.UrgentScore
		labels = append(labels, fmt.Sprintf("urgent_premium_$%s", money(totals.shortTotal)))
	case totals.shortTotal >= c.cfg.SignificantPremium:
		score += c.cfg.SignificantScore
		labels = append(labels, fmt.Sprintf("significant_short_dte_$%s", money(totals.shortTotal)))
	case totals.shortTotal >= c.cfg.MinUrgencyPremium:
		score += c.cfg.MinUrgencyScore
	}

	result.Score = math.Min(score, c.cfg.MaxScore)
	result.Labels = labels
	result.Lean = lean

	c.logger.WithFields(map[string]interface{}{
		"symbol":          symbol,
		"trades":          m.TradeCount,
		"total_premium":   m.TotalPremium,
		"call_pct":        m.CallPct,
		"short_dte_ratio": m.ShortDTERatio,
		"score":           result.Score,
		"lean":            result.Lean,
	}).Debug("Calculated flow signal")

	return result, m
}

// aggregate sums premiums by side and expiry bucket
func (c *FlowCalculator) aggregate(trades []contracts.FlowTrade) flowTotals {
	var t flowTotals
	m := contracts.EmptyFlowMetrics(len(trades))

	var volOISum float64
	var volOICount int

	for _, trade := range trades {
		switch {
		case trade.IsCall():
			m.CallPremium += trade.Premium
		case trade.IsPut():
			m.PutPremium += trade.Premium
		}

		if c.isShortDated(trade) {
			m.ShortDTEPremium += trade.Premium
			switch {
			case trade.IsCall():
				t.shortCall += trade.Premium
			case trade.IsPut():
				t.shortPut += trade.Premium
			}
		}
		if trade.DTE > c.cfg.LongDTEDays {
			m.LongDTEPremium += trade.Premium
		}

		if trade.OpenInterest > 0 {
			volOISum += trade.Volume / trade.OpenInterest
			volOICount++
		}
	}

	m.TotalPremium = m.CallPremium + m.PutPremium
	if m.TotalPremium > 0 {
		m.CallPct = m.CallPremium / m.TotalPremium
		m.ShortDTERatio = m.ShortDTEPremium / m.TotalPremium
	}

	t.shortTotal = t.shortCall + t.shortPut
	if t.shortTotal > 0 {
		m.ShortCallPct = t.shortCall / t.shortTotal
	}

	if volOICount > 0 {
		m.AvgVolOI = volOISum / float64(volOICount)
	}

	t.metrics = m
	return t
}

// isShortDated reports whether a trade falls in the short-dated bucket;
// trades without a DTE are never short-dated
func (c *FlowCalculator) isShortDated(t contracts.FlowTrade) bool {
	return t.DTE != contracts.UnknownDTE && t.DTE >= 0 && t.DTE <= c.cfg.ShortDTEDays
}
