package s4_conviction

import (
	"fmt"
	"math"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
)

// Aggregator turns per-source scores plus a resolved direction into a
// bounded conviction
// ⭐ SSOT: S4 확신도 계산은 여기서만
type Aggregator struct {
	cfg      scanconfig.Aggregator
	highBeta map[string]bool
	logger   *logger.Logger
}

// NewAggregator creates a new conviction aggregator
func NewAggregator(cfg *scanconfig.Config, log *logger.Logger) *Aggregator {
	return &Aggregator{
		cfg:      cfg.Aggregator,
		highBeta: cfg.HighBetaSet(),
		logger:   log.WithField("module", "s4_conviction"),
	}
}

// Aggregate computes the conviction result of one instrument.
// Neutral instruments still get a conviction; the exporter drops them.
func (a *Aggregator) Aggregate(sig *contracts.InstrumentSignals, call contracts.DirectionCall) contracts.ConvictionResult {
	labels := sig.Labels()
	direction := call.Direction
	tier := call.Tier
	if !direction.IsDirectional() {
		direction = contracts.Neutral
		tier = 0
	}

	bull, bear := sig.Tally()
	iv := sig.Score(contracts.SourceIVTerm)

	conviction := sig.Total()

	// 1. 수렴 배수
	agreeing := max(bull, bear)
	switch {
	case agreeing >= a.cfg.StrongConvergenceSources:
		conviction *= a.cfg.StrongConvergenceMult
		labels = append(labels, fmt.Sprintf("STRONG_CONVERGENCE_%d_sources", agreeing))
	case agreeing >= a.cfg.ConvergenceSources:
		conviction *= a.cfg.ConvergenceMult
		labels = append(labels, fmt.Sprintf("CONVERGENCE_%d_sources", agreeing))
	case agreeing >= a.cfg.CatalystConvergenceSources && iv > 0:
		conviction *= a.cfg.CatalystConvergenceMult
		labels = append(labels, fmt.Sprintf("IV+%d_source_convergence", agreeing))
	}

	// 2. 감마 증폭
	if sig.GammaAmplifier > 1 {
		conviction *= sig.GammaAmplifier
	}

	// 3. 변동성 촉매
	switch {
	case iv > 0 && sig.Score(contracts.SourceOpenInterest) > 0:
		conviction += a.cfg.VolCatalystStrongBonus
		labels = append(labels, "vol_catalyst_strong")
	case iv > 0 && (sig.Score(contracts.SourceGamma) > 0 ||
		sig.Score(contracts.SourceDarkPool) > 0 ||
		sig.Score(contracts.SourceFlow) >= a.cfg.VolCatalystFlowMin):
		conviction += a.cfg.VolCatalystBonus
		labels = append(labels, "vol_catalyst")
	}

	// 4. 티어 보너스 + 티어 라벨
	if call.Decided() {
		conviction += call.Bonus
		labels = append(labels, call.Labels...)
	}

	// 5. 티어 스케일링
	conviction *= a.tierScale(tier)

	// 6. 플로우 vs 포지셔닝 충돌
	if tier == 1 || tier == 2 {
		var label string
		conviction, direction, tier, label = a.resolveConflict(sig, conviction, direction, tier)
		if label != "" {
			labels = append(labels, label)
		}
	}

	// 7. 합의 반대 경고
	if tier == 1 || tier == 2 {
		switch {
		case direction == contracts.Bearish && bull > bear+a.cfg.CautionMargin:
			conviction *= a.cfg.CautionFactor
			labels = append(labels, "CAUTION:bear_vs_bull_sources")
		case direction == contracts.Bullish && bear > bull+a.cfg.CautionMargin:
			conviction *= a.cfg.CautionFactor
			labels = append(labels, "CAUTION:bull_vs_bear_sources")
		}
	}

	// 8. LEAPS 헤지 할인
	if a.looksLikeHedge(sig.Flow) {
		conviction *= a.cfg.HedgeFactor
		labels = append(labels, "LEAPS_heavy_possible_hedge")
	}

	// 9. 고베타 증폭
	if a.highBeta[sig.Symbol] && iv > 0 && direction.IsDirectional() {
		conviction *= a.cfg.HighBetaFactor
		labels = append(labels, "high_beta_amplified")
	}

	conviction = round(math.Min(math.Max(conviction, 0), 1), 4)
	labels = append(labels, fmt.Sprintf("dir_tier=%d", tier))

	rule := call.Rule
	if !direction.IsDirectional() {
		rule = contracts.RuleNone
	}

	m := sig.Flow
	return contracts.ConvictionResult{
		Symbol:     sig.Symbol,
		Direction:  direction,
		Conviction: conviction,
		Tier:       tier,
		Rule:       rule,

		CallPct:         round(m.CallPct, 4),
		TotalPremium:    m.TotalPremium,
		CallPremium:     m.CallPremium,
		PutPremium:      m.PutPremium,
		ShortDTERatio:   round(m.ShortDTERatio, 3),
		ShortDTEPremium: m.ShortDTEPremium,
		AvgVolOIRatio:   round(m.AvgVolOI, 2),
		TradeCount:      m.TradeCount,

		BullishSourceCount: bull,
		BearishSourceCount: bear,
		SourcesAvailable:   sig.AvailableCount(),

		Signals: labels,
	}
}

// AggregateAll pairs signals with their calls by index
func (a *Aggregator) AggregateAll(signals []*contracts.InstrumentSignals, calls []contracts.DirectionCall) ([]contracts.ConvictionResult, error) {
	if len(signals) != len(calls) {
		return nil, fmt.Errorf("signals/calls length mismatch: %d vs %d", len(signals), len(calls))
	}

	out := make([]contracts.ConvictionResult, len(signals))
	directional := 0
	for i, sig := range signals {
		if calls[i].Symbol != "" && calls[i].Symbol != sig.Symbol {
			return nil, fmt.Errorf("call %d is for %s, expected %s", i, calls[i].Symbol, sig.Symbol)
		}
		out[i] = a.Aggregate(sig, calls[i])
		if out[i].Direction.IsDirectional() {
			directional++
		}
	}

	a.logger.WithFields(map[string]interface{}{
		"instruments": len(out),
		"directional": directional,
	}).Info("Convictions aggregated")

	return out, nil
}

func (a *Aggregator) tierScale(tier int) float64 {
	switch tier {
	case 3:
		return a.cfg.Tier3Scale
	case 4:
		return a.cfg.Tier4Scale
	case 5:
		return a.cfg.Tier5Scale
	default:
		return 1
	}
}

// resolveConflict handles a flow lean that disagrees with the OI lean.
// Any other source backing OI flips the call to the OI lean (flow judged
// reactive). With no third source on either side the call is kept at a
// discount; flow backed by others and OI by none is left untouched.
func (a *Aggregator) resolveConflict(sig *contracts.InstrumentSignals, conviction float64, direction contracts.Direction, tier int) (float64, contracts.Direction, int, string) {
	flowLean := sig.Lean(contracts.SourceFlow)
	oiLean := sig.Lean(contracts.SourceOpenInterest)
	if !flowLean.IsDirectional() || !oiLean.IsDirectional() || flowLean == oiLean {
		return conviction, direction, tier, ""
	}

	oiSupport := sig.Support(oiLean, contracts.SourceFlow, contracts.SourceOpenInterest)
	flowSupport := sig.Support(flowLean, contracts.SourceFlow, contracts.SourceOpenInterest)

	switch {
	case oiSupport > 0:
		label := fmt.Sprintf("FLOW_REACTIVE:oi+inst_override_%s->%s", direction, oiLean)
		return conviction * a.cfg.ConflictOverrideFactor, oiLean, 2, label
	case flowSupport == 0:
		label := fmt.Sprintf("CONFLICTING:flow=%s_oi=%s_inst=%s",
			flowLean, oiLean, sig.Lean(contracts.SourceInstitutional))
		return conviction * a.cfg.ConflictUnresolvedFactor, direction, tier, label
	}
	return conviction, direction, tier, ""
}

// looksLikeHedge reports premium concentrated in LEAPS with little short-dated activity
func (a *Aggregator) looksLikeHedge(m contracts.FlowMetrics) bool {
	if m.TotalPremium <= 0 {
		return false
	}
	return m.LongDTEPremium/m.TotalPremium > a.cfg.HedgeLongShare && m.ShortDTERatio < a.cfg.HedgeMaxShortRatio
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
