package s3_direction

import (
	"fmt"
	"strings"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
)

// Resolver picks one direction per instrument with a strictly ordered cascade
// ⭐ SSOT: S3 방향 결정은 여기서만
//
//	1  short-dated flow dominance
//	2a OI lean + IV catalyst, 2b OI lean alone
//	3a aggregate flow share with corroboration, 3b dominant aggregate share
//	4  source-count consensus
//	5  low-liquidity catch-all (flow not qualified)
//	5b sustained OI accumulation (optional)
//
// Tiers 1–3 need a qualified flow scorer.
type Resolver struct {
	cfg    scanconfig.Resolver
	logger *logger.Logger
}

// NewResolver creates a new direction resolver
func NewResolver(cfg scanconfig.Resolver, log *logger.Logger) *Resolver {
	return &Resolver{
		cfg:    cfg,
		logger: log.WithField("module", "s3_direction"),
	}
}

// tierFunc returns a decided call or an undecided one
type tierFunc func(sig *contracts.InstrumentSignals) contracts.DirectionCall

// Resolve runs the cascade and stops at the first decided tier
func (r *Resolver) Resolve(sig *contracts.InstrumentSignals) contracts.DirectionCall {
	tiers := []tierFunc{
		r.shortDatedFlow,
		r.openInterest,
		r.aggregateFlow,
		r.consensus,
		r.lowLiquidity,
		r.sustainedOI,
	}

	for _, tier := range tiers {
		call := tier(sig)
		if call.Decided() {
			call.Symbol = sig.Symbol
			r.catalystConvergence(sig, &call)
			return call
		}
	}

	return contracts.DirectionCall{Symbol: sig.Symbol, Direction: contracts.Neutral, Rule: contracts.RuleNone}
}

// ResolveAll resolves every instrument and logs the tier distribution
func (r *Resolver) ResolveAll(signals []*contracts.InstrumentSignals) []contracts.DirectionCall {
	calls := make([]contracts.DirectionCall, len(signals))
	byRule := make(map[string]int)
	for i, sig := range signals {
		calls[i] = r.Resolve(sig)
		if calls[i].Decided() {
			byRule[calls[i].Rule]++
		}
	}

	r.logger.WithFields(map[string]interface{}{
		"instruments": len(signals),
		"by_rule":     byRule,
	}).Info("Directions resolved")

	return calls
}

func undecided() contracts.DirectionCall {
	return contracts.DirectionCall{Direction: contracts.Neutral}
}

func decided(dir contracts.Direction, tier int, rule string, labels ...string) contracts.DirectionCall {
	return contracts.DirectionCall{Direction: dir, Tier: tier, Rule: rule, Labels: labels}
}

// shortDatedFlow (tier 1): material short-dated premium with a one-sided share
func (r *Resolver) shortDatedFlow(sig *contracts.InstrumentSignals) contracts.DirectionCall {
	m := sig.Flow
	if !m.Qualified || m.ShortDTEPremium < r.cfg.Tier1MinPremium || m.ShortDTERatio < r.cfg.Tier1MinRatio {
		return undecided()
	}

	switch {
	case m.ShortCallPct >= r.cfg.Tier1BullishShare:
		return decided(contracts.Bullish, 1, contracts.RuleShortDatedFlow)
	case m.ShortCallPct <= r.cfg.Tier1BearishShare():
		return decided(contracts.Bearish, 1, contracts.RuleShortDatedFlow)
	}
	return undecided()
}

// openInterest (tier 2): an OI lean decides; 2a when a catalyst co-occurs
func (r *Resolver) openInterest(sig *contracts.InstrumentSignals) contracts.DirectionCall {
	lean := sig.Lean(contracts.SourceOpenInterest)
	if !sig.Flow.Qualified || !lean.IsDirectional() {
		return undecided()
	}

	if sig.Score(contracts.SourceIVTerm) > 0 {
		return decided(lean, 2, contracts.RuleOIWithCatalyst)
	}
	return decided(lean, 2, contracts.RuleOIAsymmetry)
}

// catalystConvergence adds the OI+IV bonus to any call the OI lean agrees
// with while an IV catalyst is live. Tier 1 pre-empting tier 2a must not
// cost the instrument that bonus.
func (r *Resolver) catalystConvergence(sig *contracts.InstrumentSignals, call *contracts.DirectionCall) {
	if sig.Score(contracts.SourceIVTerm) <= 0 || sig.Lean(contracts.SourceOpenInterest) != call.Direction {
		return
	}
	call.Bonus += r.cfg.Tier2aBonus
	call.Labels = append(call.Labels, fmt.Sprintf("OI_%s+IV_convergence", strings.ToLower(call.Direction.Short())))
}

// aggregateFlow (tier 3): total call share above the materiality floor
func (r *Resolver) aggregateFlow(sig *contracts.InstrumentSignals) contracts.DirectionCall {
	m := sig.Flow
	if !m.Qualified || m.TotalPremium < r.cfg.Tier3MinPremium {
		return undecided()
	}

	catalyst := sig.Score(contracts.SourceIVTerm) > 0
	corroborated := func(dir contracts.Direction) bool {
		return catalyst || sig.Support(dir, contracts.SourceFlow) >= 1
	}

	// 3a: 보강 신호 필요
	switch {
	case m.CallPct >= r.cfg.Tier3CorroboratedShare && corroborated(contracts.Bullish):
		return decided(contracts.Bullish, 3, contracts.RuleFlowCorroborate)
	case m.CallPct <= 1-r.cfg.Tier3CorroboratedShare && corroborated(contracts.Bearish):
		return decided(contracts.Bearish, 3, contracts.RuleFlowCorroborate)
	}

	// 3b: 무조건
	switch {
	case m.CallPct >= r.cfg.Tier3DominantShare:
		return decided(contracts.Bullish, 3, contracts.RuleFlowDominant)
	case m.CallPct <= 1-r.cfg.Tier3DominantShare:
		return decided(contracts.Bearish, 3, contracts.RuleFlowDominant)
	}
	return undecided()
}

// consensus (tier 4): enough available sources agree
func (r *Resolver) consensus(sig *contracts.InstrumentSignals) contracts.DirectionCall {
	bull, bear := sig.Tally()
	catalyst := sig.Score(contracts.SourceIVTerm) > 0

	switch {
	case bull >= r.cfg.Tier4MinSources:
		return decided(contracts.Bullish, 4, contracts.RuleConsensus)
	case bear >= r.cfg.Tier4MinSources:
		return decided(contracts.Bearish, 4, contracts.RuleConsensus)
	case catalyst && bull == r.cfg.Tier4CatalystSources && bear == 0:
		return decided(contracts.Bullish, 4, contracts.RuleConsensus)
	case catalyst && bear == r.cfg.Tier4CatalystSources && bull == 0:
		return decided(contracts.Bearish, 4, contracts.RuleConsensus)
	}
	return undecided()
}

// lowLiquidity (tier 5): thin instruments fall back on non-flow evidence
func (r *Resolver) lowLiquidity(sig *contracts.InstrumentSignals) contracts.DirectionCall {
	if sig.Flow.Qualified {
		return undecided()
	}

	nonFlow := sig.Score(contracts.SourceOpenInterest) +
		sig.Score(contracts.SourceIVTerm) +
		sig.Score(contracts.SourceDarkPool) +
		sig.Score(contracts.SourceSkew) +
		sig.Score(contracts.SourceInstitutional)
	oiLean := sig.Lean(contracts.SourceOpenInterest)
	bull, bear := sig.Tally()

	switch {
	case nonFlow >= r.cfg.Tier5NonFlowWithOI && oiLean.IsDirectional():
		return decided(oiLean, 5, contracts.RuleLowLiquidity)
	case nonFlow >= r.cfg.Tier5NonFlowWithIV && sig.Score(contracts.SourceIVTerm) > 0 && bull+bear > 0:
		return decided(majority(bull, bear), 5, contracts.RuleLowLiquidity)
	case bull >= r.cfg.Tier5MinLeans && bear == 0:
		return decided(contracts.Bullish, 5, contracts.RuleLowLiquidity)
	case bear >= r.cfg.Tier5MinLeans && bull == 0:
		return decided(contracts.Bearish, 5, contracts.RuleLowLiquidity)
	}
	return undecided()
}

// sustainedOI (tier 5b): multi-day OI accumulation borrows the dark-pool
// lean, else the strict source majority
func (r *Resolver) sustainedOI(sig *contracts.InstrumentSignals) contracts.DirectionCall {
	if !r.cfg.SustainedOITierEnabled() || !sig.Available[contracts.SourceOpenInterest] {
		return undecided()
	}

	p := sig.OIPersistence
	if p.MaxDaysIncreasing < r.cfg.SustainedOIDays || p.Contracts3Plus < r.cfg.SustainedOIContracts {
		return undecided()
	}

	if dp := sig.Lean(contracts.SourceDarkPool); dp.IsDirectional() {
		return decided(dp, 5, contracts.RuleSustainedOI, "sustained_OI+dp_direction")
	}

	bull, bear := sig.Tally()
	switch {
	case bull > bear:
		return decided(contracts.Bullish, 5, contracts.RuleSustainedOI, "sustained_OI+source_lean")
	case bear > bull:
		return decided(contracts.Bearish, 5, contracts.RuleSustainedOI, "sustained_OI+source_lean")
	}
	return undecided()
}

// majority breaks ties toward bullish
func majority(bull, bear int) contracts.Direction {
	if bull >= bear {
		return contracts.Bullish
	}
	return contracts.Bearish
}
