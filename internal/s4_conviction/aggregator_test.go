package s4_conviction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/s2_signals"
	"github.com/achavala/Meta-Engine-sub001/internal/s3_direction"
	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
)

func newAggregator(t *testing.T) *Aggregator {
	t.Helper()
	return NewAggregator(scanconfig.Default(), logger.NewNop())
}

func signals(symbol string, contribs map[contracts.Source]contracts.ScoreContribution) *contracts.InstrumentSignals {
	sig := contracts.NewInstrumentSignals(symbol)
	for src, c := range contribs {
		sig.Contributions[src] = c
		sig.Available[src] = true
	}
	return sig
}

func lean(score float64, dir contracts.Direction) contracts.ScoreContribution {
	return contracts.ScoreContribution{Score: score, Lean: dir}
}

func call(dir contracts.Direction, tier int, rule string) contracts.DirectionCall {
	return contracts.DirectionCall{Direction: dir, Tier: tier, Rule: rule}
}

func neutralCall() contracts.DirectionCall {
	return contracts.DirectionCall{Direction: contracts.Neutral}
}

func TestAggregate_Convergence(t *testing.T) {
	a := newAggregator(t)

	tests := []struct {
		name               string
		contribs           map[contracts.Source]contracts.ScoreContribution
		expectedConviction float64
		expectedLabel      string
	}{
		{
			name: "four agreeing sources",
			contribs: map[contracts.Source]contracts.ScoreContribution{
				contracts.SourceDarkPool:      lean(0.02, contracts.Bullish),
				contracts.SourceInstitutional: lean(0.02, contracts.Bullish),
				contracts.SourceInsider:       lean(0.02, contracts.Bullish),
				contracts.SourceLegislative:   lean(0.02, contracts.Bullish),
			},
			expectedConviction: 0.112,
			expectedLabel:      "STRONG_CONVERGENCE_4_sources",
		},
		{
			name: "three agreeing sources",
			contribs: map[contracts.Source]contracts.ScoreContribution{
				contracts.SourceDarkPool:      lean(0.02, contracts.Bearish),
				contracts.SourceInstitutional: lean(0.02, contracts.Bearish),
				contracts.SourceInsider:       lean(0.04, contracts.Bearish),
			},
			expectedConviction: 0.10,
			expectedLabel:      "CONVERGENCE_3_sources",
		},
		{
			name: "two sources with IV catalyst",
			contribs: map[contracts.Source]contracts.ScoreContribution{
				contracts.SourceInsider:     lean(0.04, contracts.Bullish),
				contracts.SourceLegislative: lean(0.04, contracts.Bullish),
				contracts.SourceIVTerm:      lean(0.02, contracts.Neutral),
			},
			expectedConviction: 0.115,
			expectedLabel:      "IV+2_source_convergence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := a.Aggregate(signals("TEST", tt.contribs), neutralCall())
			assert.InDelta(t, tt.expectedConviction, result.Conviction, 1e-4)
			assert.Contains(t, result.Signals, tt.expectedLabel)
		})
	}

	t.Run("two sources without catalyst", func(t *testing.T) {
		result := a.Aggregate(signals("TEST", map[contracts.Source]contracts.ScoreContribution{
			contracts.SourceInsider:     lean(0.04, contracts.Bullish),
			contracts.SourceLegislative: lean(0.04, contracts.Bullish),
		}), neutralCall())
		assert.InDelta(t, 0.08, result.Conviction, 1e-4)
		assert.Equal(t, []string{"dir_tier=0"}, result.Signals)
	})
}

func TestAggregate_GammaAndVolCatalyst(t *testing.T) {
	a := newAggregator(t)

	t.Run("strong catalyst", func(t *testing.T) {
		sig := signals("TEST", map[contracts.Source]contracts.ScoreContribution{
			contracts.SourceOpenInterest: lean(0.05, contracts.Neutral),
			contracts.SourceIVTerm:       lean(0.03, contracts.Neutral),
		})
		result := a.Aggregate(sig, neutralCall())
		assert.InDelta(t, 0.18, result.Conviction, 1e-4)
		assert.Contains(t, result.Signals, "vol_catalyst_strong")
	})

	t.Run("catalyst with gamma and amplifier", func(t *testing.T) {
		sig := signals("TEST", map[contracts.Source]contracts.ScoreContribution{
			contracts.SourceGamma:  lean(0.04, contracts.Neutral),
			contracts.SourceIVTerm: lean(0.06, contracts.Neutral),
		})
		sig.GammaAmplifier = 1.10
		result := a.Aggregate(sig, neutralCall())
		// 0.10 × 1.10 + 0.06
		assert.InDelta(t, 0.17, result.Conviction, 1e-4)
		assert.Contains(t, result.Signals, "vol_catalyst")
		assert.NotContains(t, result.Signals, "vol_catalyst_strong")
	})

	t.Run("flow below catalyst minimum", func(t *testing.T) {
		sig := signals("TEST", map[contracts.Source]contracts.ScoreContribution{
			contracts.SourceFlow:   lean(0.05, contracts.Neutral),
			contracts.SourceIVTerm: lean(0.03, contracts.Neutral),
		})
		result := a.Aggregate(sig, neutralCall())
		assert.InDelta(t, 0.08, result.Conviction, 1e-4)
		assert.NotContains(t, result.Signals, "vol_catalyst")
	})
}

func TestAggregate_TierScaling(t *testing.T) {
	a := newAggregator(t)

	tests := []struct {
		tier     int
		rule     string
		expected float64
	}{
		{1, contracts.RuleShortDatedFlow, 0.20},
		{2, contracts.RuleOIAsymmetry, 0.20},
		{3, contracts.RuleFlowDominant, 0.17},
		{4, contracts.RuleConsensus, 0.14},
		{5, contracts.RuleLowLiquidity, 0.13},
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			sig := signals("TEST", map[contracts.Source]contracts.ScoreContribution{
				contracts.SourceFlow: lean(0.20, contracts.Bullish),
			})
			result := a.Aggregate(sig, call(contracts.Bullish, tt.tier, tt.rule))
			assert.InDelta(t, tt.expected, result.Conviction, 1e-4)
			assert.Equal(t, tt.tier, result.Tier)
			assert.Equal(t, tt.rule, result.Rule)
		})
	}
}

func TestAggregate_Tier2aBonus(t *testing.T) {
	a := newAggregator(t)

	sig := signals("TEST", map[contracts.Source]contracts.ScoreContribution{
		contracts.SourceOpenInterest: lean(0.10, contracts.Bullish),
	})
	c := call(contracts.Bullish, 2, contracts.RuleOIWithCatalyst)
	c.Bonus = 0.04
	c.Labels = []string{"OI_bull+IV_convergence"}

	result := a.Aggregate(sig, c)
	assert.InDelta(t, 0.14, result.Conviction, 1e-4)
	assert.Equal(t, []string{"OI_bull+IV_convergence", "dir_tier=2"}, result.Signals)
}

func TestAggregate_Conflict(t *testing.T) {
	a := newAggregator(t)

	t.Run("OI corroborated overrides reactive flow", func(t *testing.T) {
		sig := signals("TEST", map[contracts.Source]contracts.ScoreContribution{
			contracts.SourceFlow:          lean(0.12, contracts.Bullish),
			contracts.SourceOpenInterest:  lean(0.10, contracts.Bearish),
			contracts.SourceInstitutional: lean(0.04, contracts.Bearish),
		})
		result := a.Aggregate(sig, call(contracts.Bullish, 1, contracts.RuleShortDatedFlow))

		assert.Equal(t, contracts.Bearish, result.Direction)
		assert.Equal(t, 2, result.Tier)
		assert.InDelta(t, 0.221, result.Conviction, 1e-4)
		assert.Contains(t, result.Signals, "FLOW_REACTIVE:oi+inst_override_BULLISH->BEARISH")
		assert.Equal(t, "dir_tier=2", result.Signals[len(result.Signals)-1])
	})

	t.Run("uncorroborated conflict is discounted", func(t *testing.T) {
		sig := signals("TEST", map[contracts.Source]contracts.ScoreContribution{
			contracts.SourceFlow:         lean(0.12, contracts.Bullish),
			contracts.SourceOpenInterest: lean(0.10, contracts.Bearish),
		})
		result := a.Aggregate(sig, call(contracts.Bullish, 1, contracts.RuleShortDatedFlow))

		assert.Equal(t, contracts.Bullish, result.Direction)
		assert.Equal(t, 1, result.Tier)
		assert.InDelta(t, 0.165, result.Conviction, 1e-4)
		assert.Contains(t, result.Signals, "CONFLICTING:flow=BULLISH_oi=BEARISH_inst=NEUTRAL")
	})

	t.Run("OI corroborated overrides even when flow is corroborated too", func(t *testing.T) {
		sig := signals("TEST", map[contracts.Source]contracts.ScoreContribution{
			contracts.SourceFlow:          lean(0.12, contracts.Bullish),
			contracts.SourceOpenInterest:  lean(0.10, contracts.Bearish),
			contracts.SourceInstitutional: lean(0.04, contracts.Bearish),
			contracts.SourceInsider:       lean(0.04, contracts.Bullish),
		})
		result := a.Aggregate(sig, call(contracts.Bullish, 1, contracts.RuleShortDatedFlow))

		assert.Equal(t, contracts.Bearish, result.Direction)
		assert.Equal(t, 2, result.Tier)
		// 0.30 × 0.85
		assert.InDelta(t, 0.255, result.Conviction, 1e-4)
		assert.Contains(t, result.Signals, "FLOW_REACTIVE:oi+inst_override_BULLISH->BEARISH")
		for _, label := range result.Signals {
			assert.NotContains(t, label, "CONFLICTING")
		}
	})

	t.Run("flow corroborated is kept", func(t *testing.T) {
		sig := signals("TEST", map[contracts.Source]contracts.ScoreContribution{
			contracts.SourceFlow:         lean(0.12, contracts.Bullish),
			contracts.SourceOpenInterest: lean(0.10, contracts.Bearish),
			contracts.SourceInsider:      lean(0.04, contracts.Bullish),
		})
		result := a.Aggregate(sig, call(contracts.Bullish, 1, contracts.RuleShortDatedFlow))

		assert.Equal(t, contracts.Bullish, result.Direction)
		assert.InDelta(t, 0.26, result.Conviction, 1e-4)
		for _, label := range result.Signals {
			assert.NotContains(t, label, "CONFLICTING")
			assert.NotContains(t, label, "FLOW_REACTIVE")
		}
	})

	t.Run("lower tiers are not checked", func(t *testing.T) {
		sig := signals("TEST", map[contracts.Source]contracts.ScoreContribution{
			contracts.SourceFlow:         lean(0.12, contracts.Bullish),
			contracts.SourceOpenInterest: lean(0.10, contracts.Bearish),
		})
		result := a.Aggregate(sig, call(contracts.Bullish, 3, contracts.RuleFlowDominant))
		assert.Equal(t, contracts.Bullish, result.Direction)
		assert.InDelta(t, 0.187, result.Conviction, 1e-4)
	})
}

func TestAggregate_Caution(t *testing.T) {
	a := newAggregator(t)

	sig := signals("TEST", map[contracts.Source]contracts.ScoreContribution{
		contracts.SourceFlow:          lean(0.12, contracts.Bearish),
		contracts.SourceDarkPool:      lean(0.02, contracts.Bullish),
		contracts.SourceInstitutional: lean(0.04, contracts.Bullish),
		contracts.SourceInsider:       lean(0.04, contracts.Bullish),
	})
	result := a.Aggregate(sig, call(contracts.Bearish, 1, contracts.RuleShortDatedFlow))

	// 0.22 × 1.25 × 0.80
	assert.InDelta(t, 0.22, result.Conviction, 1e-4)
	assert.Contains(t, result.Signals, "CAUTION:bear_vs_bull_sources")
	assert.Equal(t, 3, result.BullishSourceCount)
	assert.Equal(t, 1, result.BearishSourceCount)
}

func TestAggregate_HedgeDiscount(t *testing.T) {
	a := newAggregator(t)

	sig := signals("TEST", map[contracts.Source]contracts.ScoreContribution{
		contracts.SourceFlow: lean(0.10, contracts.Bullish),
	})
	sig.Flow = contracts.FlowMetrics{
		Qualified:      true,
		TradeCount:     8,
		TotalPremium:   1_000_000,
		CallPremium:    900_000,
		PutPremium:     100_000,
		CallPct:        0.9,
		LongDTEPremium: 850_000,
		ShortDTERatio:  0.05,
	}

	result := a.Aggregate(sig, call(contracts.Bullish, 3, contracts.RuleFlowDominant))
	// 0.10 × 0.85 × 0.60
	assert.InDelta(t, 0.051, result.Conviction, 1e-4)
	assert.Contains(t, result.Signals, "LEAPS_heavy_possible_hedge")

	sig.Flow.ShortDTERatio = 0.10
	result = a.Aggregate(sig, call(contracts.Bullish, 3, contracts.RuleFlowDominant))
	assert.InDelta(t, 0.085, result.Conviction, 1e-4)
	assert.NotContains(t, result.Signals, "LEAPS_heavy_possible_hedge")
}

func TestAggregate_HighBeta(t *testing.T) {
	a := newAggregator(t)

	contribs := map[contracts.Source]contracts.ScoreContribution{
		contracts.SourceFlow:   lean(0.12, contracts.Bullish),
		contracts.SourceIVTerm: lean(0.03, contracts.Neutral),
	}

	plain := a.Aggregate(signals("AAPL", contribs), call(contracts.Bullish, 1, contracts.RuleShortDatedFlow))
	beta := a.Aggregate(signals("MSTR", contribs), call(contracts.Bullish, 1, contracts.RuleShortDatedFlow))

	// (0.15 + 0.06 vol catalyst)
	assert.InDelta(t, 0.21, plain.Conviction, 1e-4)
	assert.InDelta(t, 0.2415, beta.Conviction, 1e-4)
	assert.Contains(t, beta.Signals, "high_beta_amplified")

	neutral := a.Aggregate(signals("MSTR", contribs), neutralCall())
	assert.NotContains(t, neutral.Signals, "high_beta_amplified")
}

func TestAggregate_Bounds(t *testing.T) {
	a := newAggregator(t)

	contribs := make(map[contracts.Source]contracts.ScoreContribution)
	for _, src := range contracts.AllSources() {
		contribs[src] = lean(0.30, contracts.Bullish)
	}
	sig := signals("MSTR", contribs)
	sig.GammaAmplifier = 1.10

	result := a.Aggregate(sig, call(contracts.Bullish, 1, contracts.RuleShortDatedFlow))
	assert.Equal(t, 1.0, result.Conviction)

	empty := a.Aggregate(signals("NONE", nil), neutralCall())
	assert.Equal(t, 0.0, empty.Conviction)
}

func TestAggregate_ResultFields(t *testing.T) {
	a := newAggregator(t)

	sig := signals("TEST", map[contracts.Source]contracts.ScoreContribution{
		contracts.SourceFlow: {Score: 0.05, Lean: contracts.Bullish, Labels: []string{"total_call_flow_75%"}},
	})
	sig.Flow = contracts.FlowMetrics{
		Qualified:       true,
		TradeCount:      12,
		TotalPremium:    400_000,
		CallPremium:     300_000,
		PutPremium:      100_000,
		CallPct:         0.123456,
		ShortDTEPremium: 49_380,
		ShortDTERatio:   0.12345,
		AvgVolOI:        2.3456,
	}

	result := a.Aggregate(sig, neutralCall())
	assert.Equal(t, "TEST", result.Symbol)
	assert.Equal(t, contracts.Neutral, result.Direction)
	assert.Equal(t, 0, result.Tier)
	assert.Equal(t, contracts.RuleNone, result.Rule)
	assert.InDelta(t, 0.05, result.Conviction, 1e-9)
	assert.Equal(t, 0.1235, result.CallPct)
	assert.Equal(t, 0.123, result.ShortDTERatio)
	assert.Equal(t, 2.35, result.AvgVolOIRatio)
	assert.Equal(t, 12, result.TradeCount)
	assert.Equal(t, 400_000.0, result.TotalPremium)
	assert.Equal(t, 1, result.SourcesAvailable)
	assert.Equal(t, []string{"total_call_flow_75%", "dir_tier=0"}, result.Signals)
}

func TestAggregateAll(t *testing.T) {
	a := newAggregator(t)

	sigs := []*contracts.InstrumentSignals{signals("AAA", nil), signals("BBB", nil)}

	_, err := a.AggregateAll(sigs, []contracts.DirectionCall{neutralCall()})
	assert.Error(t, err)

	_, err = a.AggregateAll(sigs, []contracts.DirectionCall{
		{Symbol: "BBB", Direction: contracts.Neutral},
		{Symbol: "AAA", Direction: contracts.Neutral},
	})
	assert.Error(t, err)

	results, err := a.AggregateAll(sigs, []contracts.DirectionCall{
		{Symbol: "AAA", Direction: contracts.Neutral},
		{Symbol: "BBB", Direction: contracts.Neutral},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "AAA", results[0].Symbol)
	assert.Equal(t, "BBB", results[1].Symbol)
}

// Short-dated call flow below the tier-1 floor, one-sided OI build and an
// inverted term structure resolve at tier 2 with IV convergence.
func TestPipeline_OIWithCatalyst(t *testing.T) {
	cfg := scanconfig.Default()
	log := logger.NewNop()

	set := contracts.NewSourceSet()
	var trades []contracts.FlowTrade
	for i := 0; i < 4; i++ {
		trades = append(trades, contracts.FlowTrade{PutCall: "C", Premium: 22_500, DTE: 3, Volume: 100, OpenInterest: 100})
	}
	for i := 0; i < 2; i++ {
		trades = append(trades, contracts.FlowTrade{PutCall: "P", Premium: 15_000, DTE: 3, Volume: 100, OpenInterest: 100})
	}
	set.Flow["ACME"] = trades
	set.OpenInterest["ACME"] = contracts.OIRecord{CallOIChange: 8000, PutOIChange: 200}
	set.IVTerm["ACME"] = contracts.IVTermRecord{Inverted: true}

	sig := s2_signals.NewBuilder(cfg, log).BuildInstrument("ACME", set)
	require.True(t, sig.Flow.Qualified)
	require.InDelta(t, 0.75, sig.Flow.CallPct, 1e-9)
	require.Equal(t, contracts.Bullish, sig.Lean(contracts.SourceOpenInterest))

	c := s3_direction.NewResolver(cfg.Resolver, log).Resolve(sig)
	require.Equal(t, contracts.RuleOIWithCatalyst, c.Rule)

	result := NewAggregator(cfg, log).Aggregate(sig, c)
	assert.Equal(t, contracts.Bullish, result.Direction)
	assert.Equal(t, 2, result.Tier)
	assert.Contains(t, result.Signals, "IV+2_source_convergence")
	assert.Contains(t, result.Signals, "vol_catalyst_strong")
	assert.Contains(t, result.Signals, "OI_bull+IV_convergence")
	// (0.05 flow + 0.10 OI + 0.03 IV) × 1.15 + 0.10 + 0.04
	assert.InDelta(t, 0.347, result.Conviction, 1e-4)
}

// Raising the short-dated call share from 0.50 to 0.90, with everything
// else fixed, never lowers bullish conviction. The sweep crosses the
// tier-1 boundary at 0.60 where tier 1 takes over from tier 2a.
func TestPipeline_MonotoneInCallShare(t *testing.T) {
	cfg := scanconfig.Default()
	log := logger.NewNop()
	builder := s2_signals.NewBuilder(cfg, log)
	resolver := s3_direction.NewResolver(cfg.Resolver, log)
	aggregator := NewAggregator(cfg, log)

	for _, total := range []float64{400_000, 2_000_000} {
		prev := -1.0
		for pct := 50; pct <= 90; pct += 2 {
			share := float64(pct) / 100

			set := contracts.NewSourceSet()
			var trades []contracts.FlowTrade
			for i := 0; i < 5; i++ {
				trades = append(trades,
					contracts.FlowTrade{PutCall: "C", Premium: total * share / 5, DTE: 3, Volume: 100, OpenInterest: 100},
					contracts.FlowTrade{PutCall: "P", Premium: total * (1 - share) / 5, DTE: 3, Volume: 100, OpenInterest: 100},
				)
			}
			set.Flow["ACME"] = trades
			set.OpenInterest["ACME"] = contracts.OIRecord{CallOIChange: 8000, PutOIChange: 200}
			set.IVTerm["ACME"] = contracts.IVTermRecord{Inverted: true}

			sig := builder.BuildInstrument("ACME", set)
			result := aggregator.Aggregate(sig, resolver.Resolve(sig))

			require.Equal(t, contracts.Bullish, result.Direction, "total=%.0f share=%.2f", total, share)
			assert.Contains(t, result.Signals, "OI_bull+IV_convergence", "total=%.0f share=%.2f", total, share)
			assert.GreaterOrEqual(t, result.Conviction, prev, "total=%.0f share=%.2f", total, share)
			prev = result.Conviction
		}
	}
}
