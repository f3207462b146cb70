package s2_signals

import (
	"context"
	"fmt"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
)

// Builder runs every source calculator for every instrument
// ⭐ SSOT: 시그널 생성 오케스트레이션은 여기서만
type Builder struct {
	// Signal calculators
	flow           *FlowCalculator
	openInterest   *OpenInterestCalculator
	gamma          *GammaCalculator
	ivTerm         *IVTermCalculator
	skew           *SkewCalculator
	darkPool       *DarkPoolCalculator
	institutional  *InstitutionalCalculator
	insider        *InsiderCalculator
	recommendation *RecommendationCalculator
	legislative    *LegislativeCalculator

	logger *logger.Logger
}

// NewBuilder creates a signal builder with calculators configured from cfg
func NewBuilder(cfg *scanconfig.Config, log *logger.Logger) *Builder {
	log = log.WithField("module", "s2_signals")
	return &Builder{
		flow:           NewFlowCalculator(cfg.Flow, log),
		openInterest:   NewOpenInterestCalculator(cfg.OpenInterest, log),
		gamma:          NewGammaCalculator(cfg.Gamma),
		ivTerm:         NewIVTermCalculator(cfg.IVTerm),
		skew:           NewSkewCalculator(cfg.Skew),
		darkPool:       NewDarkPoolCalculator(cfg.DarkPool),
		institutional:  NewInstitutionalCalculator(cfg.Institutional),
		insider:        NewInsiderCalculator(cfg.Insider),
		recommendation: NewRecommendationCalculator(cfg.Recommendation),
		legislative:    NewLegislativeCalculator(cfg.Legislative),
		logger:         log,
	}
}

// Build scores every instrument in the universe, in universe order.
// Scoring itself does no I/O; ctx is only checked before starting.
func (b *Builder) Build(ctx context.Context, universe *contracts.Universe, set *contracts.SourceSet) ([]*contracts.InstrumentSignals, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.logger.WithField("instrument_count", len(universe.Symbols)).Info("Starting signal generation")

	out := make([]*contracts.InstrumentSignals, 0, len(universe.Symbols))
	failed := 0
	for _, symbol := range universe.Symbols {
		sig := b.BuildInstrument(symbol, set)
		if len(sig.Errors) > 0 {
			failed++
		}
		out = append(out, sig)
	}

	b.logger.WithFields(map[string]interface{}{
		"total":         len(out),
		"scorer_errors": failed,
	}).Info("Signal generation completed")

	return out, nil
}

// BuildInstrument runs the ten calculators for one symbol. A source without
// a record stays neutral and unavailable.
func (b *Builder) BuildInstrument(symbol string, set *contracts.SourceSet) *contracts.InstrumentSignals {
	sig := contracts.NewInstrumentSignals(symbol)

	if trades, ok := set.Flow[symbol]; ok && len(trades) > 0 {
		b.guard(sig, contracts.SourceFlow, func() contracts.ScoreContribution {
			c, metrics := b.flow.Calculate(symbol, trades)
			sig.Flow = metrics
			return c
		})
	}
	if rec, ok := set.OpenInterest[symbol]; ok {
		b.guard(sig, contracts.SourceOpenInterest, func() contracts.ScoreContribution {
			c := b.openInterest.Calculate(symbol, rec)
			sig.OIPersistence = contracts.OIPersistence{
				MaxDaysIncreasing: rec.MaxDaysOIIncreasing,
				Contracts3Plus:    rec.Contracts3PlusDaysOIIncr,
			}
			return c
		})
	}
	if rec, ok := set.Gamma[symbol]; ok {
		b.guard(sig, contracts.SourceGamma, func() contracts.ScoreContribution {
			c, amplifier := b.gamma.Calculate(rec)
			sig.GammaAmplifier = amplifier
			return c
		})
	}
	if rec, ok := set.IVTerm[symbol]; ok {
		b.guard(sig, contracts.SourceIVTerm, func() contracts.ScoreContribution {
			return b.ivTerm.Calculate(rec)
		})
	}
	if rec, ok := set.Skew[symbol]; ok {
		b.guard(sig, contracts.SourceSkew, func() contracts.ScoreContribution {
			return b.skew.Calculate(rec)
		})
	}
	if rec, ok := set.DarkPool[symbol]; ok {
		b.guard(sig, contracts.SourceDarkPool, func() contracts.ScoreContribution {
			return b.darkPool.Calculate(rec)
		})
	}
	if rec, ok := set.Institutional[symbol]; ok {
		b.guard(sig, contracts.SourceInstitutional, func() contracts.ScoreContribution {
			return b.institutional.Calculate(rec)
		})
	}
	if rec, ok := set.Insider[symbol]; ok {
		b.guard(sig, contracts.SourceInsider, func() contracts.ScoreContribution {
			return b.insider.Calculate(rec)
		})
	}
	if rec, ok := set.Recommendation[symbol]; ok {
		b.guard(sig, contracts.SourceRecommendation, func() contracts.ScoreContribution {
			return b.recommendation.Calculate(rec)
		})
	}
	if rec, ok := set.Legislative[symbol]; ok {
		b.guard(sig, contracts.SourceLegislative, func() contracts.ScoreContribution {
			return b.legislative.Calculate(rec)
		})
	}

	return sig
}

// guard runs one calculator; a panic leaves the source neutral and unavailable
func (b *Builder) guard(sig *contracts.InstrumentSignals, src contracts.Source, calc func() contracts.ScoreContribution) {
	defer func() {
		if r := recover(); r != nil {
			sig.Contributions[src] = contracts.NeutralContribution()
			sig.Available[src] = false
			sig.Errors = append(sig.Errors, src.String())
			b.logger.WithFields(map[string]interface{}{
				"symbol": sig.Symbol,
				"source": src.String(),
			}).WithError(fmt.Errorf("%v", r)).Error("Scorer panicked, treating source as neutral")
		}
	}()

	sig.Contributions[src] = calc()
	sig.Available[src] = true
}
