package s6_export

import (
	"math"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
)

// Engine tags candidates produced by this scanner
const Engine = "SmartMoney"

// Candidate is the record handed to the downstream call/put pickers
type Candidate struct {
	Rank       int                 `json:"rank"`
	Symbol     string              `json:"symbol"`
	Direction  contracts.Direction `json:"direction"`
	Score      float64             `json:"score"` // min(conviction × scale, 1)
	Engine     string              `json:"engine"`
	Conviction float64             `json:"conviction"`

	// Share of premium on the candidate's side: calls for bullish, puts for bearish
	SidePct       float64 `json:"side_pct"`
	TotalPremium  float64 `json:"total_premium"`
	ShortDTERatio float64 `json:"short_dte_ratio"`

	Signals []string `json:"signals"`
}

// BuildCallCandidates converts ranked bullish results
func (e *Exporter) BuildCallCandidates(bullish []contracts.ConvictionResult) []Candidate {
	return e.build(bullish, func(r contracts.ConvictionResult) float64 { return r.CallPct })
}

// BuildPutCandidates converts ranked bearish results
func (e *Exporter) BuildPutCandidates(bearish []contracts.ConvictionResult) []Candidate {
	return e.build(bearish, func(r contracts.ConvictionResult) float64 { return r.PutPct() })
}

func (e *Exporter) build(results []contracts.ConvictionResult, side func(contracts.ConvictionResult) float64) []Candidate {
	n := min(len(results), e.cfg.CandidateTopN)
	out := make([]Candidate, 0, n)
	for i, r := range results[:n] {
		out = append(out, Candidate{
			Rank:          i + 1,
			Symbol:        r.Symbol,
			Direction:     r.Direction,
			Score:         math.Min(r.Conviction*e.cfg.CandidateScale, 1),
			Engine:        Engine,
			Conviction:    r.Conviction,
			SidePct:       side(r),
			TotalPremium:  r.TotalPremium,
			ShortDTERatio: r.ShortDTERatio,
			Signals:       r.Signals,
		})
	}
	return out
}
