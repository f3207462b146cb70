package contracts

// ScoreContribution is one source's verdict for one instrument
// ⭐ SSOT: S2 → S3/S4 소스별 점수 전달
type ScoreContribution struct {
	Score  float64   `json:"score"`
	Labels []string  `json:"labels,omitempty"`
	Lean   Direction `json:"lean"`
}

// NeutralContribution returns a zero contribution
func NeutralContribution() ScoreContribution {
	return ScoreContribution{Lean: Neutral}
}

// Fired reports whether the source contributed any score
func (c ScoreContribution) Fired() bool {
	return c.Score > 0
}

// FlowMetrics are the raw aggregates computed from an instrument's flow trades
type FlowMetrics struct {
	Qualified  bool `json:"qualified"` // ≥ min trades with positive premium
	TradeCount int  `json:"trade_count"`

	TotalPremium float64 `json:"total_premium"`
	CallPremium  float64 `json:"call_premium"`
	PutPremium   float64 `json:"put_premium"`
	CallPct      float64 `json:"call_pct"` // 0.5 when unqualified

	// 단기물 (≤ short DTE)
	ShortDTEPremium float64 `json:"short_dte_premium"`
	ShortDTERatio   float64 `json:"short_dte_ratio"`
	ShortCallPct    float64 `json:"short_call_pct"`

	// 장기물 (LEAPS, > long DTE)
	LongDTEPremium float64 `json:"long_dte_premium"`

	AvgVolOI float64 `json:"avg_vol_oi"`
}

// EmptyFlowMetrics returns the metrics reported for an instrument without usable flow
func EmptyFlowMetrics(tradeCount int) FlowMetrics {
	return FlowMetrics{TradeCount: tradeCount, CallPct: 0.5, ShortCallPct: 0.5}
}

// OIPersistence carries the multi-day OI fields consulted by the sustained-OI rule
type OIPersistence struct {
	MaxDaysIncreasing int `json:"max_days_increasing"`
	Contracts3Plus    int `json:"contracts_3plus"`
}

// InstrumentSignals holds every scorer output for one instrument
// ⭐ SSOT: S2 출력 (종목 단위)
type InstrumentSignals struct {
	Symbol        string                        `json:"symbol"`
	Contributions [NumSources]ScoreContribution `json:"contributions"`
	Available     [NumSources]bool              `json:"available"`

	Flow           FlowMetrics   `json:"flow"`
	GammaAmplifier float64       `json:"gamma_amplifier"` // 1.0 = none
	OIPersistence  OIPersistence `json:"oi_persistence"`

	// Errors lists sources whose scorer failed for this instrument
	Errors []string `json:"errors,omitempty"`
}

// NewInstrumentSignals returns signals with every source neutral
func NewInstrumentSignals(symbol string) *InstrumentSignals {
	s := &InstrumentSignals{
		Symbol:         symbol,
		Flow:           EmptyFlowMetrics(0),
		GammaAmplifier: 1.0,
	}
	for i := range s.Contributions {
		s.Contributions[i] = NeutralContribution()
	}
	return s
}

// Get returns the contribution of src
func (s *InstrumentSignals) Get(src Source) ScoreContribution {
	return s.Contributions[src]
}

// Score returns the contribution score of src
func (s *InstrumentSignals) Score(src Source) float64 {
	return s.Contributions[src].Score
}

// Lean returns the directional lean of src
func (s *InstrumentSignals) Lean(src Source) Direction {
	return s.Contributions[src].Lean
}

// Tally counts bullish and bearish leans across available sources
func (s *InstrumentSignals) Tally() (bullish, bearish int) {
	for i, c := range s.Contributions {
		if !s.Available[i] {
			continue
		}
		switch c.Lean {
		case Bullish:
			bullish++
		case Bearish:
			bearish++
		}
	}
	return bullish, bearish
}

// Support counts available sources other than excluded that lean toward dir
func (s *InstrumentSignals) Support(dir Direction, excluded ...Source) int {
	n := 0
	for i, c := range s.Contributions {
		if !s.Available[i] || c.Lean != dir || containsSource(excluded, Source(i)) {
			continue
		}
		n++
	}
	return n
}

// Total sums every contribution score
func (s *InstrumentSignals) Total() float64 {
	sum := 0.0
	for _, c := range s.Contributions {
		sum += c.Score
	}
	return sum
}

// Labels returns all scorer labels in source order
func (s *InstrumentSignals) Labels() []string {
	var out []string
	for _, c := range s.Contributions {
		out = append(out, c.Labels...)
	}
	return out
}

// AvailableCount returns how many sources had data for this instrument
func (s *InstrumentSignals) AvailableCount() int {
	n := 0
	for _, ok := range s.Available {
		if ok {
			n++
		}
	}
	return n
}

func containsSource(list []Source, src Source) bool {
	for _, s := range list {
		if s == src {
			return true
		}
	}
	return false
}
