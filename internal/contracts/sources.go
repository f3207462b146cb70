package contracts

import (
	"fmt"
	"sort"
)

// UnknownDTE marks a trade whose days-to-expiration was not reported
const UnknownDTE = -1

// FlowTrade is one historical options trade
type FlowTrade struct {
	PutCall      string  `json:"put_call"` // "C" or "P"
	Premium      float64 `json:"premium"`
	DTE          int     `json:"dte"` // UnknownDTE when missing
	Volume       float64 `json:"volume"`
	OpenInterest float64 `json:"open_interest"`
}

// IsCall reports whether the trade is a call
func (t FlowTrade) IsCall() bool { return t.PutCall == "C" }

// IsPut reports whether the trade is a put
func (t FlowTrade) IsPut() bool { return t.PutCall == "P" }

// OIRecord holds open-interest deltas for one instrument
type OIRecord struct {
	CallOIChange    float64 `json:"call_oi_change"`
	PutOIChange     float64 `json:"put_oi_change"`
	CallOIPctChange float64 `json:"call_oi_pct_change"`
	PutOIPctChange  float64 `json:"put_oi_pct_change"`

	// 다일 지속성 (persistence)
	MaxDaysOIIncreasing      int `json:"max_days_oi_increasing"`
	Contracts3PlusDaysOIIncr int `json:"contracts_3plus_days_oi_increase"`
	VolGtOICount             int `json:"vol_gt_oi_count"`

	TopContracts []TopContract `json:"top_contracts"`
}

// TopContract is one of the largest individual OI builds
type TopContract struct {
	PrevDirection Direction `json:"prev_direction"`
}

// GammaRecord holds dealer gamma exposure metrics
type GammaRecord struct {
	NetGEX        float64 `json:"net_gex"`
	FlipToday     bool    `json:"gex_flip_today"`
	FlipDirection string  `json:"gex_flip_direction"`
}

// IVTermRecord holds implied-volatility term structure metrics
type IVTermRecord struct {
	Inverted             bool    `json:"inverted"`
	TermSpread           float64 `json:"term_spread"`
	ImpliedMovePct       float64 `json:"implied_move_pct"`
	WeeklyImpliedMovePct float64 `json:"weekly_implied_move_pct"`
	FrontIV              float64 `json:"front_iv"`
	BackIV               float64 `json:"back_iv"`
}

// SkewRecord holds put/call skew metrics
type SkewRecord struct {
	ZScore       float64 `json:"skew_zscore"`
	Trend        string  `json:"skew_trend"`
	BearishHedge bool    `json:"bearish_hedge"`
}

// DarkPoolPrint is one off-exchange block
type DarkPoolPrint struct {
	Value float64 `json:"value"`
}

// DarkPoolRecord holds the dark-pool prints for one instrument
type DarkPoolRecord struct {
	Prints        []DarkPoolPrint `json:"prints"`
	TotalValue    float64         `json:"total_value"`
	AboveAskCount int             `json:"above_ask_count"`
	BelowBidCount int             `json:"below_bid_count"`
}

// InstitutionalRecord is the institutional-radar summary
type InstitutionalRecord struct {
	Signals     []string `json:"signals"`
	SignalCount int      `json:"signal_count"`
	ImpliedMove float64  `json:"implied_move"`
	Conviction  string   `json:"conviction"` // HIGH, MEDIUM, LOW
}

// InsiderRecord is the insider-transaction summary
type InsiderRecord struct {
	NetValue      float64 `json:"net_value"`
	TotalBuys     int     `json:"total_buys"`
	TotalBuyValue float64 `json:"total_buy_value"`
	TotalSells    int     `json:"total_sells"`
}

// RecommendationRecord is the third-party recommendation summary
type RecommendationRecord struct {
	CompositeScore float64 `json:"composite_score"`
	EngineCount    int     `json:"engine_count"`
	CatalystScore  float64 `json:"catalyst_score"`
}

// LegislativeRecord is the most recent legislative trade disclosure
type LegislativeRecord struct {
	Action     string `json:"action"`
	Politician string `json:"politician"`
}

// SourceSet holds every loaded snapshot for one scan
// ⭐ SSOT: S0 → S1/S2 데이터 전달 (스캔 동안 읽기 전용)
type SourceSet struct {
	Flow           map[string][]FlowTrade
	OpenInterest   map[string]OIRecord
	Gamma          map[string]GammaRecord
	IVTerm         map[string]IVTermRecord
	Skew           map[string]SkewRecord
	DarkPool       map[string]DarkPoolRecord
	Institutional  map[string]InstitutionalRecord
	Insider        map[string]InsiderRecord
	Recommendation map[string]RecommendationRecord
	Legislative    map[string]LegislativeRecord

	// Loaded marks sources whose snapshot was present and parsed
	Loaded map[Source]bool
	// Errors records why a source failed to load
	Errors map[Source]string
}

// NewSourceSet returns an empty SourceSet with every map allocated
func NewSourceSet() *SourceSet {
	return &SourceSet{
		Flow:           map[string][]FlowTrade{},
		OpenInterest:   map[string]OIRecord{},
		Gamma:          map[string]GammaRecord{},
		IVTerm:         map[string]IVTermRecord{},
		Skew:           map[string]SkewRecord{},
		DarkPool:       map[string]DarkPoolRecord{},
		Institutional:  map[string]InstitutionalRecord{},
		Insider:        map[string]InsiderRecord{},
		Recommendation: map[string]RecommendationRecord{},
		Legislative:    map[string]LegislativeRecord{},
		Loaded:         map[Source]bool{},
		Errors:         map[Source]string{},
	}
}

// Keys returns the sorted instrument keys of one source
func (s *SourceSet) Keys(src Source) []string {
	var keys []string
	switch src {
	case SourceFlow:
		keys = mapKeys(s.Flow)
	case SourceOpenInterest:
		keys = mapKeys(s.OpenInterest)
	case SourceGamma:
		keys = mapKeys(s.Gamma)
	case SourceIVTerm:
		keys = mapKeys(s.IVTerm)
	case SourceSkew:
		keys = mapKeys(s.Skew)
	case SourceDarkPool:
		keys = mapKeys(s.DarkPool)
	case SourceInstitutional:
		keys = mapKeys(s.Institutional)
	case SourceInsider:
		keys = mapKeys(s.Insider)
	case SourceRecommendation:
		keys = mapKeys(s.Recommendation)
	case SourceLegislative:
		keys = mapKeys(s.Legislative)
	}
	sort.Strings(keys)
	return keys
}

// Count returns how many instruments a source covers
func (s *SourceSet) Count(src Source) int {
	return len(s.Keys(src))
}

// Symbols returns the sorted union of every source's instrument keys
func (s *SourceSet) Symbols() []string {
	seen := make(map[string]struct{})
	for _, src := range AllSources() {
		for _, k := range s.Keys(src) {
			seen[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// LoadedNames returns "name(count)" for every loaded source, in scoring order
func (s *SourceSet) LoadedNames() []string {
	var out []string
	for _, src := range AllSources() {
		if s.Loaded[src] {
			out = append(out, fmt.Sprintf("%s(%d)", src, s.Count(src)))
		}
	}
	return out
}

func mapKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
