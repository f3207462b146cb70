package contracts

import (
	"errors"
	"time"
)

// ErrNoSnapshot is returned by a SnapshotStore when no previous scan exists
var ErrNoSnapshot = errors.New("no previous scan snapshot")

// SnapshotVersion is the current ScanSnapshot schema version
const SnapshotVersion = 1

// Resolver rule names
const (
	RuleNone            = ""
	RuleShortDatedFlow  = "1"
	RuleOIWithCatalyst  = "2a"
	RuleOIAsymmetry     = "2b"
	RuleFlowCorroborate = "3a"
	RuleFlowDominant    = "3b"
	RuleConsensus       = "4"
	RuleLowLiquidity    = "5"
	RuleSustainedOI     = "5b"
)

// DirectionCall is the resolved categorical decision for one instrument
// ⭐ SSOT: S3 → S4 방향 결정 전달
type DirectionCall struct {
	Symbol    string    `json:"symbol"`
	Direction Direction `json:"direction"`
	Tier      int       `json:"tier"` // 0 = undecided
	Rule      string    `json:"rule"`

	// Bonus is added to conviction by the aggregator (OI+IV convergence)
	Bonus  float64  `json:"bonus,omitempty"`
	Labels []string `json:"labels,omitempty"`
}

// Decided reports whether a tier produced a direction
func (c DirectionCall) Decided() bool {
	return c.Direction.IsDirectional()
}

// ConvictionResult is the exported per-instrument record
// ⭐ SSOT: S4 → S5/S6 최종 결과
type ConvictionResult struct {
	Symbol     string    `json:"symbol"`
	Direction  Direction `json:"direction"`
	Conviction float64   `json:"conviction"`
	Tier       int       `json:"tier"`
	Rule       string    `json:"rule"`

	CallPct         float64 `json:"call_pct"`
	TotalPremium    float64 `json:"total_premium"`
	CallPremium     float64 `json:"call_premium"`
	PutPremium      float64 `json:"put_premium"`
	ShortDTERatio   float64 `json:"short_dte_ratio"`
	ShortDTEPremium float64 `json:"short_dte_premium"`
	AvgVolOIRatio   float64 `json:"avg_vol_oi_ratio"`
	TradeCount      int     `json:"trade_count"`

	BullishSourceCount int `json:"bullish_source_count"`
	BearishSourceCount int `json:"bearish_source_count"`
	SourcesAvailable   int `json:"sources_available"`

	Signals []string `json:"signals"`
}

// PutPct returns the put share of total premium
func (r *ConvictionResult) PutPct() float64 {
	return 1 - r.CallPct
}

// ScanSnapshot is the persisted top-N of one scan
// ⭐ SSOT: S5 스캔 간 상태 (이전 스캔 vs 현재 스캔)
type ScanSnapshot struct {
	Version           int                `json:"version"`
	ScanID            string             `json:"scan_id"`
	Timestamp         time.Time          `json:"timestamp"`
	BullishCandidates []ConvictionResult `json:"bullish_candidates"`
	BearishCandidates []ConvictionResult `json:"bearish_candidates"`
	DataFingerprint   string             `json:"data_fingerprint"`
	SourcesLoaded     []string           `json:"sources_loaded,omitempty"`
}

// Convictions returns symbol → conviction for the candidates of one side
func (s *ScanSnapshot) Convictions(dir Direction) map[string]float64 {
	var list []ConvictionResult
	switch dir {
	case Bullish:
		list = s.BullishCandidates
	case Bearish:
		list = s.BearishCandidates
	}
	out := make(map[string]float64, len(list))
	for _, r := range list {
		out[r.Symbol] = r.Conviction
	}
	return out
}

// AuditEntry is one line of the append-only scan history
type AuditEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	ScanID      string    `json:"scan_id"`
	Fingerprint string    `json:"fingerprint"`
	NBullish    int       `json:"n_bullish"`
	NBearish    int       `json:"n_bearish"`
	Top5Bull    []string  `json:"top5_bull"`
	Top5Bear    []string  `json:"top5_bear"`
}

// Universe is the set of instruments scanned in one run
// ⭐ SSOT: S1 → S2 유니버스 전달
type Universe struct {
	Symbols    []string          `json:"symbols"`     // sorted, unique
	Configured int               `json:"configured"`  // from the configured list
	FromSource int               `json:"from_source"` // added because a snapshot mentioned them
	Excluded   map[string]string `json:"excluded"`    // symbol → reason
}

// Contains reports whether symbol is in the universe
func (u *Universe) Contains(symbol string) bool {
	for _, s := range u.Symbols {
		if s == symbol {
			return true
		}
	}
	return false
}
