package s0_sources

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
)

// === Wire DTOs (tolerant) ===

type flowTradeDTO struct {
	PutCall      flexString `json:"put_call"`
	Premium      flexFloat  `json:"premium"`
	DTE          *flexInt   `json:"dte"`
	Volume       flexFloat  `json:"volume"`
	OpenInterest flexFloat  `json:"open_interest"`
}

type oiDTO struct {
	CallOIChange    flexFloat `json:"call_oi_change"`
	PutOIChange     flexFloat `json:"put_oi_change"`
	CallOIPctChange flexFloat `json:"call_oi_pct_change"`
	PutOIPctChange  flexFloat `json:"put_oi_pct_change"`
	MaxDaysInc      flexInt   `json:"max_days_oi_increasing"`
	Contracts3Plus  flexInt   `json:"contracts_3plus_days_oi_increase"`
	VolGtOICount    flexInt   `json:"vol_gt_oi_count"`
	TopContracts    []struct {
		PrevDirection flexString `json:"prev_direction"`
	} `json:"top_contracts"`
}

type gammaDTO struct {
	NetGEX        flexFloat  `json:"net_gex"`
	FlipToday     flexBool   `json:"gex_flip_today"`
	FlipDirection flexString `json:"gex_flip_direction"`
}

type ivTermDTO struct {
	Inverted             flexBool  `json:"inverted"`
	TermSpread           flexFloat `json:"term_spread"`
	ImpliedMovePct       flexFloat `json:"implied_move_pct"`
	WeeklyImpliedMovePct flexFloat `json:"weekly_implied_move_pct"`
	FrontIV              flexFloat `json:"front_iv"`
	BackIV               flexFloat `json:"back_iv"`
}

type skewDTO struct {
	ZScore       flexFloat  `json:"skew_zscore"`
	Trend        flexString `json:"skew_trend"`
	BearishHedge flexBool   `json:"bearish_hedge"`
}

type darkPoolDTO struct {
	Prints []struct {
		Value flexFloat `json:"value"`
	} `json:"prints"`
	TotalValue    flexFloat `json:"total_value"`
	AboveAskCount flexInt   `json:"above_ask_count"`
	BelowBidCount flexInt   `json:"below_bid_count"`
}

type institutionalDTO struct {
	Signals     []flexString    `json:"signals"`
	SignalCount json.RawMessage `json:"signal_count"`
	ImpliedMove json.RawMessage `json:"implied_move"`
	Conviction  flexString      `json:"conviction"`
}

type insiderDTO struct {
	NetValue      flexFloat `json:"net_value"`
	TotalBuys     flexInt   `json:"total_buys"`
	TotalBuyValue flexFloat `json:"total_buy_value"`
	TotalSells    flexInt   `json:"total_sells"`
}

type recommendationDTO struct {
	Symbol         flexString `json:"symbol"`
	CompositeScore flexFloat  `json:"composite_score"`
	EngineCount    flexInt    `json:"engine_count"`
	CatalystScore  flexFloat  `json:"catalyst_score"`
}

type legislativeDTO struct {
	Symbol     flexString `json:"symbol"`
	Action     flexString `json:"action"`
	Politician flexString `json:"politician"`
}

// === Envelope helpers ===

// objectEntries decodes data as an object and unwraps envelope when present
func objectEntries(data []byte, envelope string) (map[string]json.RawMessage, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("decode top-level object: %w", err)
	}

	if envelope != "" {
		if inner, ok := top[envelope]; ok {
			var entries map[string]json.RawMessage
			if err := json.Unmarshal(inner, &entries); err != nil {
				return nil, fmt.Errorf("decode %q: %w", envelope, err)
			}
			return entries, nil
		}
	}
	return top, nil
}

// listEntries decodes data as an object and returns the list under key
func listEntries(data []byte, key string) ([]json.RawMessage, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("decode top-level object: %w", err)
	}
	raw, ok := top[key]
	if !ok {
		return nil, nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode %q: %w", key, err)
	}
	return list, nil
}

func isObject(raw json.RawMessage) bool {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// decodeRecords decodes every object-valued entry into T and converts it;
// entries that are not objects or fail to decode are skipped
func decodeRecords[T any, R any](entries map[string]json.RawMessage, convert func(T) R) (map[string]R, int) {
	out := make(map[string]R, len(entries))
	skipped := 0
	for sym, raw := range entries {
		key := normalizeSymbol(sym)
		if key == "" || !isObject(raw) {
			skipped++
			continue
		}
		var dto T
		if err := json.Unmarshal(raw, &dto); err != nil {
			skipped++
			continue
		}
		out[key] = convert(dto)
	}
	return out, skipped
}

// === Per-source parsers ===

// ParseFlow parses {"flow_data": {SYM: [trade...]}} or a bare map
func ParseFlow(data []byte) (map[string][]contracts.FlowTrade, int, error) {
	entries, err := objectEntries(data, "flow_data")
	if err != nil {
		return nil, 0, err
	}

	out := make(map[string][]contracts.FlowTrade, len(entries))
	skipped := 0
	for sym, raw := range entries {
		key := normalizeSymbol(sym)
		var items []json.RawMessage
		if key == "" || json.Unmarshal(raw, &items) != nil {
			skipped++
			continue
		}

		trades := make([]contracts.FlowTrade, 0, len(items))
		for _, item := range items {
			var dto flowTradeDTO
			if !isObject(item) || json.Unmarshal(item, &dto) != nil {
				skipped++
				continue
			}
			trade := contracts.FlowTrade{
				PutCall:      normalizePutCall(string(dto.PutCall)),
				Premium:      float64(dto.Premium),
				DTE:          contracts.UnknownDTE,
				Volume:       float64(dto.Volume),
				OpenInterest: float64(dto.OpenInterest),
			}
			if dto.DTE != nil {
				trade.DTE = int(*dto.DTE)
			}
			trades = append(trades, trade)
		}
		out[key] = trades
	}
	return out, skipped, nil
}

func normalizePutCall(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "C", "CALL", "CALLS":
		return "C"
	case "P", "PUT", "PUTS":
		return "P"
	default:
		return ""
	}
}

// ParseOpenInterest parses {"data": {SYM: rec}} or a bare map
func ParseOpenInterest(data []byte) (map[string]contracts.OIRecord, int, error) {
	entries, err := objectEntries(data, "data")
	if err != nil {
		return nil, 0, err
	}
	out, skipped := decodeRecords(entries, func(d oiDTO) contracts.OIRecord {
		rec := contracts.OIRecord{
			CallOIChange:             float64(d.CallOIChange),
			PutOIChange:              float64(d.PutOIChange),
			CallOIPctChange:          float64(d.CallOIPctChange),
			PutOIPctChange:           float64(d.PutOIPctChange),
			MaxDaysOIIncreasing:      int(d.MaxDaysInc),
			Contracts3PlusDaysOIIncr: int(d.Contracts3Plus),
			VolGtOICount:             int(d.VolGtOICount),
		}
		for _, c := range d.TopContracts {
			rec.TopContracts = append(rec.TopContracts, contracts.TopContract{
				PrevDirection: contracts.ParseDirection(string(c.PrevDirection)),
			})
		}
		return rec
	})
	return out, skipped, nil
}

// ParseGamma parses {"data": {SYM: rec}} or a bare map
func ParseGamma(data []byte) (map[string]contracts.GammaRecord, int, error) {
	entries, err := objectEntries(data, "data")
	if err != nil {
		return nil, 0, err
	}
	out, skipped := decodeRecords(entries, func(d gammaDTO) contracts.GammaRecord {
		return contracts.GammaRecord{
			NetGEX:        float64(d.NetGEX),
			FlipToday:     bool(d.FlipToday),
			FlipDirection: string(d.FlipDirection),
		}
	})
	return out, skipped, nil
}

// ParseIVTerm parses {"data": {SYM: rec}} or a bare map
func ParseIVTerm(data []byte) (map[string]contracts.IVTermRecord, int, error) {
	entries, err := objectEntries(data, "data")
	if err != nil {
		return nil, 0, err
	}
	out, skipped := decodeRecords(entries, func(d ivTermDTO) contracts.IVTermRecord {
		return contracts.IVTermRecord{
			Inverted:             bool(d.Inverted),
			TermSpread:           float64(d.TermSpread),
			ImpliedMovePct:       float64(d.ImpliedMovePct),
			WeeklyImpliedMovePct: float64(d.WeeklyImpliedMovePct),
			FrontIV:              float64(d.FrontIV),
			BackIV:               float64(d.BackIV),
		}
	})
	return out, skipped, nil
}

// ParseSkew parses {"data": {SYM: rec}} or a bare map
func ParseSkew(data []byte) (map[string]contracts.SkewRecord, int, error) {
	entries, err := objectEntries(data, "data")
	if err != nil {
		return nil, 0, err
	}
	out, skipped := decodeRecords(entries, func(d skewDTO) contracts.SkewRecord {
		return contracts.SkewRecord{
			ZScore:       float64(d.ZScore),
			Trend:        string(d.Trend),
			BearishHedge: bool(d.BearishHedge),
		}
	})
	return out, skipped, nil
}

// ParseDarkPool parses a bare {SYM: {prints: [...]}} map
func ParseDarkPool(data []byte) (map[string]contracts.DarkPoolRecord, int, error) {
	entries, err := objectEntries(data, "")
	if err != nil {
		return nil, 0, err
	}
	out, skipped := decodeRecords(entries, func(d darkPoolDTO) contracts.DarkPoolRecord {
		rec := contracts.DarkPoolRecord{
			TotalValue:    float64(d.TotalValue),
			AboveAskCount: int(d.AboveAskCount),
			BelowBidCount: int(d.BelowBidCount),
		}
		for _, p := range d.Prints {
			rec.Prints = append(rec.Prints, contracts.DarkPoolPrint{Value: float64(p.Value)})
		}
		return rec
	})
	return out, skipped, nil
}

// ParseInstitutional parses {"ticker_signals": {SYM: rec}} or a bare map
func ParseInstitutional(data []byte) (map[string]contracts.InstitutionalRecord, int, error) {
	entries, err := objectEntries(data, "ticker_signals")
	if err != nil {
		return nil, 0, err
	}
	out, skipped := decodeRecords(entries, func(d institutionalDTO) contracts.InstitutionalRecord {
		rec := contracts.InstitutionalRecord{
			Conviction: strings.ToUpper(strings.TrimSpace(string(d.Conviction))),
		}
		for _, s := range d.Signals {
			rec.Signals = append(rec.Signals, string(s))
		}

		// signal_count may be an int, a string, or missing → len(signals)
		rec.SignalCount = len(rec.Signals)
		if v, err := parseNumber(d.SignalCount); err == nil && len(d.SignalCount) > 0 && string(d.SignalCount) != "null" {
			rec.SignalCount = int(v)
		}
		if v, err := parseNumber(d.ImpliedMove); err == nil {
			rec.ImpliedMove = v
		}
		return rec
	})
	return out, skipped, nil
}

// ParseInsider parses a bare {SYM: rec} map
func ParseInsider(data []byte) (map[string]contracts.InsiderRecord, int, error) {
	entries, err := objectEntries(data, "")
	if err != nil {
		return nil, 0, err
	}
	out, skipped := decodeRecords(entries, func(d insiderDTO) contracts.InsiderRecord {
		return contracts.InsiderRecord{
			NetValue:      float64(d.NetValue),
			TotalBuys:     int(d.TotalBuys),
			TotalBuyValue: float64(d.TotalBuyValue),
			TotalSells:    int(d.TotalSells),
		}
	})
	return out, skipped, nil
}

// ParseRecommendations parses {"recommendations": [{symbol, ...}]}
func ParseRecommendations(data []byte) (map[string]contracts.RecommendationRecord, int, error) {
	list, err := listEntries(data, "recommendations")
	if err != nil {
		return nil, 0, err
	}

	out := make(map[string]contracts.RecommendationRecord, len(list))
	skipped := 0
	for _, raw := range list {
		var d recommendationDTO
		if !isObject(raw) || json.Unmarshal(raw, &d) != nil {
			skipped++
			continue
		}
		sym := normalizeSymbol(string(d.Symbol))
		if sym == "" {
			skipped++
			continue
		}
		out[sym] = contracts.RecommendationRecord{
			CompositeScore: float64(d.CompositeScore),
			EngineCount:    int(d.EngineCount),
			CatalystScore:  float64(d.CatalystScore),
		}
	}
	return out, skipped, nil
}

// ParseLegislative parses {"trades": [...]}; the first (most recent) trade per symbol wins
func ParseLegislative(data []byte) (map[string]contracts.LegislativeRecord, int, error) {
	list, err := listEntries(data, "trades")
	if err != nil {
		return nil, 0, err
	}

	out := make(map[string]contracts.LegislativeRecord, len(list))
	skipped := 0
	for _, raw := range list {
		var d legislativeDTO
		if !isObject(raw) || json.Unmarshal(raw, &d) != nil {
			skipped++
			continue
		}
		sym := normalizeSymbol(string(d.Symbol))
		if sym == "" {
			skipped++
			continue
		}
		if _, seen := out[sym]; seen {
			continue
		}
		out[sym] = contracts.LegislativeRecord{
			Action:     string(d.Action),
			Politician: string(d.Politician),
		}
	}
	return out, skipped, nil
}
