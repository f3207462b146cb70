package contracts

import "strings"

// Direction is the categorical call for one instrument
// ⭐ SSOT: 방향 값은 여기서만 정의
type Direction string

const (
	Bullish Direction = "BULLISH"
	Bearish Direction = "BEARISH"
	Neutral Direction = "NEUTRAL"
)

// Opposite returns the mirrored direction (Neutral stays Neutral)
func (d Direction) Opposite() Direction {
	switch d {
	case Bullish:
		return Bearish
	case Bearish:
		return Bullish
	default:
		return Neutral
	}
}

// IsDirectional reports whether d is Bullish or Bearish
func (d Direction) IsDirectional() bool {
	return d == Bullish || d == Bearish
}

// Short returns the four-letter form used in signal labels
func (d Direction) Short() string {
	switch d {
	case Bullish:
		return "BULL"
	case Bearish:
		return "BEAR"
	default:
		return "NEUTRAL"
	}
}

// ParseDirection accepts BULLISH/BEARISH in any case, everything else is Neutral
func ParseDirection(s string) Direction {
	switch Direction(strings.ToUpper(strings.TrimSpace(s))) {
	case Bullish:
		return Bullish
	case Bearish:
		return Bearish
	default:
		return Neutral
	}
}

// Source identifies one of the ten upstream feeds
type Source int

const (
	SourceFlow Source = iota
	SourceOpenInterest
	SourceGamma
	SourceIVTerm
	SourceSkew
	SourceDarkPool
	SourceInstitutional
	SourceInsider
	SourceRecommendation
	SourceLegislative
)

// NumSources is the number of feeds fused per instrument
const NumSources = int(SourceLegislative) + 1

var sourceNames = [NumSources]string{
	"flow",
	"open_interest",
	"gamma",
	"iv_term",
	"skew",
	"dark_pool",
	"institutional",
	"insider",
	"recommendation",
	"legislative",
}

// String returns the stable source name used in logs, metrics and snapshots
func (s Source) String() string {
	if s < 0 || int(s) >= NumSources {
		return "unknown"
	}
	return sourceNames[s]
}

// AllSources lists every source in scoring order
func AllSources() []Source {
	out := make([]Source, NumSources)
	for i := range out {
		out[i] = Source(i)
	}
	return out
}
