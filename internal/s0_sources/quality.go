package s0_sources

import (
	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
)

// Report summarizes source availability for one scan
// ⭐ SSOT: S0 → S1 소스 품질 정보 전달
type Report struct {
	Loaded  int            `json:"loaded"`
	Failed  []string       `json:"failed,omitempty"`
	Missing []string       `json:"missing,omitempty"`
	Counts  map[string]int `json:"counts"`
}

// Passed reports whether at least one positioning source (flow or open
// interest) is usable; without both the resolver can only reach tiers 4/5
func (r Report) Passed() bool {
	return r.Counts[contracts.SourceFlow.String()] > 0 ||
		r.Counts[contracts.SourceOpenInterest.String()] > 0
}

// Summarize builds a Report from a loaded SourceSet
func Summarize(set *contracts.SourceSet) Report {
	report := Report{Counts: make(map[string]int, contracts.NumSources)}
	for _, src := range contracts.AllSources() {
		n := set.Count(src)
		report.Counts[src.String()] = n

		switch {
		case set.Loaded[src]:
			report.Loaded++
		case set.Errors[src] != "":
			report.Failed = append(report.Failed, src.String())
		default:
			report.Missing = append(report.Missing, src.String())
		}
	}
	return report
}
