package s5_stability

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
)

// NewSnapshot builds the persisted top-N of one scan.
// bullish and bearish must already be ranked.
func NewSnapshot(scanID string, ts time.Time, bullish, bearish []contracts.ConvictionResult, fingerprint string, sourcesLoaded []string, topN int) *contracts.ScanSnapshot {
	return &contracts.ScanSnapshot{
		Version:           contracts.SnapshotVersion,
		ScanID:            scanID,
		Timestamp:         ts,
		BullishCandidates: head(bullish, topN),
		BearishCandidates: head(bearish, topN),
		DataFingerprint:   fingerprint,
		SourcesLoaded:     sourcesLoaded,
	}
}

// NewAuditEntry summarizes one scan for the history log
func NewAuditEntry(scanID string, ts time.Time, bullish, bearish []contracts.ConvictionResult, fingerprint string, topN int) contracts.AuditEntry {
	return contracts.AuditEntry{
		Timestamp:   ts,
		ScanID:      scanID,
		Fingerprint: fingerprint,
		NBullish:    len(bullish),
		NBearish:    len(bearish),
		Top5Bull:    symbols(head(bullish, topN)),
		Top5Bear:    symbols(head(bearish, topN)),
	}
}

// Fingerprint hashes the sorted instrument keys of every source so two
// scans over the same inputs can be told apart from scans over new data
func Fingerprint(set *contracts.SourceSet) string {
	h := xxhash.New()
	for _, src := range contracts.AllSources() {
		_, _ = h.WriteString(src.String())
		_, _ = h.WriteString(":")
		for _, k := range set.Keys(src) {
			_, _ = h.WriteString(k)
			_, _ = h.WriteString(",")
		}
		_, _ = h.WriteString("\n")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func head(list []contracts.ConvictionResult, n int) []contracts.ConvictionResult {
	if len(list) > n {
		list = list[:n]
	}
	out := make([]contracts.ConvictionResult, len(list))
	copy(out, list)
	return out
}

func symbols(list []contracts.ConvictionResult) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.Symbol)
	}
	return out
}
