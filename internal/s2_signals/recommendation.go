package s2_signals

import (
	"fmt"
	"math"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
)

// RecommendationCalculator scores the multi-engine recommendation feed (no lean)
type RecommendationCalculator struct {
	cfg scanconfig.Recommendation
}

// NewRecommendationCalculator creates a new recommendation calculator
func NewRecommendationCalculator(cfg scanconfig.Recommendation) *RecommendationCalculator {
	return &RecommendationCalculator{cfg: cfg}
}

// Calculate scores a recommendation summary
func (c *RecommendationCalculator) Calculate(rec contracts.RecommendationRecord) contracts.ScoreContribution {
	result := contracts.NeutralContribution()
	score := 0.0
	var labels []string

	switch {
	case rec.EngineCount >= c.cfg.TripleEngines:
		score += c.cfg.TripleScore
		labels = append(labels, "rec_triple_engine")
	case rec.EngineCount >= c.cfg.DualEngines:
		score += c.cfg.DualScore
		labels = append(labels, "rec_dual_engine")
	}

	if rec.CatalystScore >= c.cfg.CatalystMin {
		score += c.cfg.CatalystScore
		labels = append(labels, fmt.Sprintf("catalyst_score_%.0f%%", rec.CatalystScore*100))
	}

	result.Score = math.Min(score, c.cfg.MaxScore)
	result.Labels = labels
	return result
}
