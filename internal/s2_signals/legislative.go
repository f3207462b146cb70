package s2_signals

import (
	"math"
	"strings"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
)

// LegislativeCalculator scores the most recent disclosed legislator trade
type LegislativeCalculator struct {
	cfg scanconfig.Legislative
}

// NewLegislativeCalculator creates a new legislative calculator
func NewLegislativeCalculator(cfg scanconfig.Legislative) *LegislativeCalculator {
	return &LegislativeCalculator{cfg: cfg}
}

// Calculate scores a legislative trade summary
func (c *LegislativeCalculator) Calculate(rec contracts.LegislativeRecord) contracts.ScoreContribution {
	result := contracts.NeutralContribution()
	action := strings.ToUpper(rec.Action)

	switch {
	case strings.Contains(action, "BUY"), strings.Contains(action, "PURCHASE"):
		politician := strings.TrimSpace(rec.Politician)
		if politician == "" {
			politician = "Unknown"
		}
		result.Score = c.cfg.BuyScore
		result.Labels = []string{"congress_buy_" + truncate(politician, c.cfg.PoliticianChar)}
		result.Lean = contracts.Bullish
	case strings.Contains(action, "SELL"), strings.Contains(action, "SALE"):
		result.Score = c.cfg.SellScore
		result.Labels = []string{"congress_sell"}
		result.Lean = contracts.Bearish
	}

	result.Score = math.Min(result.Score, c.cfg.MaxScore)
	return result
}
