package s2_signals

import (
	"fmt"
	"math"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/scanconfig"
)

// InsiderCalculator scores net insider buying, mirrored for net selling
type InsiderCalculator struct {
	cfg scanconfig.Insider
}

// NewInsiderCalculator creates a new insider calculator
func NewInsiderCalculator(cfg scanconfig.Insider) *InsiderCalculator {
	return &InsiderCalculator{cfg: cfg}
}

// Calculate scores an insider summary
func (c *InsiderCalculator) Calculate(rec contracts.InsiderRecord) contracts.ScoreContribution {
	result := contracts.NeutralContribution()
	net := rec.NetValue

	switch {
	case net > c.cfg.LargeNet:
		result.Score = c.cfg.LargeScore
		result.Labels = []string{"insider_net_buy_$" + money(net)}
	case net > c.cfg.Net:
		result.Score = c.cfg.NetScore
		result.Labels = []string{"insider_buying_$" + money(net)}
	case net > 0 && rec.TotalBuys >= c.cfg.ClusterMinTrades:
		result.Score = c.cfg.ClusterScore
		result.Labels = []string{fmt.Sprintf("insider_cluster_buy_%dx", rec.TotalBuys)}
	case net < -c.cfg.LargeNet:
		result.Score = c.cfg.LargeScore
		result.Labels = []string{"insider_net_sell_$" + money(-net)}
	case net < -c.cfg.Net:
		result.Score = c.cfg.NetScore
		result.Labels = []string{"insider_selling_$" + money(-net)}
	case net < 0 && rec.TotalSells >= c.cfg.ClusterMinTrades:
		result.Score = c.cfg.ClusterScore
		result.Labels = []string{fmt.Sprintf("insider_cluster_sell_%dx", rec.TotalSells)}
	}

	result.Score = math.Min(result.Score, c.cfg.MaxScore)
	if result.Score > c.cfg.LeanMinScore {
		result.Lean = contracts.Bullish
		if net < 0 {
			result.Lean = contracts.Bearish
		}
	}
	return result
}
