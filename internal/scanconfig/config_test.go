package scanconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, Validate(cfg))

	// 보정된 기본값 확인
	assert.Equal(t, 5, cfg.Flow.MinTrades)
	assert.Equal(t, 7, cfg.Flow.ShortDTEDays)
	assert.Equal(t, 0.35, cfg.Flow.MaxScore)
	assert.Equal(t, 0.15, cfg.OpenInterest.MaxScore)
	assert.Equal(t, -3.0, cfg.Skew.HedgeZScore)
	assert.Equal(t, 200000.0, cfg.Resolver.Tier1MinPremium)
	assert.Equal(t, 300000.0, cfg.Resolver.Tier3MinPremium)
	assert.Equal(t, 1.30, cfg.Stability.FlipOverrideRatio)
	assert.Equal(t, 0.22, cfg.Export.MinConviction)
	assert.InDelta(t, 0.40, cfg.Resolver.Tier1BearishShare(), 1e-9)
	assert.InDelta(t, 0.35, cfg.Flow.ShortBearishShare(), 1e-9)
	assert.True(t, cfg.Resolver.SustainedOITierEnabled())
	assert.True(t, cfg.HighBetaSet()["MSTR"])
	assert.False(t, cfg.HighBetaSet()["AAPL"])
}

func TestParse_Overrides(t *testing.T) {
	yamlData := []byte(`
flow:
  min_trades: 8
resolver:
  enable_sustained_oi_tier: false
export:
  min_conviction: 0.30
high_beta: [AAPL]
`)

	cfg, err := Parse(yamlData)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Flow.MinTrades)
	assert.Equal(t, 0.30, cfg.Export.MinConviction)
	assert.False(t, cfg.Resolver.SustainedOITierEnabled())
	assert.Equal(t, []string{"AAPL"}, cfg.HighBeta)

	// 지정하지 않은 필드는 기본값
	assert.Equal(t, 7, cfg.Flow.ShortDTEDays)
	assert.Equal(t, 0.70, cfg.Stability.FlipPenalty)
}

func TestParse_ExplicitZero(t *testing.T) {
	yamlData := []byte(`
export:
  min_conviction: 0
resolver:
  tier1_min_premium: 0
  enable_sustained_oi_tier: false
high_beta: []
`)

	cfg, err := Parse(yamlData)
	require.NoError(t, err)

	assert.Zero(t, cfg.Export.MinConviction)
	assert.Zero(t, cfg.Resolver.Tier1MinPremium)
	assert.False(t, cfg.Resolver.SustainedOITierEnabled())
	assert.Empty(t, cfg.HighBeta)

	// 같은 섹션의 다른 필드는 기본값 유지
	assert.Equal(t, 0.60, cfg.Resolver.Tier1BullishShare)
	assert.Equal(t, 15, cfg.Export.CandidateTopN)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("flow:\n  min_trade: 8\n"))
	assert.Error(t, err, "typo must fail with KnownFields(true)")
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "min conviction out of range",
			mutate:    func(c *Config) { c.Export.MinConviction = 1.5 },
			wantField: "export.min_conviction",
		},
		{
			name:      "flip penalty above one",
			mutate:    func(c *Config) { c.Stability.FlipPenalty = 1.2 },
			wantField: "stability.flip_penalty",
		},
		{
			name:      "long dte not above short dte",
			mutate:    func(c *Config) { c.Flow.LongDTEDays = 5 },
			wantField: "flow.long_dte_days",
		},
		{
			name:      "tier1 share not bullish",
			mutate:    func(c *Config) { c.Resolver.Tier1BullishShare = 0.4 },
			wantField: "resolver.tier1_bullish_share",
		},
		{
			name:      "audit wider than snapshot",
			mutate:    func(c *Config) { c.Stability.AuditTopN = 50 },
			wantField: "stability.audit_top_n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)

			var verr ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
			t.Logf("error: %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aggregator:\n  hedge_factor: 0.5\n"), 0o644))

	cfg, data, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Aggregator.HedgeFactor)
	assert.NotEmpty(t, data)

	_, _, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestHash(t *testing.T) {
	cfg := Default()

	hash, err := Hash(cfg)
	require.NoError(t, err)
	assert.Len(t, hash, 64)

	// 동일 설정 → 동일 해시
	hash2, _ := Hash(Default())
	assert.Equal(t, hash, hash2)

	cfg.Export.MinConviction = 0.25
	hash3, _ := Hash(cfg)
	assert.NotEqual(t, hash, hash3)
}

func TestWarn(t *testing.T) {
	assert.Empty(t, Warn(Default()))

	cfg := Default()
	off := false
	cfg.Resolver.EnableSustainedOITier = &off
	cfg.Resolver.Tier1MinPremium = 100000

	codes := map[string]bool{}
	for _, w := range Warn(cfg) {
		codes[w.Code] = true
	}
	assert.True(t, codes["SUSTAINED_OI_DISABLED"])
	assert.True(t, codes["TIER1_BELOW_FLOW_LEAN"])
}
