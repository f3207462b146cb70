package s1_universe

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
)

func TestBuilder_Build(t *testing.T) {
	set := contracts.NewSourceSet()
	set.Flow["NVDA"] = []contracts.FlowTrade{{PutCall: "C", Premium: 1000}}
	set.OpenInterest["AMD"] = contracts.OIRecord{CallOIChange: 5000}
	set.Legislative["SPY"] = contracts.LegislativeRecord{Action: "Purchase"}

	list := &List{
		Symbols: []string{"aapl", "NVDA", " tsla "},
		Exclude: []string{"spy"},
	}

	universe, err := NewBuilder(list, logger.NewNop()).Build(context.Background(), set)
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL", "AMD", "NVDA", "TSLA"}, universe.Symbols)
	assert.Equal(t, 3, universe.Configured)
	assert.Equal(t, 1, universe.FromSource, "NVDA is counted once, as configured")
	assert.Equal(t, "excluded by universe file", universe.Excluded["SPY"])
	assert.True(t, universe.Contains("AMD"))
	assert.False(t, universe.Contains("SPY"))
}

func TestBuilder_Build_Empty(t *testing.T) {
	universe, err := NewBuilder(nil, logger.NewNop()).Build(context.Background(), contracts.NewSourceSet())
	require.NoError(t, err)
	assert.Empty(t, universe.Symbols)
	assert.Zero(t, universe.Configured)
}

func TestBuilder_Build_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBuilder(nil, logger.NewNop()).Build(ctx, contracts.NewSourceSet())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckExclusion(t *testing.T) {
	excluded := map[string]struct{}{"QQQ": {}}

	tests := []struct {
		name string
		sym  string
		want string
	}{
		{name: "valid", sym: "NVDA", want: ""},
		{name: "class share", sym: "BRK.B", want: ""},
		{name: "dash", sym: "BF-B", want: ""},
		{name: "excluded", sym: "QQQ", want: "excluded by universe file"},
		{name: "empty", sym: "", want: "empty symbol"},
		{name: "digit first", sym: "1ABC", want: "invalid symbol"},
		{name: "too long", sym: "ABCDEFGHIJKL", want: "invalid symbol"},
		{name: "space", sym: "AB CD", want: "invalid symbol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkExclusion(tt.sym, excluded))
		})
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		symbols []string
		exclude []string
		wantErr bool
	}{
		{name: "sequence", data: "- NVDA\n- AAPL\n", symbols: []string{"NVDA", "AAPL"}},
		{name: "mapping", data: "symbols: [NVDA]\nexclude: [SPY]\n", symbols: []string{"NVDA"}, exclude: []string{"SPY"}},
		{name: "empty", data: ""},
		{name: "scalar", data: "NVDA", wantErr: true},
		{name: "broken", data: "symbols: [NVDA", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := ParseList([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.symbols, list.Symbols)
			assert.Equal(t, tt.exclude, list.Exclude)
		})
	}
}

func TestLoadList(t *testing.T) {
	list, err := LoadList("")
	require.NoError(t, err)
	assert.Empty(t, list.Symbols)

	path := filepath.Join(t.TempDir(), "universe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("symbols:\n  - NVDA\n  - AMD\n"), 0o644))

	list, err = LoadList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"NVDA", "AMD"}, list.Symbols)

	_, err = LoadList(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
