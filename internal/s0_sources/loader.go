package s0_sources

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
)

// Files names the cache file of every source inside the data directory
type Files struct {
	Flow           string
	OpenInterest   string
	Gamma          string
	IVTerm         string
	Skew           string
	DarkPool       string
	Institutional  string
	Insider        string
	Recommendation string
	Legislative    string
}

// DefaultFiles returns the cache names written by the upstream collectors
func DefaultFiles() Files {
	return Files{
		Flow:           "uw_flow_cache.json",
		OpenInterest:   "uw_oi_change_cache.json",
		Gamma:          "uw_gex_cache.json",
		IVTerm:         "uw_iv_term_cache.json",
		Skew:           "uw_skew_cache.json",
		DarkPool:       "darkpool_cache.json",
		Institutional:  "institutional_radar_daily.json",
		Insider:        "finviz_insider_cache.json",
		Recommendation: "final_recommendations.json",
		Legislative:    "congress_trades_cache.json",
	}
}

// Name returns the file name configured for src
func (f Files) Name(src contracts.Source) string {
	switch src {
	case contracts.SourceFlow:
		return f.Flow
	case contracts.SourceOpenInterest:
		return f.OpenInterest
	case contracts.SourceGamma:
		return f.Gamma
	case contracts.SourceIVTerm:
		return f.IVTerm
	case contracts.SourceSkew:
		return f.Skew
	case contracts.SourceDarkPool:
		return f.DarkPool
	case contracts.SourceInstitutional:
		return f.Institutional
	case contracts.SourceInsider:
		return f.Insider
	case contracts.SourceRecommendation:
		return f.Recommendation
	case contracts.SourceLegislative:
		return f.Legislative
	}
	return ""
}

// Loader reads the pre-materialized source caches
// ⭐ SSOT: S0 소스 로딩은 이 패키지에서만 (외부 API 호출 없음)
type Loader struct {
	dataDir string
	files   Files
	logger  *logger.Logger
}

// New creates a new Loader reading from dataDir
func New(dataDir string, files Files, log *logger.Logger) *Loader {
	return &Loader{
		dataDir: dataDir,
		files:   files,
		logger:  log.WithField("module", "s0_sources"),
	}
}

// Load reads every source. A missing or malformed source yields an empty
// mapping and never fails the scan; only context cancellation is returned.
func (l *Loader) Load(ctx context.Context) (*contracts.SourceSet, error) {
	set := contracts.NewSourceSet()

	for _, src := range contracts.AllSources() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load sources: %w", err)
		}

		n, skipped, err := l.loadSource(set, src)
		log := l.logger.WithFields(map[string]interface{}{
			"source": src.String(),
			"file":   l.files.Name(src),
		})

		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Debug("Source cache absent")
		case err != nil:
			set.Errors[src] = err.Error()
			log.WithError(err).Warn("Source cache unusable, treating as neutral")
		default:
			set.Loaded[src] = n > 0
			if skipped > 0 {
				log.WithField("skipped", skipped).Warn("Skipped malformed entries")
			}
			log.WithField("instruments", n).Debug("Source loaded")
		}
	}

	report := Summarize(set)
	l.logger.WithFields(map[string]interface{}{
		"loaded":  report.Loaded,
		"failed":  report.Failed,
		"missing": report.Missing,
		"sources": set.LoadedNames(),
	}).Info("Sources loaded")

	return set, nil
}

// loadSource reads and parses one source behind a recover guard
func (l *Loader) loadSource(set *contracts.SourceSet, src contracts.Source) (n, skipped int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while loading %s: %v", src, r)
		}
	}()

	data, err := os.ReadFile(filepath.Join(l.dataDir, l.files.Name(src)))
	if err != nil {
		return 0, 0, err
	}
	if len(data) == 0 {
		return 0, 0, nil
	}

	return assign(set, src, data)
}

// assign parses data for src and stores it on set
func assign(set *contracts.SourceSet, src contracts.Source, data []byte) (int, int, error) {
	var (
		n, skipped int
		err        error
	)

	switch src {
	case contracts.SourceFlow:
		var m map[string][]contracts.FlowTrade
		if m, skipped, err = ParseFlow(data); err == nil {
			set.Flow, n = m, len(m)
		}
	case contracts.SourceOpenInterest:
		var m map[string]contracts.OIRecord
		if m, skipped, err = ParseOpenInterest(data); err == nil {
			set.OpenInterest, n = m, len(m)
		}
	case contracts.SourceGamma:
		var m map[string]contracts.GammaRecord
		if m, skipped, err = ParseGamma(data); err == nil {
			set.Gamma, n = m, len(m)
		}
	case contracts.SourceIVTerm:
		var m map[string]contracts.IVTermRecord
		if m, skipped, err = ParseIVTerm(data); err == nil {
			set.IVTerm, n = m, len(m)
		}
	case contracts.SourceSkew:
		var m map[string]contracts.SkewRecord
		if m, skipped, err = ParseSkew(data); err == nil {
			set.Skew, n = m, len(m)
		}
	case contracts.SourceDarkPool:
		var m map[string]contracts.DarkPoolRecord
		if m, skipped, err = ParseDarkPool(data); err == nil {
			set.DarkPool, n = m, len(m)
		}
	case contracts.SourceInstitutional:
		var m map[string]contracts.InstitutionalRecord
		if m, skipped, err = ParseInstitutional(data); err == nil {
			set.Institutional, n = m, len(m)
		}
	case contracts.SourceInsider:
		var m map[string]contracts.InsiderRecord
		if m, skipped, err = ParseInsider(data); err == nil {
			set.Insider, n = m, len(m)
		}
	case contracts.SourceRecommendation:
		var m map[string]contracts.RecommendationRecord
		if m, skipped, err = ParseRecommendations(data); err == nil {
			set.Recommendation, n = m, len(m)
		}
	case contracts.SourceLegislative:
		var m map[string]contracts.LegislativeRecord
		if m, skipped, err = ParseLegislative(data); err == nil {
			set.Legislative, n = m, len(m)
		}
	default:
		err = fmt.Errorf("unknown source %d", src)
	}

	if err != nil {
		return 0, 0, err
	}
	return n, skipped, nil
}
