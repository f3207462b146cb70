package s1_universe

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
)

// 티커 형식: 대문자로 시작, 최대 10자 (BRK.B, BF-B 허용)
var symbolPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,9}$`)

// Builder constructs the instrument universe for one scan
type Builder struct {
	list   *List
	logger *logger.Logger
}

// NewBuilder creates a new Universe Builder around the configured list.
// The list is read once at process start and never mutated.
func NewBuilder(list *List, log *logger.Logger) *Builder {
	if list == nil {
		list = &List{}
	}
	return &Builder{
		list:   list,
		logger: log.WithField("module", "s1_universe"),
	}
}

// Build returns the configured universe ∪ every symbol found in a loaded source
// ⭐ SSOT: S1 → S2 유니버스 생성
func (b *Builder) Build(ctx context.Context, set *contracts.SourceSet) (*contracts.Universe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	universe := &contracts.Universe{
		Symbols:  make([]string, 0),
		Excluded: make(map[string]string),
	}

	excluded := make(map[string]struct{}, len(b.list.Exclude))
	for _, sym := range b.list.Exclude {
		excluded[normalize(sym)] = struct{}{}
	}

	seen := make(map[string]struct{})
	add := func(raw string) bool {
		sym := normalize(raw)
		if _, dup := seen[sym]; dup {
			return false
		}
		if reason := checkExclusion(sym, excluded); reason != "" {
			universe.Excluded[sym] = reason
			return false
		}
		seen[sym] = struct{}{}
		universe.Symbols = append(universe.Symbols, sym)
		return true
	}

	for _, sym := range b.list.Symbols {
		if add(sym) {
			universe.Configured++
		}
	}
	if set != nil {
		for _, sym := range set.Symbols() {
			if add(sym) {
				universe.FromSource++
			}
		}
	}

	sort.Strings(universe.Symbols)

	b.logger.WithFields(map[string]interface{}{
		"total":       len(universe.Symbols),
		"configured":  universe.Configured,
		"from_source": universe.FromSource,
		"excluded":    len(universe.Excluded),
	}).Info("Universe built")

	return universe, nil
}

// checkExclusion returns the reason a symbol is left out, or "" when it passes
func checkExclusion(sym string, excluded map[string]struct{}) string {
	if sym == "" {
		return "empty symbol"
	}
	if _, ok := excluded[sym]; ok {
		return "excluded by universe file"
	}
	if !symbolPattern.MatchString(sym) {
		return "invalid symbol"
	}
	return ""
}

func normalize(sym string) string {
	return strings.ToUpper(strings.TrimSpace(sym))
}
