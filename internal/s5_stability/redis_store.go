package s5_stability

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
	"github.com/achavala/Meta-Engine-sub001/pkg/redis"
)

// historyMax bounds the redis audit list
const historyMax = 1000

// RedisStore keeps the last snapshot under <prefix>:snapshot:last and the
// audit trail in the <prefix>:snapshot:history list. A disabled cache
// behaves as "no previous snapshot" and saves are no-ops.
//
// RedisStore takes no lock. At most one scan may run at a time.
type RedisStore struct {
	cache  *redis.Cache
	logger *logger.Logger
}

// NewRedisStore creates a redis-backed snapshot store
func NewRedisStore(cache *redis.Cache, log *logger.Logger) *RedisStore {
	return &RedisStore{
		cache:  cache,
		logger: log.WithField("module", "s5_stability"),
	}
}

// Previous reads the last snapshot
func (s *RedisStore) Previous(ctx context.Context) (*contracts.ScanSnapshot, error) {
	var snap contracts.ScanSnapshot
	found, err := s.cache.Get(ctx, redis.LastScanKey(), &snap)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if !found {
		return nil, contracts.ErrNoSnapshot
	}
	return &snap, nil
}

// Save overwrites the last snapshot and keeps a per-scan copy for a week
func (s *RedisStore) Save(ctx context.Context, snap *contracts.ScanSnapshot) error {
	if err := s.cache.Set(ctx, redis.LastScanKey(), snap, redis.TTLNone); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if snap.ScanID != "" {
		if err := s.cache.Set(ctx, redis.ScanKey(snap.ScanID), snap, redis.TTLWeek); err != nil {
			return fmt.Errorf("save scan copy: %w", err)
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"key":     s.cache.Key(redis.LastScanKey()),
		"scan_id": snap.ScanID,
	}).Info("Snapshot saved")

	return nil
}

// AppendAudit pushes one entry onto the history list
func (s *RedisStore) AppendAudit(ctx context.Context, entry contracts.AuditEntry) error {
	if err := s.cache.Append(ctx, redis.ScanHistoryKey(), entry, historyMax); err != nil {
		return fmt.Errorf("append audit: %w", err)
	}
	return nil
}

// History reads every audit entry, oldest first. Malformed entries are skipped.
func (s *RedisStore) History(ctx context.Context) ([]contracts.AuditEntry, error) {
	raw, err := s.cache.Range(ctx, redis.ScanHistoryKey(), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	out := make([]contracts.AuditEntry, 0, len(raw))
	for _, b := range raw {
		var e contracts.AuditEntry
		if err := json.Unmarshal(b, &e); err != nil {
			s.logger.WithError(err).Warn("Skipping malformed history entry")
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
