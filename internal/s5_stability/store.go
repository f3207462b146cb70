package s5_stability

import (
	"context"
	"fmt"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/pkg/config"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
	"github.com/achavala/Meta-Engine-sub001/pkg/redis"
)

// Store is a snapshot store that can also list its audit trail
type Store interface {
	contracts.SnapshotStore
	History(ctx context.Context) ([]contracts.AuditEntry, error)
}

// NewStore selects the snapshot backend configured in cfg
func NewStore(cfg *config.Config, rc *redis.Client, log *logger.Logger) (Store, error) {
	switch cfg.Snapshot.Backend {
	case "file":
		return NewFileStore(cfg.SnapshotPath(), cfg.HistoryPath(), log), nil
	case "redis":
		if rc == nil {
			return nil, fmt.Errorf("redis snapshot backend needs a redis client")
		}
		return NewRedisStore(redis.NewCache(rc, rc.Prefix()), log), nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Snapshot.Backend)
	}
}
