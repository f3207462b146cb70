package contracts

import "context"

// SourceLoader reads every source snapshot for one scan (S0)
// ⭐ SSOT: S0 소스 로더 인터페이스
type SourceLoader interface {
	Load(ctx context.Context) (*SourceSet, error)
}

// UniverseBuilder enumerates the instruments to scan (S1)
// ⭐ SSOT: S1 유니버스 생성 인터페이스
type UniverseBuilder interface {
	Build(ctx context.Context, sources *SourceSet) (*Universe, error)
}

// SnapshotStore persists the previous scan and the audit trail (S5)
//
// Implementations take no lock: callers must guarantee that at most one
// scan runs at a time (the scheduler enforces this).
type SnapshotStore interface {
	// Previous returns the last saved snapshot or ErrNoSnapshot
	Previous(ctx context.Context) (*ScanSnapshot, error)
	// Save overwrites the last snapshot
	Save(ctx context.Context, snap *ScanSnapshot) error
	// AppendAudit appends one entry to the scan history
	AppendAudit(ctx context.Context, entry AuditEntry) error
}
