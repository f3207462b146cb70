package s5_stability

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
)

// FileStore keeps the last snapshot as a JSON file and the audit trail as
// JSON lines next to it.
//
// FileStore takes no lock. At most one scan may run at a time.
type FileStore struct {
	path        string
	historyPath string
	logger      *logger.Logger
}

// NewFileStore creates a file-backed snapshot store
func NewFileStore(path, historyPath string, log *logger.Logger) *FileStore {
	return &FileStore{
		path:        path,
		historyPath: historyPath,
		logger:      log.WithField("module", "s5_stability"),
	}
}

// Previous reads the last snapshot
func (s *FileStore) Previous(ctx context.Context) (*contracts.ScanSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, contracts.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap contracts.ScanSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}
	return &snap, nil
}

// Save overwrites the last snapshot. The file is written to a temp name
// and renamed so a crash never leaves a half-written snapshot.
func (s *FileStore) Save(ctx context.Context, snap *contracts.ScanSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"path":    s.path,
		"scan_id": snap.ScanID,
		"bullish": len(snap.BullishCandidates),
		"bearish": len(snap.BearishCandidates),
	}).Info("Snapshot saved")

	return nil
}

// AppendAudit appends one JSON line to the scan history
func (s *FileStore) AppendAudit(ctx context.Context, entry contracts.AuditEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode audit entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.historyPath), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	f, err := os.OpenFile(s.historyPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// History reads every audit entry, oldest first. Malformed lines are skipped.
func (s *FileStore) History(ctx context.Context) ([]contracts.AuditEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.historyPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	var out []contracts.AuditEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e contracts.AuditEntry
		if err := json.Unmarshal(line, &e); err != nil {
			s.logger.WithError(err).Warn("Skipping malformed history entry")
			continue
		}
		out = append(out, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return out, nil
}
