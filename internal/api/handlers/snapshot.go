package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/s5_stability"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
)

// SnapshotHandler serves the last persisted scan and its audit trail
// ⭐ SSOT: 스냅샷 조회 API 핸들러는 이 구조체에서만
type SnapshotHandler struct {
	store  s5_stability.Store
	logger *logger.Logger
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(store s5_stability.Store, log *logger.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		store:  store,
		logger: log,
	}
}

// CandidatesResponse is one side of the last snapshot
type CandidatesResponse struct {
	ScanID     string                       `json:"scan_id"`
	Direction  contracts.Direction          `json:"direction"`
	Count      int                          `json:"count"`
	Candidates []contracts.ConvictionResult `json:"candidates"`
}

// HistoryResponse lists audit entries, newest first
type HistoryResponse struct {
	Count   int                    `json:"count"`
	Entries []contracts.AuditEntry `json:"entries"`
}

// GetSnapshot returns the last persisted snapshot
// GET /api/snapshot
func (h *SnapshotHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.previous(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// GetCandidates returns one side of the last snapshot
// GET /api/snapshot/{direction}?limit=10
func (h *SnapshotHandler) GetCandidates(w http.ResponseWriter, r *http.Request) {
	dir := contracts.ParseDirection(mux.Vars(r)["direction"])
	if !dir.IsDirectional() {
		respondError(w, http.StatusBadRequest, "direction must be bullish or bearish")
		return
	}

	snap, ok := h.previous(w, r)
	if !ok {
		return
	}

	list := snap.BullishCandidates
	if dir == contracts.Bearish {
		list = snap.BearishCandidates
	}
	if limit := parseLimit(r); limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	if list == nil {
		list = []contracts.ConvictionResult{}
	}

	respondJSON(w, http.StatusOK, CandidatesResponse{
		ScanID:     snap.ScanID,
		Direction:  dir,
		Count:      len(list),
		Candidates: list,
	})
}

// GetHistory returns the audit trail, newest first
// GET /api/history?limit=20
func (h *SnapshotHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.History(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to read scan history")
		respondError(w, http.StatusInternalServerError, "failed to read scan history")
		return
	}

	out := make([]contracts.AuditEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i])
	}
	if limit := parseLimit(r); limit > 0 && limit < len(out) {
		out = out[:limit]
	}

	respondJSON(w, http.StatusOK, HistoryResponse{
		Count:   len(out),
		Entries: out,
	})
}

// previous loads the last snapshot and writes the error response when absent
func (h *SnapshotHandler) previous(w http.ResponseWriter, r *http.Request) (*contracts.ScanSnapshot, bool) {
	snap, err := h.store.Previous(r.Context())
	switch {
	case errors.Is(err, contracts.ErrNoSnapshot):
		respondError(w, http.StatusNotFound, "no scan has been persisted yet")
		return nil, false
	case err != nil:
		h.logger.WithError(err).Error("Failed to read snapshot")
		respondError(w, http.StatusInternalServerError, "failed to read snapshot")
		return nil, false
	}
	return snap, true
}

// parseLimit returns the limit query parameter, 0 when absent or invalid
func parseLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
