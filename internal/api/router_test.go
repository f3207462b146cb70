package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achavala/Meta-Engine-sub001/internal/api/handlers"
	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/s5_stability"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
	"github.com/achavala/Meta-Engine-sub001/pkg/metrics"
)

func newTestRouter(t *testing.T) (http.Handler, *s5_stability.FileStore, *metrics.Recorder) {
	t.Helper()
	dir := t.TempDir()
	log := logger.NewNop()
	store := s5_stability.NewFileStore(filepath.Join(dir, "last.json"), filepath.Join(dir, "history.jsonl"), log)
	recorder := metrics.New()
	return NewRouter(handlers.NewSnapshotHandler(store, log), recorder.Handler(), nil, log), store, recorder
}

func seed(t *testing.T, store *s5_stability.FileStore, ids ...string) {
	t.Helper()
	ts := time.Date(2026, 1, 16, 14, 35, 0, 0, time.UTC)
	bullish := []contracts.ConvictionResult{
		{Symbol: "NVDA", Direction: contracts.Bullish, Conviction: 0.61},
		{Symbol: "AMD", Direction: contracts.Bullish, Conviction: 0.44},
		{Symbol: "ACME", Direction: contracts.Bullish, Conviction: 0.30},
	}
	bearish := []contracts.ConvictionResult{
		{Symbol: "TSLA", Direction: contracts.Bearish, Conviction: 0.52},
	}
	for i, id := range ids {
		at := ts.Add(time.Duration(i) * time.Hour)
		require.NoError(t, store.Save(context.Background(), s5_stability.NewSnapshot(id, at, bullish, bearish, "fp", nil, 20)))
		require.NoError(t, store.AppendAudit(context.Background(), s5_stability.NewAuditEntry(id, at, bullish, bearish, "fp", 5)))
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := get(t, router, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _, recorder := newTestRouter(t)
	recorder.RecordScan("success", 1.5)

	rec := get(t, router, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `smartmoney_scans_total{status="success"} 1`)
}

func TestSnapshot_NotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)

	for _, path := range []string{"/api/snapshot", "/api/snapshot/bullish"} {
		rec := get(t, router, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "no scan has been persisted yet")
	}
}

func TestSnapshot(t *testing.T) {
	router, store, _ := newTestRouter(t)
	seed(t, store, "scan-1")

	rec := get(t, router, "/api/snapshot")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap contracts.ScanSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "scan-1", snap.ScanID)
	assert.Len(t, snap.BullishCandidates, 3)
	assert.Len(t, snap.BearishCandidates, 1)
}

func TestSnapshotCandidates(t *testing.T) {
	router, store, _ := newTestRouter(t)
	seed(t, store, "scan-1")

	tests := []struct {
		name      string
		path      string
		wantCode  int
		wantCount int
		wantFirst string
	}{
		{"bullish", "/api/snapshot/bullish", http.StatusOK, 3, "NVDA"},
		{"bullish limited", "/api/snapshot/BULLISH?limit=2", http.StatusOK, 2, "NVDA"},
		{"bearish", "/api/snapshot/bearish", http.StatusOK, 1, "TSLA"},
		{"invalid limit ignored", "/api/snapshot/bearish?limit=abc", http.StatusOK, 1, "TSLA"},
		{"neutral rejected", "/api/snapshot/neutral", http.StatusBadRequest, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, router, tt.path)
			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode != http.StatusOK {
				return
			}

			var resp handlers.CandidatesResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "scan-1", resp.ScanID)
			assert.Equal(t, tt.wantCount, resp.Count)
			require.Len(t, resp.Candidates, tt.wantCount)
			assert.Equal(t, tt.wantFirst, resp.Candidates[0].Symbol)
		})
	}
}

func TestHistory(t *testing.T) {
	router, store, _ := newTestRouter(t)

	rec := get(t, router, "/api/history")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":0`)

	seed(t, store, "morning", "afternoon", "close")

	rec = get(t, router, "/api/history?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "close", resp.Entries[0].ScanID)
	assert.Equal(t, "afternoon", resp.Entries[1].ScanID)
	assert.Equal(t, 3, resp.Entries[0].NBullish)
	assert.Equal(t, []string{"NVDA", "AMD", "ACME"}, resp.Entries[0].Top5Bull)
}

func TestMethodNotAllowed(t *testing.T) {
	router, _, _ := newTestRouter(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/snapshot"},
		{http.MethodDelete, "/api/snapshot/bullish"},
		{http.MethodPut, "/api/history"},
		{http.MethodPost, "/health"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}")))
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(logger.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := get(t, h, "/api/snapshot")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}
