package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achavala/Meta-Engine-sub001/internal/api/handlers"
	"github.com/achavala/Meta-Engine-sub001/internal/brain"
	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/internal/s5_stability"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
)

func sampleResult() *brain.ScanResult {
	bullish := make([]contracts.ConvictionResult, 0, 7)
	for _, sym := range []string{"NVDA", "AMD", "ACME", "MSFT", "META", "AAPL", "ORCL"} {
		bullish = append(bullish, contracts.ConvictionResult{Symbol: sym, Direction: contracts.Bullish})
	}
	return &brain.ScanResult{
		ScanID:    "scan-ws",
		Timestamp: time.Date(2026, 1, 16, 14, 35, 0, 0, time.UTC),
		Bullish:   bullish,
		Bearish:   []contracts.ConvictionResult{{Symbol: "TSLA", Direction: contracts.Bearish}},
		Flips:     2,
		Persisted: true,
	}
}

func TestNewScanEvent(t *testing.T) {
	ev := NewScanEvent(sampleResult())

	assert.Equal(t, "scan-ws", ev.ScanID)
	assert.Equal(t, 7, ev.NBullish)
	assert.Equal(t, 1, ev.NBearish)
	assert.Equal(t, []string{"NVDA", "AMD", "ACME", "MSFT", "META"}, ev.TopBull)
	assert.Equal(t, []string{"TSLA"}, ev.TopBear)
	assert.Equal(t, 2, ev.Flips)
	assert.True(t, ev.Persisted)
}

func TestHub_Stream(t *testing.T) {
	log := logger.NewNop()
	dir := t.TempDir()
	store := s5_stability.NewFileStore(filepath.Join(dir, "last.json"), filepath.Join(dir, "history.jsonl"), log)
	hub := NewHub(log)

	srv := httptest.NewServer(NewRouter(handlers.NewSnapshotHandler(store, log), nil, hub, log))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/scans"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(sampleResult())
	hub.Publish(nil)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev ScanEvent
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, "scan-ws", ev.ScanID)
	assert.Equal(t, 7, ev.NBullish)

	hub.Close()
	assert.Zero(t, hub.ClientCount())

	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), err.Error())
}

func TestHub_ClientDisconnect(t *testing.T) {
	log := logger.NewNop()
	hub := NewHub(log)
	srv := httptest.NewServer(NewRouter(handlers.NewSnapshotHandler(nil, log), nil, hub, log))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/scans"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_RejectsPlainHTTP(t *testing.T) {
	hub := NewHub(logger.NewNop())

	rec := get(t, http.HandlerFunc(hub.ServeWS), "/ws/scans")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, hub.ClientCount())
}
