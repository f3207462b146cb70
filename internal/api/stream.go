package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/achavala/Meta-Engine-sub001/internal/brain"
	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
)

// Stream timing
const (
	PingInterval = 30 * time.Second
	PongWait     = 60 * time.Second
	WriteWait    = 10 * time.Second

	// Per-client queue; a client this far behind is dropped
	sendBuffer = 8
	eventTopN  = 5
)

// ScanEvent is the summary pushed to stream clients after each scan
type ScanEvent struct {
	ScanID    string    `json:"scan_id"`
	Timestamp time.Time `json:"timestamp"`
	NBullish  int       `json:"n_bullish"`
	NBearish  int       `json:"n_bearish"`
	TopBull   []string  `json:"top_bull"`
	TopBear   []string  `json:"top_bear"`
	Flips     int       `json:"flips"`
	Persisted bool      `json:"persisted"`
	Warnings  []string  `json:"warnings,omitempty"`
}

// NewScanEvent summarizes a scan result
func NewScanEvent(r *brain.ScanResult) ScanEvent {
	return ScanEvent{
		ScanID:    r.ScanID,
		Timestamp: r.Timestamp,
		NBullish:  len(r.Bullish),
		NBearish:  len(r.Bearish),
		TopBull:   topSymbols(r.Bullish, eventTopN),
		TopBear:   topSymbols(r.Bearish, eventTopN),
		Flips:     r.Flips,
		Persisted: r.Persisted,
		Warnings:  r.Warnings,
	}
}

func topSymbols(list []contracts.ConvictionResult, n int) []string {
	out := make([]string, 0, n)
	for i, r := range list {
		if i == n {
			break
		}
		out = append(out, r.Symbol)
	}
	return out
}

// Hub fans scan events out to connected websocket clients
// ⭐ SSOT: 스캔 결과 스트리밍은 이 허브에서만
type Hub struct {
	upgrader websocket.Upgrader
	logger   *logger.Logger

	clients map[*streamClient]struct{}
	mu      sync.Mutex
	closed  bool
}

type streamClient struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *streamClient) close() {
	c.once.Do(func() { close(c.send) })
}

// NewHub creates a new stream hub
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// ops endpoint, not browser-facing
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  log.WithField("module", "stream"),
		clients: make(map[*streamClient]struct{}),
	}
}

// ServeWS upgrades the request and registers the client
// GET /ws/scans
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	c := &streamClient{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.WithFields(map[string]interface{}{
		"remote":  r.RemoteAddr,
		"clients": count,
	}).Info("Stream client connected")

	go h.writeLoop(c)
	go h.readLoop(c)
}

// Publish sends the scan summary to every client without blocking
func (h *Hub) Publish(result *brain.ScanResult) {
	if h == nil || result == nil {
		return
	}
	data, err := json.Marshal(NewScanEvent(result))
	if err != nil {
		h.logger.WithError(err).Error("Failed to encode scan event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// 느린 클라이언트는 끊음
			h.logger.Warn("Stream client too slow, dropping")
			delete(h.clients, c)
			c.close()
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
}

func (h *Hub) unregister(c *streamClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
	h.mu.Unlock()
}

// readLoop discards client messages and detects disconnects via pong deadlines
func (h *Hub) readLoop(c *streamClient) {
	defer h.unregister(c)

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(PongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.WithError(err).Debug("Stream client read ended")
			}
			return
		}
	}
}

// writeLoop is the only goroutine writing to the connection
func (h *Hub) writeLoop(c *streamClient) {
	ticker := time.NewTicker(PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.WithError(err).Debug("Stream write failed")
				h.unregister(c)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.unregister(c)
				return
			}
		}
	}
}
