package api

import (
	"net/http"
	"sync"
	"time"

	models "ecogrid/internal/domain/models"
	xlogger "ecogrid/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const writeWait = 5 * time.Second

// StreamHandler pushes refreshed snapshots to websocket subscribers. Clients
// are write-only; anything they send is drained and dropped.
type StreamHandler struct {
	logger   *xlogger.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// GridUpdate is the message pushed on every poll cycle.
type GridUpdate struct {
	Type     string               `json:"type"`
	Snapshot *models.GridSnapshot `json:"snapshot"`
	Forecast *models.RiskForecast `json:"forecast,omitempty"`
	SentAt   time.Time            `json:"sentAt"`
}

func NewStreamHandler(logger *xlogger.Logger) *StreamHandler {
	return &StreamHandler{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Serve upgrades the connection and keeps it registered until the peer goes
// away.
func (h *StreamHandler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("ws client connected", xlogger.Int("clients", n))

	go h.drain(conn)
	return nil
}

func (h *StreamHandler) drain(conn *websocket.Conn) {
	defer h.drop(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *StreamHandler) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// Push broadcasts an update to every connected client. A failed write drops
// that client; the rest are unaffected.
func (h *StreamHandler) Push(snap *models.GridSnapshot, fc *models.RiskForecast) {
	msg := GridUpdate{
		Type:     "grid_update",
		Snapshot: snap,
		Forecast: fc,
		SentAt:   time.Now().UTC(),
	}

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.Debug("ws write failed, dropping client", xlogger.Error(err))
			h.drop(conn)
		}
	}
}

// Close disconnects all clients.
func (h *StreamHandler) Close() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.clients = make(map[*websocket.Conn]struct{})
	h.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
}
