package watch

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// writeWait bounds every broadcast write. The hub ticks on the scheduler
// goroutine, so a spectator that stops reading must time out and get
// dropped instead of stalling the whole simulation.
const writeWait = 10 * time.Second

// AgentSnapshot is one agent's wire state for spectators.
type AgentSnapshot struct {
	ID     uint32  `json:"id"`
	Kind   string  `json:"kind"` // "player", "npc", "pet"
	Name   string  `json:"name"`
	State  string  `json:"state"`
	HP     int     `json:"hp"`
	MaxHP  int     `json:"maxHp"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Facing string  `json:"facing"`
	Alive  bool    `json:"alive"`
}

// TickSnapshot is the per-tick broadcast frame.
type TickSnapshot struct {
	Tick   uint64          `json:"tick"`
	Agents []AgentSnapshot `json:"agents"`
}

// Source produces a spectator snapshot for one agent.
type Source interface {
	Snapshot() AgentSnapshot
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() AgentSnapshot

// Snapshot calls f.
func (f SourceFunc) Snapshot() AgentSnapshot { return f() }

// Hub broadcasts per-tick world snapshots to websocket spectators.
// It subscribes to the tick scheduler like any other agent, so frames go
// out after all simulation agents have ticked.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	conns   map[*websocket.Conn]struct{}
	sources []Source
}

// NewHub creates an empty spectator hub.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Spectator feed is read-only and unauthenticated.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Track adds an agent to the broadcast frame.
func (h *Hub) Track(src Source) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sources = append(h.sources, src)
}

// Untrack removes an agent from the broadcast frame.
func (h *Hub) Untrack(src Source) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, s := range h.sources {
		if s == src {
			h.sources = append(h.sources[:i], h.sources[i+1:]...)
			return
		}
	}
}

// ClientCount returns the number of connected spectators.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// ServeHTTP upgrades a spectator connection. Incoming messages are drained
// and ignored; the feed is broadcast-only.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("spectator upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	n := len(h.conns)
	h.mu.Unlock()

	slog.Info("spectator connected", "remote", r.RemoteAddr, "spectators", n)

	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// OnTick builds and broadcasts the snapshot frame for this tick.
func (h *Hub) OnTick(tick uint64) {
	h.mu.Lock()
	if len(h.conns) == 0 {
		h.mu.Unlock()
		return
	}
	sources := make([]Source, len(h.sources))
	copy(sources, h.sources)
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	frame := TickSnapshot{
		Tick:   tick,
		Agents: make([]AgentSnapshot, 0, len(sources)),
	}
	for _, src := range sources {
		frame.Agents = append(frame.Agents, src.Snapshot())
	}

	payload, err := json.Marshal(frame)
	if err != nil {
		slog.Error("snapshot marshal failed", "error", err)
		return
	}

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.drop(conn)
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.conns[conn]
	delete(h.conns, conn)
	n := len(h.conns)
	h.mu.Unlock()

	if ok {
		conn.Close()
		slog.Info("spectator disconnected", "spectators", n)
	}
}
