package preview

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jmolenaar/thumbcfg/internal/logging"
)

const (
	// Time allowed to write a preview document to a client
	writeWait = 10 * time.Second
)

// Broadcaster pushes preview documents to WebSocket clients. It
// implements session.Renderer: every re-render signal fans the current
// preview out to all connected clients, fire-and-forget.
type Broadcaster struct {
	source   func() Preview
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	closed  bool
}

// NewBroadcaster creates a broadcaster that reads the current preview
// from source on every render signal and on client connect.
func NewBroadcaster(source func() Preview) *Broadcaster {
	return &Broadcaster{
		source: source,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Preview feed is local tooling; any origin may subscribe
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP upgrades the request to a WebSocket and subscribes the client
// to preview updates. The client immediately receives the current
// preview.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("Preview feed upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		_ = conn.Close()
		return
	}
	b.clients[conn] = true
	b.mu.Unlock()

	logging.Info("Preview feed client connected",
		zap.String("remote_addr", r.RemoteAddr),
	)

	if err := b.send(conn, b.source()); err != nil {
		b.drop(conn)
		return
	}

	// Read loop: the feed is one-way, but reading detects disconnects
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				b.drop(conn)
				return
			}
		}
	}()
}

// TriggerPreviewRender broadcasts the current preview to all clients.
// Clients that cannot be written to are dropped.
func (b *Broadcaster) TriggerPreviewRender() {
	p := b.source()

	b.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(b.clients))
	for conn := range b.clients {
		conns = append(conns, conn)
	}
	b.mu.Unlock()

	for _, conn := range conns {
		if err := b.send(conn, p); err != nil {
			logging.Debug("Dropping preview feed client",
				zap.Error(err),
			)
			b.drop(conn)
		}
	}
}

// ClientCount returns the number of connected clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Close disconnects all clients and rejects future subscriptions.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	b.closed = true
	conns := make([]*websocket.Conn, 0, len(b.clients))
	for conn := range b.clients {
		conns = append(conns, conn)
	}
	b.clients = make(map[*websocket.Conn]bool)
	b.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
}

func (b *Broadcaster) send(conn *websocket.Conn, p Preview) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (b *Broadcaster) drop(conn *websocket.Conn) {
	b.mu.Lock()
	delete(b.clients, conn)
	b.mu.Unlock()
	_ = conn.Close()
}
