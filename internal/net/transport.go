package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"SketchBoard/internal/persist"
	"SketchBoard/internal/state"
)

// SharePath is where the hub accepts viewer connections.
const SharePath = "/board"

const (
	writeWait     = 5 * time.Second
	maxViewerRead = 512
)

// peer is one connected viewer. send holds at most one pending document;
// a newer document replaces one that was not written yet.
type peer struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub is run by the HOST. It pushes the current board to every viewer:
// once on connect and again on every Publish. Viewers never write back.
type Hub struct {
	mu       sync.RWMutex
	peers    map[string]*peer
	latest   []byte
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		peers: make(map[string]*peer),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Peers reports the number of connected viewers.
func (h *Hub) Peers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Publish encodes doc and sends it to every viewer.
func (h *Hub) Publish(doc persist.Document) error {
	msg, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode share document: %w", err)
	}
	h.Broadcast(msg)
	return nil
}

// Broadcast remembers msg for future viewers and queues it for current ones.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = msg
	for _, p := range h.peers {
		p.offer(msg)
	}
}

func (p *peer) offer(msg []byte) {
	for {
		select {
		case p.send <- msg:
			return
		default:
		}
		select {
		case <-p.send:
		default:
		}
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[SHARE] upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}
	addr := conn.RemoteAddr().String()
	p := &peer{conn: conn, send: make(chan []byte, 1)}

	h.mu.Lock()
	h.peers[addr] = p
	if h.latest != nil {
		p.send <- h.latest
	}
	h.mu.Unlock()
	log.Printf("[SHARE] viewer connected from %s", addr)

	go p.writeLoop()
	p.readLoop()

	h.mu.Lock()
	delete(h.peers, addr)
	close(p.send)
	h.mu.Unlock()
	log.Printf("[SHARE] viewer %s left", addr)
}

func (p *peer) writeLoop() {
	defer p.conn.Close()
	for msg := range p.send {
		p.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("[SHARE] write to %s: %v", p.conn.RemoteAddr(), err)
			return
		}
	}
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	p.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readLoop drains control frames until the viewer goes away.
func (p *peer) readLoop() {
	p.conn.SetReadLimit(maxViewerRead)
	for {
		if _, _, err := p.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Follow publishes the store's board whenever its revision moves, checking
// every interval, until ctx is done. Bursts of edits between two checks go
// out as one document.
func (h *Hub) Follow(ctx context.Context, store *state.Store, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	var sent uint64
	first := true
	publish := func() {
		rev := store.Revision()
		if rev == sent && !first {
			return
		}
		sent, first = rev, false
		if err := h.Publish(persist.Capture(store)); err != nil {
			log.Printf("[SHARE] %v", err)
		}
	}
	publish()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			publish()
		}
	}
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, p := range h.peers {
		p.conn.Close()
	}
}

// Serve listens on port and serves the hub until ctx is done.
func (h *Hub) Serve(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle(SharePath, h)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		h.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[SHARE] serving %s on port %d", SharePath, port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("share server: %w", err)
	}
	return nil
}
