package sse

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/sequencegame/internal/model"
)

// message is one formatted SSE frame plus the event it carries
type message struct {
	event string
	frame []byte
}

// HubStats counts what a hub has delivered since it started
type HubStats struct {
	Clients int
	Sent    int
	Dropped int
}

// Hub fans the events of one match out to every watching client. The latest
// frame of each event name is kept so late joiners start from the current
// board rather than waiting for the next move.
type Hub struct {
	matchID model.MatchID
	logger  *slog.Logger

	mu      sync.RWMutex
	clients map[*Client]struct{}
	latest  map[string][]byte
	order   []string // event names in first-seen order
	stats   HubStats

	join    chan *Client
	leave   chan *Client
	publish chan message
	done    chan struct{}
}

// NewHub creates a hub for a match. Call Run to start delivering.
func NewHub(matchID model.MatchID, logger *slog.Logger) *Hub {
	return &Hub{
		matchID: matchID,
		logger:  logger.With(slog.String("match_id", string(matchID))),
		clients: make(map[*Client]struct{}),
		latest:  make(map[string][]byte),
		join:    make(chan *Client),
		leave:   make(chan *Client),
		publish: make(chan message, 256),
		done:    make(chan struct{}),
	}
}

// Run delivers until Close is called
func (h *Hub) Run() {
	h.logger.Debug("sse hub started")
	for {
		select {
		case c := <-h.join:
			h.addClient(c)
		case c := <-h.leave:
			h.removeClient(c)
		case msg := <-h.publish:
			h.fanOut(msg)
		case <-h.done:
			h.shutdown()
			return
		}
	}
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	for _, name := range h.order {
		select {
		case c.send <- h.latest[name]:
		default:
		}
	}
	h.stats.Clients = len(h.clients)
	watchers := h.stats.Clients
	h.mu.Unlock()

	h.logger.Info("sse watcher joined",
		slog.String("player_id", string(c.playerID)),
		slog.Int("watchers", watchers))
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.stats.Clients = len(h.clients)
	watchers := h.stats.Clients
	h.mu.Unlock()

	h.logger.Info("sse watcher left",
		slog.String("player_id", string(c.playerID)),
		slog.Duration("watched_for", time.Since(c.connectedAt)),
		slog.Int("watchers", watchers))
}

func (h *Hub) fanOut(msg message) {
	h.mu.Lock()
	if _, seen := h.latest[msg.event]; !seen {
		h.order = append(h.order, msg.event)
	}
	h.latest[msg.event] = msg.frame

	dropped := 0
	for c := range h.clients {
		select {
		case c.send <- msg.frame:
			h.stats.Sent++
		default:
			dropped++
		}
	}
	h.stats.Dropped += dropped
	h.mu.Unlock()

	if dropped > 0 {
		h.logger.Warn("sse watchers too slow, frames dropped",
			slog.String("event", msg.event),
			slog.Int("dropped", dropped))
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	n := len(h.clients)
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
	h.stats.Clients = 0
	h.mu.Unlock()

	h.logger.Debug("sse hub stopped", slog.Int("disconnected", n))
}

// Register adds a client and replays the latest frames to it. Registering
// with a closed hub closes the client's channel immediately.
func (h *Hub) Register(c *Client) {
	select {
	case h.join <- c:
	case <-h.done:
		close(c.send)
	}
}

// Unregister removes a client
func (h *Hub) Unregister(c *Client) {
	select {
	case h.leave <- c:
	case <-h.done:
	}
}

// Publish queues an event for every client. A full queue drops the event.
func (h *Hub) Publish(eventName, data string) {
	select {
	case h.publish <- message{event: eventName, frame: formatSSEMessage(eventName, data)}:
	default:
		h.logger.Warn("sse hub queue full, event dropped", slog.String("event", eventName))
	}
}

// Close stops the hub and disconnects every client
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stats returns delivery counters
func (h *Hub) Stats() HubStats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.stats
}

// formatSSEMessage builds one frame. Each data line gets its own prefix.
func formatSSEMessage(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: " + eventName + "\n")
	for _, line := range splitLines(data) {
		b.WriteString("data: " + line + "\n")
	}
	b.WriteString("\n")
	return []byte(b.String())
}

// splitLines splits on newlines, dropping carriage returns and one trailing newline
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
