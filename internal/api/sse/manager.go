package sse

import (
	"log/slog"
	"sync"

	"github.com/mcoot/sequencegame/internal/model"
)

// HubManager owns one hub per watched match
type HubManager struct {
	mu     sync.Mutex
	hubs   map[model.MatchID]*Hub
	logger *slog.Logger
}

func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.MatchID]*Hub),
		logger: logger.With(slog.String("component", "sse")),
	}
}

// GetOrCreateHub returns the running hub for a match, starting one if needed
func (m *HubManager) GetOrCreateHub(matchID model.MatchID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[matchID]; ok {
		return hub
	}
	hub := NewHub(matchID, m.logger)
	m.hubs[matchID] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a match, or nil if nobody has watched it
func (m *HubManager) GetHub(matchID model.MatchID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hubs[matchID]
}

// RemoveHub closes a match's hub. Unknown matches are ignored.
func (m *HubManager) RemoveHub(matchID model.MatchID) {
	m.mu.Lock()
	hub, ok := m.hubs[matchID]
	delete(m.hubs, matchID)
	m.mu.Unlock()

	if ok {
		hub.Close()
		m.logger.Info("sse hub removed", slog.String("match_id", string(matchID)))
	}
}

// CleanupEmptyHubs closes every hub nobody is watching and returns their matches
func (m *HubManager) CleanupEmptyHubs() []model.MatchID {
	m.mu.Lock()
	var idle []*Hub
	var removed []model.MatchID
	for id, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			idle = append(idle, hub)
			removed = append(removed, id)
			delete(m.hubs, id)
		}
	}
	m.mu.Unlock()

	for _, hub := range idle {
		hub.Close()
	}
	if len(removed) > 0 {
		m.logger.Info("sse idle hubs closed", slog.Int("removed", len(removed)))
	}
	return removed
}

// Len returns the number of open hubs
func (m *HubManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.hubs)
}
