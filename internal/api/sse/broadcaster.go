package sse

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/mcoot/sequencegame/internal/model"
)

// Broadcaster publishes match events to the SSE clients of that match
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// eventData is the JSON body of every SSE event
type eventData struct {
	Type      model.EventType `json:"type"`
	MatchID   model.MatchID   `json:"match_id"`
	PlayerID  model.PlayerID  `json:"player_id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   any             `json:"payload,omitempty"`
}

// EventName returns the SSE event name for an event type, e.g. "game-over"
func EventName(t model.EventType) string {
	return strings.ReplaceAll(string(t), "_", "-")
}

// Publish sends an event to every client watching its match. Matches
// nobody is watching are skipped.
func (b *Broadcaster) Publish(event model.Event) {
	hub := b.hubManager.GetHub(event.MatchID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(eventData{
		Type:      event.Type,
		MatchID:   event.MatchID,
		PlayerID:  event.PlayerID,
		Timestamp: event.Timestamp,
		Payload:   event.Payload,
	})
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("match_id", string(event.MatchID)),
			slog.String("event", string(event.Type)),
			slog.Any("error", err))
		return
	}

	hub.Publish(EventName(event.Type), string(data))
}

// Close releases the hub of a finished or abandoned match
func (b *Broadcaster) Close(matchID model.MatchID) {
	b.hubManager.RemoveHub(matchID)
}
