package match

import (
	"github.com/mcoot/sequencegame/internal/dependencies/clock"
	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/game"
)

// Publisher receives the events of every live match
type Publisher interface {
	Publish(event model.Event)
}

// eventView turns engine notifications into published events
type eventView struct {
	id        model.MatchID
	engine    *game.Engine
	publisher Publisher
	clock     clock.Clock
	lastTurn  model.PlayerID
}

var _ game.View = (*eventView)(nil)

func newEventView(id model.MatchID, engine *game.Engine, publisher Publisher, clock clock.Clock) *eventView {
	return &eventView{id: id, engine: engine, publisher: publisher, clock: clock}
}

// start records whose turn the game opens on
func (v *eventView) start() {
	v.lastTurn = v.engine.CurrentTurn()
}

func (v *eventView) Redraw() {
	mover := v.lastTurn
	v.lastTurn = v.engine.CurrentTurn()
	v.publisher.Publish(model.Event{
		Type:      model.EventRedraw,
		Timestamp: v.clock.Now(),
		MatchID:   v.id,
		PlayerID:  mover,
		Payload: model.RedrawPayload{
			MoveCount:   v.engine.MoveCount(),
			CurrentTurn: v.engine.CurrentTurn(),
		},
	})
}

func (v *eventView) GameOver(winner model.Team) {
	v.publisher.Publish(model.Event{
		Type:      model.EventGameOver,
		Timestamp: v.clock.Now(),
		MatchID:   v.id,
		Payload: model.GameOverPayload{
			Winner:    winner,
			NumMoves:  v.engine.MoveCount(),
			Sequences: v.engine.SequenceCounts(),
		},
	})
}

type nopPublisher struct{}

func (nopPublisher) Publish(model.Event) {}
