package results

import (
	"sync"

	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/game"
)

// Keeper tallies results in memory as games finish. One keeper can be
// shared by engines running on different goroutines.
type Keeper struct {
	mu    sync.Mutex
	tally *model.Tally
}

var (
	_ game.ScoreKeeper = (*Keeper)(nil)
	_ game.MoveCounter = (*Keeper)(nil)
)

// NewKeeper creates an empty keeper for a series
func NewKeeper(series string) *Keeper {
	return &Keeper{tally: model.NewTally(series)}
}

// Increment records one finished game
func (k *Keeper) Increment(winner model.Team) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.tally.Games++
	if winner == model.TeamNone {
		k.tally.Ties++
		return
	}
	k.tally.Wins[winner]++
}

// ReceiveNumMoves adds a finished game's length to the running total
func (k *Keeper) ReceiveNumMoves(n int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.tally.TotalMoves += n
}

// Tally returns a snapshot of the results so far
func (k *Keeper) Tally() *model.Tally {
	k.mu.Lock()
	defer k.mu.Unlock()
	cp := *k.tally
	cp.Wins = make(map[model.Team]int, len(k.tally.Wins))
	for team, n := range k.tally.Wins {
		cp.Wins[team] = n
	}
	return &cp
}
