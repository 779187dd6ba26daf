package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/sequencegame/internal/dependencies/clock"
	"github.com/mcoot/sequencegame/internal/dependencies/random"
	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/board"
	"github.com/mcoot/sequencegame/internal/services/bot"
	"github.com/mcoot/sequencegame/internal/services/game"
	"github.com/mcoot/sequencegame/internal/services/results"
)

// Seat is one bot in every simulated game
type Seat struct {
	Team     model.Team
	Strategy string
}

// Config describes a batch of games
type Config struct {
	Games   int
	Seed    uint64 // Zero picks a fresh seed
	Series  string // Results series, empty for the default
	Layout  string
	Seats   []Seat // Turn order of the first game
	Workers int    // Games played at once, at least one

	// Rotate moves the first seat to the back after every game so no
	// strategy always opens
	Rotate bool

	// Record saves every game summary and updates the stored tally
	Record bool
}

// GameResult is the outcome of one simulated game
type GameResult struct {
	Index     int
	Seed      uint64
	Winner    model.Team
	NumMoves  int
	Sequences map[model.Team]int
}

// Report is the outcome of a batch
type Report struct {
	Series   string
	Seed     uint64
	Tally    *model.Tally
	Games    []GameResult
	Duration time.Duration
}

// Runner plays bot-only games back to back
type Runner struct {
	boards  board.ServiceInterface
	bots    bot.ServiceInterface
	results results.ServiceInterface
	clock   clock.Clock
	logger  *slog.Logger
	gameLog *slog.Logger
}

// NewRunner creates a new Runner. results may be nil when nothing is recorded.
func NewRunner(
	boards board.ServiceInterface,
	bots bot.ServiceInterface,
	results results.ServiceInterface,
	clock clock.Clock,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		boards:  boards,
		bots:    bots,
		results: results,
		clock:   clock,
		logger:  logger.With(slog.String("component", "simulation")),
		gameLog: logger,
	}
}

// Run plays cfg.Games games. Game i always uses the same derived seed, so a
// batch is reproducible whatever the worker count.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Report, error) {
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("%w: games must be positive", model.ErrInvalidArgument)
	}
	if len(cfg.Seats) < 2 {
		return nil, model.ErrInsufficientPlayers
	}
	for _, seat := range cfg.Seats {
		if !r.bots.HasStrategy(seat.Strategy) {
			return nil, fmt.Errorf("%w: unknown bot strategy %q", model.ErrInvalidArgument, seat.Strategy)
		}
	}
	if cfg.Record && r.results == nil {
		return nil, fmt.Errorf("%w: no results store to record to", model.ErrIllegalState)
	}
	if cfg.Series == "" {
		cfg.Series = results.DefaultSeries
	}
	if cfg.Seed == 0 {
		cfg.Seed = random.NewSeed()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	root := random.NewSeeded(cfg.Seed)
	keeper := results.NewKeeper(cfg.Series)
	games := make([]GameResult, cfg.Games)
	started := r.clock.Now()

	r.logger.Info("simulation started",
		slog.String("series", cfg.Series),
		slog.Int("games", cfg.Games),
		slog.Uint64("seed", cfg.Seed),
		slog.Int("workers", workers),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range cfg.Games {
		rnd := root.Derive(i)
		g.Go(func() error {
			result, err := r.play(ctx, cfg, i, rnd, keeper)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			games[i] = *result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Series:   cfg.Series,
		Seed:     cfg.Seed,
		Tally:    keeper.Tally(),
		Games:    games,
		Duration: clock.Since(r.clock, started),
	}

	r.logger.Info("simulation finished",
		slog.String("series", cfg.Series),
		slog.Int("games", report.Tally.Games),
		slog.Int("ties", report.Tally.Ties),
		slog.Float64("average_moves", report.Tally.AverageMoves()),
		slog.Duration("duration", report.Duration),
	)
	return report, nil
}

// SeatsFor returns the turn order of game i
func SeatsFor(cfg Config, i int) []Seat {
	seats := append([]Seat(nil), cfg.Seats...)
	if !cfg.Rotate {
		return seats
	}
	shift := i % len(seats)
	return append(seats[shift:], seats[:shift]...)
}

func (r *Runner) play(ctx context.Context, cfg Config, i int, rnd *random.SeededRandom, keeper *results.Keeper) (*GameResult, error) {
	b, err := r.boards.Create(cfg.Layout)
	if err != nil {
		return nil, err
	}

	seats := SeatsFor(cfg, i)
	players := make([]model.Player, 0, len(seats))
	controllers := make([]game.Controller, 0, len(seats))
	for j, seat := range seats {
		id := model.PlayerID(fmt.Sprintf("%s-%d", seat.Team, j+1))
		controller, err := r.bots.NewBot(id, seat.Team, seat.Strategy, rnd.Derive(j+1))
		if err != nil {
			return nil, err
		}
		controllers = append(controllers, controller)
		players = append(players, model.Player{
			ID:          id,
			DisplayName: string(id),
			Team:        seat.Team,
			IsBot:       true,
			BotStrategy: seat.Strategy,
		})
	}

	engine := game.New(r.gameLog, r.clock)
	engine.AddScoreKeeper(keeper)
	if err := engine.Initialize(b, controllers, rnd); err != nil {
		return nil, err
	}
	if err := engine.Run(ctx); err != nil {
		return nil, err
	}
	if !engine.IsGameOver() {
		return nil, model.ErrGameStalled
	}

	winner, err := engine.Winner()
	if err != nil {
		return nil, err
	}

	if cfg.Record {
		id := model.MatchID(fmt.Sprintf("sim-%x-%d", cfg.Seed, i))
		summary, err := r.results.Summarize(id, cfg.Series, engine, players)
		if err != nil {
			return nil, err
		}
		if err := r.results.Record(ctx, summary); err != nil {
			return nil, err
		}
	}

	return &GameResult{
		Index:     i,
		Seed:      rnd.Seed(),
		Winner:    winner,
		NumMoves:  engine.MoveCount(),
		Sequences: engine.SequenceCounts(),
	}, nil
}
