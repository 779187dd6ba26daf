package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/sequencegame/internal/dependencies/mocks"
	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/board"
	"github.com/mcoot/sequencegame/internal/services/bot"
	"github.com/mcoot/sequencegame/internal/services/results"
	"github.com/mcoot/sequencegame/internal/storage/memory"
	"github.com/mcoot/sequencegame/internal/testutil"
)

type RunnerSuite struct {
	suite.Suite
	runner  *Runner
	results *results.Service
	ctx     context.Context
}

func TestRunnerSuite(t *testing.T) {
	suite.Run(t, new(RunnerSuite))
}

func (s *RunnerSuite) SetupTest() {
	logger := testutil.NopLogger()
	clock := mocks.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s.results = results.NewService(memory.New(), clock, logger)
	s.runner = NewRunner(board.New(logger), bot.NewService(bot.DefaultStrategies(), logger), s.results, clock, logger)
	s.ctx = context.Background()
}

func headToHead() []Seat {
	return []Seat{
		{Team: model.TeamRed, Strategy: model.BotStrategyNetwork},
		{Team: model.TeamGreen, Strategy: model.BotStrategyRandom},
	}
}

func (s *RunnerSuite) TestRunTalliesEveryGame() {
	report, err := s.runner.Run(s.ctx, Config{Games: 6, Seed: 42, Series: "exp", Seats: headToHead()})
	s.Require().NoError(err)

	s.Equal("exp", report.Series)
	s.Equal(uint64(42), report.Seed)
	s.Equal(6, report.Tally.Games)
	s.Require().Len(report.Games, 6)

	wins := map[model.Team]int{}
	ties, moves := 0, 0
	for i, g := range report.Games {
		s.Equal(i, g.Index)
		s.Positive(g.NumMoves)
		moves += g.NumMoves
		if g.Winner == model.TeamNone {
			ties++
		} else {
			wins[g.Winner]++
			s.GreaterOrEqual(g.Sequences[g.Winner], model.SequencesToWin)
		}
	}
	s.Equal(wins, report.Tally.Wins)
	s.Equal(ties, report.Tally.Ties)
	s.Equal(moves, report.Tally.TotalMoves)
}

func (s *RunnerSuite) TestRunIsReproducible() {
	cfg := Config{Games: 4, Seed: 7, Seats: headToHead(), Rotate: true}

	first, err := s.runner.Run(s.ctx, cfg)
	s.Require().NoError(err)

	cfg.Workers = 4
	second, err := s.runner.Run(s.ctx, cfg)
	s.Require().NoError(err)

	s.Equal(first.Games, second.Games)
	s.Equal(first.Tally, second.Tally)
}

func (s *RunnerSuite) TestRunRecordsResults() {
	_, err := s.runner.Run(s.ctx, Config{Games: 3, Seed: 5, Series: "stored", Seats: headToHead(), Record: true})
	s.Require().NoError(err)

	tally, err := s.results.GetTally(s.ctx, "stored")
	s.Require().NoError(err)
	s.Equal(3, tally.Games)

	summaries, err := s.results.ListSummaries(s.ctx, "stored", 0)
	s.Require().NoError(err)
	s.Len(summaries, 3)
}

func (s *RunnerSuite) TestRunThreeTeams() {
	report, err := s.runner.Run(s.ctx, Config{Games: 2, Seed: 9, Seats: []Seat{
		{Team: model.TeamRed, Strategy: model.BotStrategyFirst},
		{Team: model.TeamGreen, Strategy: model.BotStrategyNetwork},
		{Team: model.TeamBlue, Strategy: model.BotStrategyRandom},
	}})
	s.Require().NoError(err)
	s.Equal(2, report.Tally.Games)
	s.Equal(results.DefaultSeries, report.Series)
}

func (s *RunnerSuite) TestRunRejectsBadConfig() {
	_, err := s.runner.Run(s.ctx, Config{Games: 0, Seats: headToHead()})
	s.ErrorIs(err, model.ErrInvalidArgument)

	_, err = s.runner.Run(s.ctx, Config{Games: 1, Seats: headToHead()[:1]})
	s.ErrorIs(err, model.ErrInsufficientPlayers)

	_, err = s.runner.Run(s.ctx, Config{Games: 1, Seats: []Seat{
		{Team: model.TeamRed, Strategy: "minimax"},
		{Team: model.TeamGreen, Strategy: model.BotStrategyFirst},
	}})
	s.ErrorIs(err, model.ErrInvalidArgument)

	_, err = s.runner.Run(s.ctx, Config{Games: 1, Layout: "missing", Seats: headToHead()})
	s.ErrorIs(err, model.ErrInvalidLayout)
}

func (s *RunnerSuite) TestRecordWithoutStore() {
	runner := NewRunner(board.New(testutil.NopLogger()), bot.NewService(bot.DefaultStrategies(), testutil.NopLogger()),
		nil, mocks.NewMockClock(time.Now()), testutil.NopLogger())

	_, err := runner.Run(s.ctx, Config{Games: 1, Seats: headToHead(), Record: true})
	s.ErrorIs(err, model.ErrIllegalState)
}

func (s *RunnerSuite) TestRunCancelled() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.runner.Run(ctx, Config{Games: 2, Seed: 1, Seats: headToHead()})
	s.ErrorIs(err, context.Canceled)
}

func (s *RunnerSuite) TestSeatsForRotates() {
	cfg := Config{Seats: headToHead(), Rotate: true}
	s.Equal(model.TeamRed, SeatsFor(cfg, 0)[0].Team)
	s.Equal(model.TeamGreen, SeatsFor(cfg, 1)[0].Team)
	s.Equal(model.TeamRed, SeatsFor(cfg, 2)[0].Team)

	cfg.Rotate = false
	s.Equal(model.TeamRed, SeatsFor(cfg, 1)[0].Team)
}
