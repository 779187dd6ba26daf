package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/sequencegame/internal/factory"
	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/board"
	"github.com/mcoot/sequencegame/internal/services/simulation"
	redisstorage "github.com/mcoot/sequencegame/internal/storage/redis"
)

// customLayoutName is what a --layout-file layout is registered as
const customLayoutName = "custom"

// simulateOptions holds the flags of the simulate command
type simulateOptions struct {
	games      int
	seed       uint64
	series     string
	workers    int
	rotate     bool
	redisURL   string
	layoutFile string
	red        string
	green      string
	blue       string
	verbose    bool
}

// seats returns one bot seat per team given a strategy, in colour order
func (o simulateOptions) seats() []simulation.Seat {
	var seats []simulation.Seat
	for _, s := range []struct {
		team     model.Team
		strategy string
	}{
		{model.TeamRed, o.red},
		{model.TeamGreen, o.green},
		{model.TeamBlue, o.blue},
	} {
		if s.strategy != "" {
			seats = append(seats, simulation.Seat{Team: s.team, Strategy: s.strategy})
		}
	}
	return seats
}

// factoryConfig picks redis storage when a URL is given, memory otherwise
func (o simulateOptions) factoryConfig() factory.Config {
	fc := factory.Config{Logger: newLogger(o.verbose)}
	if o.redisURL != "" {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = o.redisURL
		fc.StorageType = factory.StorageTypeRedis
		fc.RedisConfig = &redisCfg
	}
	return fc
}

func newSimulateCmd() *cobra.Command {
	opts := simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate --red random --blue network",
		Short: "Play bot-only games locally and report the tally",
		Long: `Play a batch of bot-only games without a server. Give a strategy
for each team that should play (at least two). Games are reproducible:
the same --seed gives the same results whatever --workers is set to.

With --redis-url the results are saved to Redis under --series, where a
server sharing that Redis can report them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.verbose = cfg.Verbose
			return runSimulate(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.games, "games", "n", 100, "Number of games")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Root seed, 0 for random")
	cmd.Flags().StringVar(&opts.series, "series", "", "Results series name")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 1, "Games played concurrently")
	cmd.Flags().BoolVar(&opts.rotate, "rotate", false, "Rotate who moves first after every game")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "Record results to this Redis")
	cmd.Flags().StringVar(&opts.layoutFile, "layout-file", "", "Play on a custom layout read from a file")
	cmd.Flags().StringVar(&opts.red, "red", "", "Strategy for the red team")
	cmd.Flags().StringVar(&opts.green, "green", "", "Strategy for the green team")
	cmd.Flags().StringVar(&opts.blue, "blue", "", "Strategy for the blue team")

	return cmd
}

func runSimulate(ctx context.Context, opts simulateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := factory.New(opts.factoryConfig())
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	simCfg := simulation.Config{
		Games:   opts.games,
		Seed:    opts.seed,
		Series:  opts.series,
		Seats:   opts.seats(),
		Workers: opts.workers,
		Rotate:  opts.rotate,
		Record:  opts.redisURL != "",
	}

	if opts.layoutFile != "" {
		text, err := os.ReadFile(opts.layoutFile)
		if err != nil {
			return fmt.Errorf("reading layout: %w", err)
		}
		if err := app.BoardService.Register(customLayoutName, board.ParseLayout(string(text))); err != nil {
			return err
		}
		simCfg.Layout = customLayoutName
	}

	report, err := app.SimulationRunner.Run(ctx, simCfg)
	if err != nil {
		return err
	}

	NewOutput(cfg.Output).Print(report)
	return nil
}
