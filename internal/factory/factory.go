package factory

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/sequencegame/internal/api"
	"github.com/mcoot/sequencegame/internal/api/sse"
	"github.com/mcoot/sequencegame/internal/dependencies/clock"
	"github.com/mcoot/sequencegame/internal/services/board"
	"github.com/mcoot/sequencegame/internal/services/bot"
	"github.com/mcoot/sequencegame/internal/services/match"
	"github.com/mcoot/sequencegame/internal/services/results"
	"github.com/mcoot/sequencegame/internal/services/simulation"
	"github.com/mcoot/sequencegame/internal/storage"
	"github.com/mcoot/sequencegame/internal/storage/memory"
	redisstorage "github.com/mcoot/sequencegame/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	BoardService     *board.Service
	BotService       *bot.Service
	ResultsService   *results.Service
	MatchService     *match.Service
	SimulationRunner *simulation.Runner
	HubManager       *sse.HubManager
	Broadcaster      *sse.Broadcaster

	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, logger *slog.Logger) *App {
	boardService := board.New(logger)
	botService := bot.NewService(bot.DefaultStrategies(), logger)
	resultsService := results.NewService(store, clk, logger)
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)
	matchService := match.NewService(boardService, botService, resultsService, broadcaster, clk, logger)
	runner := simulation.NewRunner(boardService, botService, resultsService, clk, logger)

	return &App{
		Storage:          store,
		Clock:            clk,
		BoardService:     boardService,
		BotService:       botService,
		ResultsService:   resultsService,
		MatchService:     matchService,
		SimulationRunner: runner,
		HubManager:       hubManager,
		Broadcaster:      broadcaster,
		logger:           logger,
	}
}

// Router builds the API router over the wired services
func (a *App) Router() http.Handler {
	cfg := api.RouterConfig{
		Logger:         a.logger,
		MatchService:   a.MatchService,
		ResultsService: a.ResultsService,
		BoardService:   a.BoardService,
		BotService:     a.BotService,
		HubManager:     a.HubManager,
	}
	if p, ok := a.Storage.(api.Pinger); ok {
		cfg.Storage = p
	}
	return api.NewRouter(cfg)
}

// Close releases the storage connection, if it holds one
func (a *App) Close() error {
	if c, ok := a.Storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
