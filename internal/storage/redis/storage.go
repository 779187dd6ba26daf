package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ping checks the connection is alive
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Summary operations

func (s *Storage) SaveSummary(ctx context.Context, summary *model.GameSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, summaryKey(summary.ID), data, s.cfg.SummaryTTL)
	pipe.ZAdd(ctx, summariesForSeriesIndexKey(summary.Series), redis.Z{
		Score:  float64(summary.CompletedAt.UnixMilli()),
		Member: string(summary.ID),
	})
	pipe.SAdd(ctx, seriesIndexKey(), summary.Series)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSummary(ctx context.Context, id model.MatchID) (*model.GameSummary, error) {
	data, err := s.client.Get(ctx, summaryKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSummaryNotFound
		}
		return nil, err
	}

	var summary model.GameSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *Storage) ListSummaries(ctx context.Context, series string, limit int) ([]*model.GameSummary, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	ids, err := s.client.ZRevRange(ctx, summariesForSeriesIndexKey(series), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.GameSummary{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = summaryKey(model.MatchID(id))
	}

	// Fetch all summaries at once using MGET
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	summaries := make([]*model.GameSummary, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Summary may have expired
		}
		var summary model.GameSummary
		if err := json.Unmarshal([]byte(val.(string)), &summary); err != nil {
			continue // Skip invalid data
		}
		summaries = append(summaries, &summary)
	}

	return summaries, nil
}

// Tally operations

func (s *Storage) RecordResult(ctx context.Context, series string, winner model.Team, numMoves int) error {
	key := tallyKey(series)

	pipe := s.client.TxPipeline()
	pipe.HIncrBy(ctx, key, fieldGames, 1)
	pipe.HIncrBy(ctx, key, fieldMoves, int64(numMoves))
	if winner == model.TeamNone {
		pipe.HIncrBy(ctx, key, fieldTies, 1)
	} else {
		pipe.HIncrBy(ctx, key, winsField(winner), 1)
	}
	pipe.SAdd(ctx, seriesIndexKey(), series)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetTally(ctx context.Context, series string) (*model.Tally, error) {
	fields, err := s.client.HGetAll(ctx, tallyKey(series)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, model.ErrTallyNotFound
	}

	tally := model.NewTally(series)
	for field, raw := range fields {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		switch {
		case field == fieldGames:
			tally.Games = n
		case field == fieldTies:
			tally.Ties = n
		case field == fieldMoves:
			tally.TotalMoves = n
		case strings.HasPrefix(field, "wins:"):
			team, err := model.ParseTeam(strings.TrimPrefix(field, "wins:"))
			if err != nil {
				return nil, err
			}
			tally.Wins[team] = n
		}
	}
	return tally, nil
}

func (s *Storage) ListSeries(ctx context.Context) ([]string, error) {
	series, err := s.client.SMembers(ctx, seriesIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(series)
	return series, nil
}

func (s *Storage) DeleteSeries(ctx context.Context, series string) error {
	indexKey := summariesForSeriesIndexKey(series)

	ids, err := s.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, summaryKey(model.MatchID(id)))
	}
	pipe.Del(ctx, indexKey, tallyKey(series))
	pipe.SRem(ctx, seriesIndexKey(), series)
	_, err = pipe.Exec(ctx)
	return err
}
