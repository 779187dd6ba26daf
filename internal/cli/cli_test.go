package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/sequencegame/internal/api/apierr"
	"github.com/mcoot/sequencegame/internal/api/middleware"
	"github.com/mcoot/sequencegame/internal/api/request"
	"github.com/mcoot/sequencegame/internal/api/response"
	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/board"
)

func TestParseSeat(t *testing.T) {
	tests := []struct {
		spec    string
		want    request.PlayerRequest
		wantErr bool
	}{
		{spec: "red", want: request.PlayerRequest{Team: "red"}},
		{spec: "alice:blue", want: request.PlayerRequest{ID: "alice", Team: "blue"}},
		{spec: "bot:green:network", want: request.PlayerRequest{ID: "bot", Team: "green", Bot: true, Strategy: "network"}},
		{spec: " bob : red ", want: request.PlayerRequest{ID: "bob", Team: "red"}},
		{spec: "bot:green:", wantErr: true},
		{spec: "a:b:c:d", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := parseSeat(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderBoardMatchesServerRendering(t *testing.T) {
	b := board.Standard()
	require.NoError(t, b.SetOccupant(model.Pos(1, 0), model.Chip(model.TeamRed)))
	require.NoError(t, b.SetOccupant(model.Pos(2, 3), model.Chip(model.TeamBlue)))
	require.NoError(t, b.Lock(model.Pos(2, 3), model.OrientationVertical))

	assert.Equal(t, board.Render(b), renderBoard(response.BoardFromModel(b)))
}

func TestSimulateSeats(t *testing.T) {
	opts := simulateOptions{red: "random", blue: "network"}
	seats := opts.seats()
	require.Len(t, seats, 2)
	assert.Equal(t, model.TeamRed, seats[0].Team)
	assert.Equal(t, "random", seats[0].Strategy)
	assert.Equal(t, model.TeamBlue, seats[1].Team)

	quiet := simulateOptions{}.factoryConfig()
	assert.Empty(t, quiet.StorageType)
	assert.False(t, quiet.Logger.Enabled(context.Background(), slog.LevelError))
	assert.True(t, simulateOptions{verbose: true}.factoryConfig().Logger.Enabled(context.Background(), slog.LevelDebug))
	assert.Equal(t, "redis", simulateOptions{redisURL: "redis://x:6379"}.factoryConfig().StorageType)
}

func TestClientSendsPlayerAndDecodesErrors(t *testing.T) {
	var gotPlayer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPlayer = r.Header.Get(middleware.PlayerHeader)
		apierr.WriteError(w, model.ErrNotPlayerTurn)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "alice")
	err := c.Post("/api/v1/matches/m/moves", request.MoveRequest{}, nil)
	require.Error(t, err)
	assert.Equal(t, "alice", gotPlayer)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierr.CodeNotYourTurn, apiErr.Code)
}

func TestPrintHandText(t *testing.T) {
	var buf bytes.Buffer
	out := &Output{format: "text", w: &buf}
	out.Print(response.Hand{PlayerID: "alice", Team: "red", Cards: []string{"AS", "J2H"}})

	assert.Equal(t, "Hand of alice (red):\n  [0] AS\n  [1] J2H\n", buf.String())
}

func TestReadEvents(t *testing.T) {
	stream := "event: connected\ndata: {}\n\n" +
		": keepalive\n\n" +
		"event: redraw\ndata: line1\ndata: line2\n\n" +
		"event: game-over\ndata: {}\n\n" +
		"event: redraw\ndata: never read\n\n"

	var names, data []string
	err := readEvents(strings.NewReader(stream), func(name, d string) bool {
		names = append(names, name)
		data = append(data, d)
		return name != "game-over"
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"connected", "redraw", "game-over"}, names)
	assert.Equal(t, "line1\nline2", data[1])
}

func TestPrintMatchEventText(t *testing.T) {
	saved := cfg
	defer func() { cfg = saved }()
	cfg = DefaultConfig()

	var buf bytes.Buffer
	printMatchEvent(&buf, "game-over",
		`{"type":"game_over","timestamp":"2026-01-02T03:04:05Z","payload":{"winner":"green","num_moves":41}}`)
	assert.Contains(t, buf.String(), "game over after 41 moves: green wins")

	buf.Reset()
	printMatchEvent(&buf, "redraw",
		`{"type":"redraw","player_id":"alice","payload":{"move_count":3,"current_turn":"bob"}}`)
	assert.Contains(t, buf.String(), "move 3 by alice, bob to play")
}
