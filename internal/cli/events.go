package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/sequencegame/internal/api/middleware"
	"github.com/mcoot/sequencegame/internal/model"
)

func newEventsCmd() *cobra.Command {
	var untilOver bool

	cmd := &cobra.Command{
		Use:   "events <match-id>",
		Short: "Watch a match as it is played",
		Long: `Stream the match's events: a redraw after every move or dead card swap,
and game-over when the match ends. A watcher that joins late first gets
the latest redraw.

Press Ctrl+C to stop watching.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchMatch(ctx, args[0], untilOver, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&untilOver, "until-over", false, "Stop once the game-over event arrives")

	return cmd
}

// MatchEvent is one event read from the stream
type MatchEvent struct {
	Name      string          `json:"event"`
	PlayerID  string          `json:"player_id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

func watchMatch(ctx context.Context, matchID string, untilOver bool, w io.Writer) error {
	endpoint := strings.TrimSuffix(cfg.ServerURL, "/") + "/api/v1/matches/" + url.PathEscape(matchID) + "/events"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if cfg.Player != "" {
		req.Header.Set(middleware.PlayerHeader, cfg.Player)
	}

	// Streams never time out on their own
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	err = readEvents(resp.Body, func(name, data string) bool {
		if name == "connected" {
			return true
		}
		printMatchEvent(w, name, data)
		return !(untilOver && name == "game-over")
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}
	return nil
}

// readEvents parses SSE frames from r and hands each to fn until fn returns
// false or the stream ends. Comment lines (keepalives) are skipped.
func readEvents(r io.Reader, fn func(name, data string) bool) error {
	scanner := bufio.NewScanner(r)
	var name string
	var data []string

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = append(data, strings.TrimPrefix(line, "data: "))
		case line == "":
			if name != "" && !fn(name, strings.Join(data, "\n")) {
				return nil
			}
			name, data = "", nil
		}
	}
	return scanner.Err()
}

func printMatchEvent(w io.Writer, name, data string) {
	var evt MatchEvent
	if err := json.Unmarshal([]byte(data), &evt); err != nil {
		_, _ = fmt.Fprintf(w, "%s: %s\n", name, data)
		return
	}
	evt.Name = name

	if cfg.Output == "json" {
		line, _ := json.Marshal(evt)
		_, _ = fmt.Fprintln(w, string(line))
		return
	}

	stamp := evt.Timestamp.Local().Format("15:04:05")
	switch name {
	case "redraw":
		var p model.RedrawPayload
		_ = json.Unmarshal(evt.Payload, &p)
		_, _ = fmt.Fprintf(w, "[%s] move %d by %s, %s to play\n", stamp, p.MoveCount, evt.PlayerID, p.CurrentTurn)
	case "game-over":
		var p model.GameOverPayload
		_ = json.Unmarshal(evt.Payload, &p)
		result := "tie"
		if p.Winner != model.TeamNone {
			result = p.Winner.String() + " wins"
		}
		_, _ = fmt.Fprintf(w, "[%s] game over after %d moves: %s\n", stamp, p.NumMoves, result)
	default:
		_, _ = fmt.Fprintf(w, "[%s] %s\n", stamp, name)
	}
}
