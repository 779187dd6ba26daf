package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/sequencegame/internal/api/request"
	"github.com/mcoot/sequencegame/internal/api/response"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match commands",
	}

	cmd.AddCommand(newMatchCreateCmd())
	cmd.AddCommand(newMatchListCmd())
	cmd.AddCommand(newMatchShowCmd())
	cmd.AddCommand(newMatchHandCmd())
	cmd.AddCommand(newMatchMoveCmd())
	cmd.AddCommand(newMatchDeadCardCmd())
	cmd.AddCommand(newMatchOpeningsCmd())
	cmd.AddCommand(newMatchDeleteCmd())
	cmd.AddCommand(newMatchCatalogCmd())

	return cmd
}

// parseSeat reads a seat spec of the form "team", "id:team" or
// "id:team:strategy". A strategy makes the seat a bot.
func parseSeat(spec string) (request.PlayerRequest, error) {
	parts := strings.Split(spec, ":")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 1:
		return request.PlayerRequest{Team: parts[0]}, nil
	case 2:
		return request.PlayerRequest{ID: parts[0], Team: parts[1]}, nil
	case 3:
		if parts[2] == "" {
			return request.PlayerRequest{}, fmt.Errorf("seat %q: empty strategy", spec)
		}
		return request.PlayerRequest{ID: parts[0], Team: parts[1], Bot: true, Strategy: parts[2]}, nil
	default:
		return request.PlayerRequest{}, fmt.Errorf("seat %q: expected team, id:team or id:team:strategy", spec)
	}
}

func newMatchCreateCmd() *cobra.Command {
	var (
		seats  []string
		layout string
		series string
		seed   uint64
	)

	cmd := &cobra.Command{
		Use:   "create --seat alice:red --seat bot:blue:network",
		Short: "Create a match",
		Long: `Create a match with seats in turn order. Each --seat is "team",
"id:team" for a human seat, or "id:team:strategy" for a bot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.CreateMatchRequest{Layout: layout, Series: series, Seed: seed}
			for _, spec := range seats {
				p, err := parseSeat(spec)
				if err != nil {
					return err
				}
				req.Players = append(req.Players, p)
			}

			var result response.Match
			if err := client.Post("/api/v1/matches", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&seats, "seat", nil, "Seat spec, repeat in turn order")
	cmd.Flags().StringVar(&layout, "layout", "", "Board layout name")
	cmd.Flags().StringVar(&series, "series", "", "Results series")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Shuffle seed, 0 for random")
	_ = cmd.MarkFlagRequired("seat")

	return cmd
}

func newMatchListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List live matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []response.MatchListItem
			if err := client.Get("/api/v1/matches", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newMatchShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <match-id>",
		Short: "Show a match and its board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Match
			if err := client.Get("/api/v1/matches/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

// requirePlayer fails early for commands that act as a seat
func requirePlayer() error {
	if client.Player() == "" {
		return fmt.Errorf("--player (or SEQUENCE_PLAYER) is required")
	}
	return nil
}

func newMatchHandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hand <match-id>",
		Short: "Show your hand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePlayer(); err != nil {
				return err
			}
			path := fmt.Sprintf("/api/v1/matches/%s/hands/%s", url.PathEscape(args[0]), url.PathEscape(client.Player()))

			var result response.Hand
			if err := client.Get(path, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func parseInts(args []string, names ...string) ([]int, error) {
	out := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number: %q", names[i], arg)
		}
		out[i] = n
	}
	return out, nil
}

func newMatchMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <match-id> <x> <y> <hand-index>",
		Short: "Play the card at hand-index onto cell (x,y)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePlayer(); err != nil {
				return err
			}
			nums, err := parseInts(args[1:], "x", "y", "hand-index")
			if err != nil {
				return err
			}

			req := request.MoveRequest{X: nums[0], Y: nums[1], HandIndex: nums[2]}
			var result response.Match
			if err := client.Post(fmt.Sprintf("/api/v1/matches/%s/moves", url.PathEscape(args[0])), req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newMatchDeadCardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dead-card <match-id> <hand-index>",
		Short: "Swap a card that cannot be played anywhere",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePlayer(); err != nil {
				return err
			}
			nums, err := parseInts(args[1:], "hand-index")
			if err != nil {
				return err
			}

			req := request.DeadCardRequest{HandIndex: nums[0]}
			var result response.Match
			if err := client.Post(fmt.Sprintf("/api/v1/matches/%s/dead-card", url.PathEscape(args[0])), req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newMatchOpeningsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "openings <match-id> <team>",
		Short: "List cells that would complete a run for a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/matches/%s/openings/%s", url.PathEscape(args[0]), url.PathEscape(args[1]))

			var result response.Openings
			if err := client.Get(path, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newMatchDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <match-id>",
		Short: "Forget a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/matches/" + url.PathEscape(args[0])); err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage("Match deleted")
			return nil
		},
	}
}

func newMatchCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the layouts and bot strategies the server offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Catalog
			if err := client.Get("/api/v1/catalog", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
