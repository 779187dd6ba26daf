package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/sequencegame/internal/api/response"
)

func newResultsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "results [series]",
		Short: "Show the tally and recent games of a series, or list series",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if len(args) == 0 {
				var result response.Series
				if err := client.Get("/api/v1/results", &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			var result response.Results
			path := fmt.Sprintf("/api/v1/results/%s?limit=%d", url.PathEscape(args[0]), limit)
			if err := client.Get(path, &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of recent games to show")

	cmd.AddCommand(&cobra.Command{
		Use:   "game <match-id>",
		Short: "Show the summary of a completed game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameSummary
			if err := client.Get("/api/v1/summaries/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <series>",
		Short: "Delete a series and its games",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/results/" + url.PathEscape(args[0])); err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage("Series deleted")
			return nil
		},
	})

	return cmd
}
