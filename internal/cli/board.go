package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/sequencegame/internal/services/board"
)

func newBoardCmd() *cobra.Command {
	var layoutFile string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Print the standard board, or check and print a custom layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := board.Standard()
			if layoutFile != "" {
				text, err := os.ReadFile(layoutFile)
				if err != nil {
					return fmt.Errorf("reading layout: %w", err)
				}
				b, err = board.FromLayout(board.ParseLayout(string(text)))
				if err != nil {
					return err
				}
			}

			if cfg.Output == "json" {
				NewOutput(cfg.Output).Print(board.ToLayout(b))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), board.Render(b))
			return nil
		},
	}

	cmd.Flags().StringVar(&layoutFile, "layout-file", "", "Layout file, one row per line")

	return cmd
}
