package cmd

import (
	"errors"
	"fmt"

	renderhistory "github.com/bnema/p4runner/internal/adapters/render/history"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently run commands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.history == nil {
				return errors.New("command history is disabled")
			}

			records, err := app.history.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("load command history: %w", err)
			}

			rendered, err := renderhistory.Render(records, renderhistory.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render history: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of records to show")

	return cmd
}
