package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/p4runner/internal/domain"
	"github.com/spf13/cobra"
)

func newTicketsCmd(app *app) *cobra.Command {
	var (
		profileName string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "List held authentication tickets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			queries, err := app.queriesFor(cmd.Context(), profileName)
			if err != nil {
				return err
			}

			var tickets []domain.Ticket
			err = runQuerySpinner(cmd.Context(), cmd.ErrOrStderr(), "Querying tickets...", func(ctx context.Context) error {
				var queryErr error
				tickets, queryErr = queries.Tickets(ctx)
				return queryErr
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(tickets)
			}

			for _, ticket := range tickets {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) %s\n", ticket.Name, ticket.User, ticket.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "Connection profile name")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of formatted text")

	return cmd
}
