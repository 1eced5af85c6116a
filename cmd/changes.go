package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/bnema/p4runner/internal/domain"
	"github.com/spf13/cobra"
)

func newChangesCmd(app *app) *cobra.Command {
	var (
		profileName string
		max         int
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "changes [path...]",
		Short: "List submitted changelists",
		RunE: func(cmd *cobra.Command, args []string) error {
			queries, err := app.queriesFor(cmd.Context(), profileName)
			if err != nil {
				return err
			}

			queryArgs := []string{"-l"}
			if max > 0 {
				queryArgs = append(queryArgs, "-m", strconv.Itoa(max))
			}
			queryArgs = append(queryArgs, args...)

			var changes []domain.Change
			err = runQuerySpinner(cmd.Context(), cmd.ErrOrStderr(), "Querying changelists...", func(ctx context.Context) error {
				var queryErr error
				changes, queryErr = queries.Changes(ctx, queryArgs...)
				return queryErr
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(changes)
			}

			for _, change := range changes {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Change %d on %s by %s@%s", change.Number, change.Date, change.User, change.Client)
				if change.Status != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " *%s*", change.Status)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
				if change.Description != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\t%s\n", change.Description)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "Connection profile name")
	cmd.Flags().IntVarP(&max, "max", "m", 0, "Limit the number of changelists")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of formatted text")

	return cmd
}
