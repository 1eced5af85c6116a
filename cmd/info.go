package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/p4runner/internal/domain"
	"github.com/spf13/cobra"
)

func newInfoCmd(app *app) *cobra.Command {
	var (
		profileName string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show server and connection details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			queries, err := app.queriesFor(cmd.Context(), profileName)
			if err != nil {
				return err
			}

			var info domain.ServerInfo
			err = runQuerySpinner(cmd.Context(), cmd.ErrOrStderr(), "Querying server info...", func(ctx context.Context) error {
				var queryErr error
				info, queryErr = queries.Info(ctx)
				return queryErr
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "User name: %s\n", info.UserName)
			_, _ = fmt.Fprintf(out, "Client name: %s\n", info.ClientName)
			_, _ = fmt.Fprintf(out, "Client root: %s\n", info.ClientRoot)
			_, _ = fmt.Fprintf(out, "Server address: %s\n", info.ServerAddress)
			_, _ = fmt.Fprintf(out, "Server version: %s\n", info.ServerVersion)
			return nil
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "Connection profile name")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of formatted text")

	return cmd
}
