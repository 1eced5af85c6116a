package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/bnema/p4runner/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newRunCmd(app *app) *cobra.Command {
	var (
		profileName string
		user        string
		password    string
		inputPath   string
		tagged      bool
	)

	cmd := &cobra.Command{
		Use:   "run <command> [args...]",
		Short: "Run a raw backend command through the session pool",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd.InOrStdin(), inputPath)
			if err != nil {
				return err
			}

			exec, err := app.executorFor(cmd.Context(), profileName)
			if err != nil {
				return err
			}

			packed, sizes := domain.PackArgs(args[1:]...)
			req := domain.Request{
				Command:       args[0],
				User:          user,
				Password:      password,
				Input:         input,
				Args:          packed,
				ArgSizes:      sizes,
				CorrelationID: domain.CorrelationID(uuid.NewString()),
				Tagged:        tagged,
			}

			printer := newStreamPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			initMicros := exec.ExecuteWith(cmd.Context(), req, printer)
			app.log.Debug().
				Str("command", req.Command).
				Int64("init_us", initMicros).
				Msg("command finished")

			if printer.errors > 0 {
				return fmt.Errorf("%s: command reported %d error(s)", args[0], printer.errors)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "Connection profile name (default: the profile marked default)")
	cmd.Flags().StringVar(&user, "user", "", "Override the session user for this command only")
	cmd.Flags().StringVar(&password, "password", "", "Override the session password for this command only")
	cmd.Flags().StringVar(&inputPath, "input", "", "Read command input from this file, or '-' for stdin")
	cmd.Flags().BoolVar(&tagged, "tagged", false, "Use the tagged protocol variant")

	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	switch path {
	case "":
		return nil, nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read command input from stdin: %w", err)
		}
		return data, nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read command input file: %w", err)
		}
		return data, nil
	}
}
