package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "p4r",
		Short:         "p4r: run Perforce commands over pooled sessions",
		Long:          "p4r keeps a bounded pool of connected Perforce sessions per protocol variant, runs commands with per-call credential overrides, retries transparently when a session drops mid-command, and records a local history of every run.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newChangesCmd(app),
		newInfoCmd(app),
		newTicketsCmd(app),
		newHistoryCmd(app),
		newProfileCmd(app),
	)

	return rootCmd
}
