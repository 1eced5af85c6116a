package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/p4runner/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage connection profiles",
	}

	cmd.AddCommand(
		newProfileSetCmd(app),
		newProfileListCmd(app),
		newProfileSetPasswordCmd(app),
	)

	return cmd
}

func newProfileSetCmd(app *app) *cobra.Command {
	var (
		address    string
		user       string
		client     string
		secretRef  string
		setDefault bool
	)

	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Create or update a connection profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := domain.Profile{
				Name:      domain.ProfileName(args[0]),
				Address:   address,
				User:      user,
				Client:    client,
				SecretRef: secretRef,
				Default:   setDefault,
			}

			if err := app.profiles.Save(cmd.Context(), profile); err != nil {
				return fmt.Errorf("save profile %q: %w", args[0], err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %s\n", profile.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Server address, e.g. perforce:1666")
	cmd.Flags().StringVar(&user, "user", "", "Default user for this profile")
	cmd.Flags().StringVar(&client, "client", "", "Default client workspace")
	cmd.Flags().StringVar(&secretRef, "secret-ref", "", "Credential store ref holding the password")
	cmd.Flags().BoolVar(&setDefault, "default", false, "Make this the default profile")
	_ = cmd.MarkFlagRequired("address")

	return cmd
}

func newProfileListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List connection profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := app.profiles.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list profiles: %w", err)
			}

			if len(profiles) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No profiles configured.")
				return nil
			}

			for _, profile := range profiles {
				marker := " "
				if profile.Default {
					marker = "*"
				}
				details := []string{profile.Address}
				if profile.User != "" {
					details = append(details, "user="+profile.User)
				}
				if profile.Client != "" {
					details = append(details, "client="+profile.Client)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\n", marker, profile.Name, strings.Join(details, " "))
			}
			return nil
		},
	}
}

func newProfileSetPasswordCmd(app *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "set-password <name>",
		Short: "Store the password for a profile in the credential store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := app.profiles.GetByName(cmd.Context(), domain.ProfileName(args[0]))
			if err != nil {
				return fmt.Errorf("load profile %q: %w", args[0], err)
			}

			ref := profile.SecretRef
			if ref == "" {
				ref = "p4runner/" + string(profile.Name)
				profile.SecretRef = ref
				if err := app.profiles.Save(cmd.Context(), profile); err != nil {
					return fmt.Errorf("record credential ref on profile %q: %w", profile.Name, err)
				}
			}

			if err := app.creds.Put(cmd.Context(), ref, password); err != nil {
				return fmt.Errorf("store credential %q: %w", ref, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored credential for profile %s under %s\n", profile.Name, ref)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password value to store")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
