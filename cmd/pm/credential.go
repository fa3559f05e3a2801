package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/khsu/projectms/internal/credential"
)

func credentialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Manage secrets in the system keyring",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set smtp-password",
		Short: "Store the SMTP password in the system keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] != credential.SMTPPasswordKey {
				return fmt.Errorf("unknown credential %q", args[0])
			}

			fmt.Fprint(os.Stderr, "Password: ")
			pw, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}

			if err := credential.Set(credential.SMTPPasswordKey, string(pw)); err != nil {
				return err
			}
			fmt.Println("credential stored")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete smtp-password",
		Short: "Remove the SMTP password from the system keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] != credential.SMTPPasswordKey {
				return fmt.Errorf("unknown credential %q", args[0])
			}
			if err := credential.Delete(credential.SMTPPasswordKey); err != nil {
				return err
			}
			fmt.Println("credential removed")
			return nil
		},
	})

	return cmd
}
