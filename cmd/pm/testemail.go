package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func testEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test-email [address]",
		Short: "Send a test email to confirm the SMTP configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			err = app.notifier.Send(context.Background(), args[0],
				"Test Email",
				"This is a test email confirming the mail service is working.",
			)
			if err != nil {
				return err
			}

			fmt.Printf("test email sent to %s\n", args[0])
			return nil
		},
	}
}
