package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func remindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remind [task-id]",
		Short: "Send a reminder for a single task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			outcome, err := app.engine.SendTaskReminder(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("task %s: %s\n", args[0], outcome)
			return nil
		},
	}
}
