package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khsu/projectms/internal/reminder"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run one reminder cycle and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			cycle, err := app.engine.ScanAndNotify(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("scanned %d task(s): %d sent, %d skipped (no email), %d skipped (duplicate), %d failed\n",
				len(cycle.Results),
				cycle.Count(reminder.OutcomeSent),
				cycle.Count(reminder.OutcomeSkippedNoEmail),
				cycle.Count(reminder.OutcomeSkippedDuplicate),
				cycle.Count(reminder.OutcomeFailed),
			)

			for _, r := range cycle.Results {
				if r.Outcome == reminder.OutcomeFailed && r.Err != nil {
					fmt.Printf("  failed: %s (%s): %v\n", r.Title, r.TaskID, r.Err)
				}
			}

			return nil
		},
	}
}
