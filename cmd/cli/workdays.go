package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"evidencija/domain/calendar"
)

func newWorkdaysCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "workdays",
		Short: "List the working days (Monday to Friday) of a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := time.Now()
			if month != "" {
				var err error
				if ref, err = calendar.ParseMonth(month, time.Local); err != nil {
					return err
				}
			}

			days := calendar.WorkingDays(ref)
			out := cmd.OutOrStdout()
			for _, d := range days {
				fmt.Fprintf(out, "%s  %s\n", d.ISO, calendar.FormatHR(d.Date))
			}
			fmt.Fprintf(out, "%s: %d working days\n", calendar.MonthLabel(ref), len(days))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month as YYYY-MM (default: current month)")

	return cmd
}
