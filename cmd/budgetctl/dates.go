package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wzsamuels/budget-project/internal/calendar"
	"github.com/wzsamuels/budget-project/internal/recurrence"
)

func datesCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dates",
		Short: "List the occurrences of a schedule",
		Long: `Prints every date after --start, up to and including --until, on which a
schedule with the given frequency falls. --start itself is not printed.`,
		Example: "  budgetctl dates --frequency biweekly --start 2024-01-05 --until 2024-12-31",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDates(cmd, v)
		},
	}

	cmd.Flags().StringP("frequency", "f", "", "WEEKLY, BIWEEKLY, SEMIMONTHLY, MONTHLY or YEARLY")
	cmd.Flags().String("start", "", "Anchor date (YYYY-MM-DD)")
	cmd.Flags().String("until", "", "Last date to consider (YYYY-MM-DD, default Dec 31 of the start year)")

	_ = v.BindPFlag("dates.frequency", cmd.Flags().Lookup("frequency"))
	_ = v.BindPFlag("dates.start", cmd.Flags().Lookup("start"))
	_ = v.BindPFlag("dates.until", cmd.Flags().Lookup("until"))

	return cmd
}

func runDates(cmd *cobra.Command, v *viper.Viper) error {
	freq, err := recurrence.ParseFrequency(v.GetString("dates.frequency"))
	if err != nil {
		return err
	}

	start, err := calendar.Parse(v.GetString("dates.start"))
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}

	until := start.EndOfYear()
	if raw := v.GetString("dates.until"); raw != "" {
		if until, err = calendar.Parse(raw); err != nil {
			return fmt.Errorf("invalid --until: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	for d := range recurrence.OccurrencesUntil(start, freq, until) {
		fmt.Fprintln(out, d)
	}
	return nil
}
