package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/cohortplan/internal/calendar"
)

func calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar [year]",
		Short: "Show the working days of a year",
		Long:  "Prints the number of working days per month, or the days of one month with --month.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil || year < 1000 || year > 9999 {
				return fmt.Errorf("year must have four digits, got %q", args[0])
			}

			dates, _ := cmd.Flags().GetStringSlice("holidays")
			holidays, err := calendar.ParseHolidays(dates)
			if err != nil {
				return err
			}
			if name, _ := cmd.Flags().GetString("holiday-calendar"); name != "" {
				named, err := calendar.NamedHolidays(name, year)
				if err != nil {
					return err
				}
				holidays.Merge(named)
			}
			saturday, _ := cmd.Flags().GetBool("saturday-working")
			cal := calendar.Calendar{Holidays: holidays, SaturdayWorking: saturday}

			out := cmd.OutOrStdout()
			month, _ := cmd.Flags().GetInt("month")
			if month != 0 {
				if month < 1 || month > 12 {
					return fmt.Errorf("month must be between 1 and 12, got %d", month)
				}
				var days []string
				for d := range cal.WorkingDaysOfMonth(year, time.Month(month)) {
					days = append(days, d.Format("Mon 2006-01-02"))
				}
				fmt.Fprintf(out, "%s %d: %d working days\n", time.Month(month), year, len(days))
				if len(days) > 0 {
					fmt.Fprintln(out, strings.Join(days, "\n"))
				}
				return nil
			}

			total := 0
			for m := time.January; m <= time.December; m++ {
				n := len(cal.WorkingDays(year, m))
				total += n
				fmt.Fprintf(out, "%-10s %3d\n", m, n)
			}
			fmt.Fprintf(out, "%-10s %3d\n", "Total", total)
			return nil
		},
	}
	cmd.Flags().Int("month", 0, "Month to list (1-12)")
	cmd.Flags().Bool("saturday-working", false, "Count Saturdays as working days")
	cmd.Flags().StringSlice("holidays", nil, "Holiday dates (YYYY-MM-DD), comma separated")
	cmd.Flags().String("holiday-calendar", "", "Named public holiday calendar (us)")
	return cmd
}
