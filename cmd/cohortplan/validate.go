package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/cohortplan/internal/scheduler"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate a configuration and check cohort capacity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, runCfg, pop, err := loadInputs(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration valid: target year %d, %d cohorts, %d holidays\n",
				runCfg.TargetYear, len(runCfg.Cohorts), runCfg.Holidays.Len())
			fmt.Fprintf(out, "Roster: %d people, %d with a valid birth date\n", pop.Len(), pop.ValidBirthDates())

			failed := 0
			for i, rule := range runCfg.Cohorts {
				pool := scheduler.EligiblePool(pop, rule)
				line := fmt.Sprintf("  %d. %s (%s, %d visits): %d eligible", i+1, rule.Label(), rule.Mode(), rule.VisitCount, len(pool))
				if !rule.AutoDistribute() {
					line += fmt.Sprintf(", %d planned", rule.PlannedTotal())
					if rule.PlannedTotal() > len(pool) {
						line += " - CAPACITY EXCEEDED"
						failed++
					}
				}
				fmt.Fprintln(out, line)
			}
			if failed > 0 {
				return fmt.Errorf("%d cohorts plan more people than they have: %w", failed, scheduler.ErrCapacityExceeded)
			}
			return nil
		},
	}
	cmd.Flags().Int("year", 0, "Target year; overrides target_year")
	return cmd
}
