package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/cohortplan/internal/output"
	"github.com/rgehrsitz/cohortplan/internal/scheduler"
)

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [config-file]",
		Short: "Schedule every cohort and write the plan files",
		Long: `Loads the configuration and roster, schedules each cohort in order and writes
one CSV per cohort plus the consolidated plan.csv to the output directory.
The report in the selected format is printed to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, runCfg, pop, err := loadInputs(cmd, args[0])
			if err != nil {
				return err
			}

			format := cfg.Output.Format
			if f, _ := cmd.Flags().GetString("format"); f != "" {
				format = f
			}
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown output format %q (available: %v)", format, output.AvailableFormatterNames())
			}
			dir := cfg.Output.Dir
			if o, _ := cmd.Flags().GetString("out"); o != "" {
				dir = o
			}

			engine := scheduler.NewEngine()
			engine.SetLogger(newLogger(cmd, "scheduler"))
			result, err := engine.Run(cmd.Context(), pop, runCfg)
			if err != nil {
				return fmt.Errorf("scheduling failed: %w", err)
			}

			if noFiles, _ := cmd.Flags().GetBool("no-files"); !noFiles {
				paths, err := output.WriteCohortFiles(dir, result)
				if err != nil {
					return err
				}
				newLogger(cmd, "output").Infof("wrote %d files to %s", len(paths), dir)
			}

			data, err := formatter.Format(result)
			if err != nil {
				return fmt.Errorf("failed to format %s report: %w", formatter.Name(), err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "", "Report format (console, csv, json, yaml); overrides output.format")
	cmd.Flags().StringP("out", "o", "", "Output directory; overrides output.dir")
	cmd.Flags().Int("year", 0, "Target year; overrides target_year")
	cmd.Flags().Bool("no-files", false, "Print the report only, do not write plan files")
	return cmd
}
