package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/cohortplan/internal/config"
	"github.com/rgehrsitz/cohortplan/internal/domain"
	"github.com/rgehrsitz/cohortplan/internal/logger"
	"github.com/rgehrsitz/cohortplan/internal/roster"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cohortplan",
		Short:         "Cohort visit scheduling CLI",
		Long:          "Plans a year of visits for a population roster split into birth-year cohorts, on working days only.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("debug", false, "Enable debug logging")

	root.AddCommand(planCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(calendarCmd())
	root.AddCommand(versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cohortplan %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// newLogger builds the component logger honoring the persistent --debug flag
func newLogger(cmd *cobra.Command, component string) logger.Logger {
	dbg, _ := cmd.Flags().GetBool("debug")
	return logger.NewZerologLogger(component, logger.Options{Out: cmd.ErrOrStderr(), Debug: dbg})
}

// loadInputs reads the configuration and the roster it names
func loadInputs(cmd *cobra.Command, path string) (*config.File, *domain.RunConfig, *domain.Population, error) {
	if !fileExists(path) {
		return nil, nil, nil, fmt.Errorf("config file not found: %s", path)
	}
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, nil, nil, err
	}
	if year, _ := cmd.Flags().GetInt("year"); year != 0 {
		cfg.TargetYear = year
		if err := config.NewInputParser().ValidateConfiguration(cfg); err != nil {
			return nil, nil, nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	runCfg, err := cfg.ToRunConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	loader := roster.NewLoader(cfg.RosterOptions())
	loader.Logger = newLogger(cmd, "roster")
	pop, _, err := loader.LoadFile(cfg.Roster.Path)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, runCfg, pop, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
