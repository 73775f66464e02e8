package commands

import (
	"fmt"

	"github.com/benvon/board-stats/internal/stats"
	"github.com/spf13/cobra"
)

// NewDoneTasksCmd creates the done-tasks command
func NewDoneTasksCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "done-tasks",
		Short: "Show current done and pending counts per owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService(cliLogger(debug, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			summary, err := svc.DoneTasks(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch done tasks: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Log Trello requests to stderr")
	return cmd
}

// NewDailyCmd creates the daily command
func NewDailyCmd() *cobra.Command {
	var (
		days  int
		table bool
		debug bool
	)

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Show completions per day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 0 {
				return fmt.Errorf("--days must not be negative")
			}
			svc, err := loadService(cliLogger(debug, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			series, err := svc.DailyStats(cmd.Context(), days)
			if err != nil {
				return fmt.Errorf("failed to fetch daily statistics: %w", err)
			}
			if table {
				return printSeries(cmd.OutOrStdout(), series, dayLabel)
			}
			return printJSON(cmd.OutOrStdout(), series)
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Window length in days (0 uses DAILY_WINDOW_DAYS)")
	cmd.Flags().BoolVar(&table, "table", false, "Print a table with readable dates instead of JSON")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log Trello requests to stderr")
	return cmd
}

// NewWeeklyCmd creates the weekly command
func NewWeeklyCmd() *cobra.Command {
	var (
		weeks int
		table bool
		debug bool
	)

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Show completions per ISO week",
		RunE: func(cmd *cobra.Command, args []string) error {
			if weeks < 0 {
				return fmt.Errorf("--weeks must not be negative")
			}
			svc, err := loadService(cliLogger(debug, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			series, err := svc.WeeklyStats(cmd.Context(), weeks)
			if err != nil {
				return fmt.Errorf("failed to fetch weekly statistics: %w", err)
			}
			if table {
				return printSeries(cmd.OutOrStdout(), series, stats.FormatWeekForDisplay)
			}
			return printJSON(cmd.OutOrStdout(), series)
		},
	}

	cmd.Flags().IntVar(&weeks, "weeks", 0, "Window length in weeks (0 uses WEEKLY_WINDOW_WEEKS)")
	cmd.Flags().BoolVar(&table, "table", false, "Print a table with readable week labels instead of JSON")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log Trello requests to stderr")
	return cmd
}

// NewStatisticsCmd creates the statistics command
func NewStatisticsCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "statistics",
		Short: "Show daily and weekly completions from a single fetch",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService(cliLogger(debug, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			result, err := svc.Statistics(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch statistics: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Log Trello requests to stderr")
	return cmd
}
