package main

import (
	"fmt"
	"os"

	"github.com/benvon/board-stats/cmd/board-stats/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:           "board-stats",
		Short:         "Query Trello board statistics",
		Long:          "CLI tool that computes the dashboard statistics straight from Trello and prints them as JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewDoneTasksCmd())
	rootCmd.AddCommand(commands.NewDailyCmd())
	rootCmd.AddCommand(commands.NewWeeklyCmd())
	rootCmd.AddCommand(commands.NewStatisticsCmd())
	rootCmd.AddCommand(commands.NewCardsCmd())
	rootCmd.AddCommand(commands.NewCardCmd())
	rootCmd.AddCommand(commands.NewListCmd())
	rootCmd.AddCommand(commands.NewConfigCmd())
	rootCmd.AddCommand(commands.NewTestCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
