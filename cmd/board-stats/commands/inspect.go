package commands

import (
	"fmt"

	"github.com/benvon/board-stats/internal/models"
	"github.com/spf13/cobra"
)

// NewCardsCmd creates the cards command
func NewCardsCmd() *cobra.Command {
	var (
		filter string
		debug  bool
	)

	cmd := &cobra.Command{
		Use:   "cards",
		Short: "List the cards on the board",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := loadClient(cliLogger(debug, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			cards, err := client.BoardCards(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("failed to fetch board cards: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), cards)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "all", "Trello card filter (all, open, closed, visible)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log Trello requests to stderr")
	return cmd
}

// NewCardCmd creates the card command
func NewCardCmd() *cobra.Command {
	var (
		actions bool
		debug   bool
	)

	cmd := &cobra.Command{
		Use:   "card <card-id>",
		Short: "Show a card, optionally with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := loadClient(cliLogger(debug, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			card, err := client.Card(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch card %s: %w", args[0], err)
			}
			if !actions {
				return printJSON(cmd.OutOrStdout(), card)
			}

			comments, err := client.CardActions(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch actions for card %s: %w", args[0], err)
			}
			return printJSON(cmd.OutOrStdout(), models.CardWithActions{Card: *card, Actions: comments})
		},
	}

	cmd.Flags().BoolVar(&actions, "actions", false, "Include the card's comment actions")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log Trello requests to stderr")
	return cmd
}

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var (
		actions bool
		debug   bool
	)

	cmd := &cobra.Command{
		Use:   "list <list-id>...",
		Short: "Show lists with their cards",
		Long:  "Show one or more lists with their cards. With --actions, each card also carries its comment actions.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := loadClient(cliLogger(debug, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			if !actions {
				lists, err := client.ListsWithCards(cmd.Context(), args)
				if err != nil {
					return fmt.Errorf("failed to fetch lists: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), lists)
			}

			result := make(map[string][]models.CardWithActions, len(args))
			for _, id := range args {
				cards, err := client.CardsWithActions(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("failed to fetch cards for list %s: %w", id, err)
				}
				result[id] = cards
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVar(&actions, "actions", false, "Include comment actions for every card")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log Trello requests to stderr")
	return cmd
}
