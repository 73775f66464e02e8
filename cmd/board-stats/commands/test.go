package commands

import (
	"fmt"

	"github.com/benvon/board-stats/internal/stats"
	"github.com/benvon/board-stats/internal/trello"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewTestCmd creates the test command
func NewTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test Trello credentials",
		Long:  "Test the configured Trello credentials by fetching the board and its lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := loadClient(zap.NewNop())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			b, err := client.Board(cmd.Context())
			if err != nil {
				if trello.IsUnauthorized(err) {
					return fmt.Errorf("trello rejected the credentials: %w", err)
				}
				if trello.IsRateLimited(err) {
					return fmt.Errorf("trello rate limit reached, try again later: %w", err)
				}
				if trello.IsNotFound(err) {
					return fmt.Errorf("board %s not found: %w", client.BoardID(), err)
				}
				return fmt.Errorf("failed to fetch board: %w", err)
			}
			fmt.Fprintf(out, "✓ Board accessible: %s (%s)\n", b.Name, b.ID)

			lists, err := client.BoardLists(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch lists: %w", err)
			}
			fmt.Fprintf(out, "✓ %d lists found\n", len(lists))
			for _, l := range lists {
				c := stats.Classify(l.Name)
				owner := string(c.Owner)
				if owner == "" {
					owner = "-"
				}
				fmt.Fprintf(out, "  %-30s owner=%-5s done=%-5t pending=%t\n", l.Name, owner, c.Done, c.Pending)
			}

			fmt.Fprintln(out, "\n✓ Trello configuration test passed")
			return nil
		},
	}

	return cmd
}
