package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timbercreek/coffee-connect/pkg/core/services"
)

// LeaderboardCmd creates the leaderboard command
func LeaderboardCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show community members ranked by points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := services.Leaderboard(app.Ctx, app.Database)
			if err != nil {
				return fmt.Errorf("failed to load leaderboard: %w", err)
			}

			fmt.Printf("\n🏆 Leaderboard (%d members):\n\n", len(users))
			fmt.Printf("%-5s  %-24s  %-8s\n", "Rank", "Name", "Points")
			fmt.Println("-----  ------------------------  --------")
			for i, u := range users {
				fmt.Printf("%-5d  %-24s  %-8d\n", i+1, u.Name, u.Points)
			}
			fmt.Println()

			return nil
		},
	}
}
