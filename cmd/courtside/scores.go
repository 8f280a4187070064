package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/courtsidelabs/courtside/api/scores"
)

// scoresCmd prints the current scoreboard
func scoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores",
		Short: "Show the league scoreboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache := scores.NewCache(scores.NewClient(), cfg.Scores.TTL)
			board := cache.Get(cmd.Context())

			fmt.Printf("%s\n\n", board.Label)
			if len(board.Games) == 0 {
				fmt.Println("No games scheduled.")
				return nil
			}
			for _, g := range board.Games {
				if g.HomePts != nil && g.AwayPts != nil {
					fmt.Printf("%s %d @ %s %d  (%s)\n",
						g.AwayTeamAbbr, *g.AwayPts, g.HomeTeamAbbr, *g.HomePts, g.StatusText)
				} else {
					fmt.Printf("%s @ %s  (%s)\n", g.AwayTeamAbbr, g.HomeTeamAbbr, g.StatusText)
				}
			}
			return nil
		},
	}
}
