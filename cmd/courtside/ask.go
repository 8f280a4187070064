package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// askCmd answers a single question and exits
func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a one-shot NBA question",
		Example: `  courtside ask "Who leads the league in assists?"
  courtside ask "Is Tatum playing tonight and what's his hit rate over 24.5?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := buildApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			question := strings.Join(args, " ")
			answer := a.router.Route(ctx, question, nil)

			fmt.Printf("[%s]\n\n%s\n", answer.Category, answer.Answer)
			if answer.SQL != "" {
				fmt.Printf("\nSQL:\n%s\n", answer.SQL)
			}
			if len(answer.Sources) > 0 {
				fmt.Println("\nSources:")
				for _, s := range answer.Sources {
					fmt.Printf("  - %s (%s)\n    %s\n", s.Title, s.Source, s.URL)
				}
			}
			return nil
		},
	}
}
