package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naka-gawa/profile-stats/internal/config"
	"github.com/naka-gawa/profile-stats/internal/domain"
	"github.com/naka-gawa/profile-stats/internal/gateway"
	"github.com/naka-gawa/profile-stats/internal/rank"
	"github.com/naka-gawa/profile-stats/internal/usecase"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Renders the GitHub stats card as an SVG file",
	Long: `Fetches the contribution counts of a GitHub user, ranks them and writes
a 495x195 SVG stats card to the output path.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger, cfg := setup(cmd)
		defer logger.Sync() //nolint:errcheck

		cardCfg := cardConfig(cmd, cfg)
		hideRank, _ := cmd.Flags().GetBool("hide-rank")
		showQuota, _ := cmd.Flags().GetBool("show-quota")
		asJSON, _ := cmd.Flags().GetBool("json")

		if !asJSON {
			fmt.Printf("📊 Fetching stats for %s...\n", cardCfg.Login)
		}
		generator := newGenerator(logger, cardCfg)
		res, err := generator.Publish(ctx, cardCfg.Login, gateway.NewLocalFS(), cardCfg.OutputPath,
			usecase.CardOptions{HideRank: hideRank, ShowQuota: showQuota})
		if err != nil {
			fail("❌ Failed to generate stats card", err)
		}

		if asJSON {
			printJSON(res)
			return
		}
		printSummary(res)
		fmt.Printf("✅ Stats SVG saved to %s\n", cardCfg.OutputPath)
	},
}

// cardConfig applies the command flags over the loaded configuration and validates the result.
func cardConfig(cmd *cobra.Command, cfg config.Config) config.Card {
	c := cfg.Card
	if user, _ := cmd.Flags().GetString("user"); user != "" {
		c.Login = user
	}
	if cmd.Flags().Lookup("output") != nil {
		if output, _ := cmd.Flags().GetString("output"); output != "" {
			c.OutputPath = output
		}
	}
	if err := c.Validate(); err != nil {
		fail("Error", err)
	}
	return c
}

// newGenerator wires the GitHub gateway into the card use case.
func newGenerator(logger *zap.Logger, c config.Card) *usecase.CardGenerator {
	githubGateway, err := gateway.NewGitHubGateway(c.Token, logger, gateway.WithRateLimitWait(c.RateLimitWait))
	if err != nil {
		fail("Failed to create GitHub gateway", err)
	}
	return usecase.NewCardGenerator(githubGateway, logger)
}

func printSummary(res *usecase.CardResult) {
	s := res.Card.Stats
	fmt.Printf("  ⭐ Stars: %d\n", s.Stars)
	fmt.Printf("  📝 Commits: %d\n", s.Commits)
	fmt.Printf("  🔀 PRs: %d\n", s.PullRequests)
	fmt.Printf("  🔴 Issues: %d\n", s.Issues)
	fmt.Printf("  📦 Contributed to: %d\n", s.ContributedTo)
	fmt.Printf("  🏅 Rank: %s (score: %.2f)\n", res.Rank.Label, rank.Round(res.Rank.Score, 2))
	if q := res.Quota; q != nil {
		fmt.Printf("  ⏳ API quota: %d/%d (resets %s)\n", q.Remaining, q.Limit, q.ResetAt.Format("15:04:05 MST"))
	}
}

// printJSON writes the stats, rank and quota as pretty-printed JSON to stdout.
func printJSON(res *usecase.CardResult) {
	out := struct {
		Stats domain.RawStats   `json:"stats"`
		Rank  domain.RankResult `json:"rank"`
		Quota *domain.Quota     `json:"quota,omitempty"`
	}{res.Card.Stats, res.Rank, res.Quota}

	jsonData, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fail("Failed to marshal results to JSON", err)
	}
	fmt.Println(string(jsonData))
}

func init() {
	rootCmd.AddCommand(cardCmd)
	cardCmd.Flags().StringP("user", "u", "", "GitHub login (overrides GITHUB_USERNAME)")
	cardCmd.Flags().StringP("output", "o", "", "SVG output path (overrides OUTPUT_PATH)")
	cardCmd.Flags().Bool("hide-rank", false, "Leave the rank ring off the card")
	cardCmd.Flags().Bool("show-quota", false, "Also report the remaining GraphQL API quota")
	cardCmd.Flags().Bool("json", false, "Print the stats and rank as JSON instead of a summary")
}
