package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/profile-stats/internal/usecase"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregates GitHub user activity and outputs it as JSON",
	Long:  `Aggregates the contribution counts of a GitHub user, computes the rank and outputs the result in JSON format. No file is written.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger, cfg := setup(cmd)
		defer logger.Sync() //nolint:errcheck

		cardCfg := cardConfig(cmd, cfg)
		showQuota, _ := cmd.Flags().GetBool("show-quota")

		res, err := newGenerator(logger, cardCfg).Generate(ctx, cardCfg.Login, usecase.CardOptions{ShowQuota: showQuota, SkipRender: true})
		if err != nil {
			fail("❌ Failed to fetch GitHub stats", err)
		}
		printJSON(res)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringP("user", "u", "", "GitHub login (overrides GITHUB_USERNAME)")
	statsCmd.Flags().Bool("show-quota", false, "Also report the remaining GraphQL API quota")
}
