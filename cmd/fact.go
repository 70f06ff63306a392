package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/profile-stats/internal/facts"
	"github.com/naka-gawa/profile-stats/internal/gateway"
	"github.com/naka-gawa/profile-stats/internal/usecase"
)

var factCmd = &cobra.Command{
	Use:   "fact",
	Short: "Puts a random computer science fact into the README",
	Long: `Replaces the "- ⚡ Fun fact **...**" line of a README with a random fact.
When the line is missing it is inserted after the anchor line.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger, cfg := setup(cmd)
		defer logger.Sync() //nolint:errcheck

		factCfg := cfg.Fact
		if readme, _ := cmd.Flags().GetString("readme"); readme != "" {
			factCfg.ReadmePath = readme
		}
		if anchor, _ := cmd.Flags().GetString("anchor"); anchor != "" {
			factCfg.Anchor = anchor
		}
		if factsFile, _ := cmd.Flags().GetString("facts-file"); factsFile != "" {
			factCfg.FactsFile = factsFile
		}
		if err := factCfg.Validate(); err != nil {
			fail("Error", err)
		}

		catalog := facts.Default()
		if factCfg.FactsFile != "" {
			var err error
			catalog, err = facts.Load(factCfg.FactsFile)
			if err != nil {
				fail("Failed to load facts", err)
			}
		}

		seed, _ := cmd.Flags().GetUint64("seed")
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		r := rand.New(rand.NewPCG(seed, seed>>1|1))

		rotator := usecase.NewFactRotator(catalog, facts.NewPatcher(factCfg.Anchor), gateway.NewLocalFS(), r, logger)
		rotation, err := rotator.Rotate(factCfg.ReadmePath)
		if err != nil {
			fail("Failed to update README", err)
		}

		if rotation.Outcome == facts.Unchanged {
			fmt.Fprintf(os.Stderr, "⚠️  Neither the fun fact line nor the anchor %q was found in %s; nothing written\n",
				factCfg.Anchor, rotation.Path)
			return
		}
		fmt.Printf("✅ README %s (line %d) with fact: %s\n", rotation.Outcome, rotation.Line, rotation.Fact)
	},
}

func init() {
	rootCmd.AddCommand(factCmd)
	factCmd.Flags().String("readme", "", "README path (overrides README_PATH)")
	factCmd.Flags().String("anchor", "", "Line after which a missing fact is inserted (overrides FACT_ANCHOR)")
	factCmd.Flags().String("facts-file", "", "File with one fact per line (overrides FACTS_FILE)")
	factCmd.Flags().Uint64("seed", 0, "Random seed; 0 picks one from the clock")
}
