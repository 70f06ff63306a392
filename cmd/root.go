// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naka-gawa/profile-stats/internal/config"
	"github.com/naka-gawa/profile-stats/internal/logger"
)

var (
	// cliLogger is the logger built by setup, flushed before the process exits.
	cliLogger = zap.NewNop()
	osExit    = os.Exit
)

var rootCmd = &cobra.Command{
	Use:   "profile-stats",
	Short: "A CLI tool that keeps a GitHub profile README fresh.",
	Long: `profile-stats renders a GitHub statistics card (SVG) from the GraphQL API
and rotates the fun fact line of a profile README.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("env-file", config.DefaultEnvFile, "Optional .env file read before the environment")
}

// setup builds the logger and loads the configuration shared by every command.
// Failures are reported on stderr and terminate the process.
func setup(cmd *cobra.Command) (*zap.Logger, config.Config) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	log, err := logger.New(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		osExit(1)
	}
	cliLogger = log

	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile, cmd.Flags().Changed("env-file"))
	if err != nil {
		fail("Error", err)
	}
	return log, cfg
}

// fail prints err, flushes the logger and exits with a non-zero status.
func fail(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	_ = cliLogger.Sync()
	osExit(1)
}
