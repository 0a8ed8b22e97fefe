package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/signlab/isrgraph/cmd/isrgraph/commands"
	"github.com/signlab/isrgraph/logger"
)

var rootCmd = &cobra.Command{
	Use:   "isrgraph",
	Short: "isrgraph - spatio-temporal pose graphs for isolated sign recognition",
	Long: `isrgraph - spatio-temporal pose graphs for isolated sign recognition.

Reduces holistic pose keypoints to a 27-node skeleton, assembles one
spatio-temporal graph per video and batches the train, val and per-view
test splits for a graph trainer.

Available commands:
  build   - Build the dataset and report partition sizes
  inspect - Show the assembled graph of one video
  import  - Import a JSON keypoint directory into the SQLite store
  builds  - List recorded dataset builds
  config  - Show or initialize configuration
  version - Show version information

Examples:
  isrgraph build -v                # Build with progress logging
  isrgraph build --record          # Build and record it in the database
  isrgraph inspect 12345           # Inspect one video's graph
  isrgraph import ./poses          # Move keypoints into SQLite`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLog, _ := cmd.Flags().GetBool("json-log")
		if err := logger.Initialize(jsonLog, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-log", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default: ~/.isrgraph/config.toml merged with ./isrgraph.toml)")

	rootCmd.AddCommand(commands.BuildCmd)
	rootCmd.AddCommand(commands.InspectCmd)
	rootCmd.AddCommand(commands.ImportCmd)
	rootCmd.AddCommand(commands.BuildsCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
