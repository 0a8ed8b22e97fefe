package commands

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/signlab/isrgraph/logger"
	"github.com/signlab/isrgraph/store"
)

// BuildsCmd lists recorded dataset builds
var BuildsCmd = &cobra.Command{
	Use:   "builds [build_id]",
	Short: "List recorded dataset builds",
	Long: `List builds recorded with 'isrgraph build --record', newest first.
With a build id, show that build and the videos it skipped.

Examples:
  isrgraph builds
  isrgraph builds --limit 5
  isrgraph builds 6f1c...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuilds,
}

var buildsLimitFlag int

func init() {
	BuildsCmd.Flags().IntVar(&buildsLimitFlag, "limit", 20, "Number of builds to show (0 = all)")
}

func runBuilds(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	database, err := openDatabase(cfg, logger.Logger)
	if err != nil {
		return err
	}
	defer database.Close()

	builds := store.NewBuildStore(database)

	if len(args) == 1 {
		b, err := builds.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printBuild(b)
		return nil
	}

	list, err := builds.List(cmd.Context(), buildsLimitFlag)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		pterm.Info.Println("No builds recorded. Run 'isrgraph build --record'.")
		return nil
	}

	rows := pterm.TableData{{"ID", "Created", "Videos", "Skipped", "Max frames", "Train", "Val", "Test"}}
	for _, b := range list {
		rows = append(rows, []string{
			b.ID,
			b.CreatedAt.Local().Format(time.DateTime),
			fmt.Sprintf("%d", b.Videos),
			fmt.Sprintf("%d", b.SkippedCount),
			fmt.Sprintf("%d", b.MaxFrames),
			fmt.Sprintf("%d", b.Train),
			fmt.Sprintf("%d", b.Val),
			fmt.Sprintf("%d", b.Test),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func printBuild(b store.Build) {
	pterm.DefaultSection.Printf("Build %s", b.ID)
	pterm.Printf("  Created:    %s\n", b.CreatedAt.Local().Format(time.DateTime))
	pterm.Printf("  Videos:     %d (max frames %d)\n", b.Videos, b.MaxFrames)
	pterm.Printf("  Partitions: train %d, val %d, test %d, unassigned %d\n", b.Train, b.Val, b.Test, b.Unassigned)
	if len(b.Skipped) > 0 {
		pterm.Println()
		rows := pterm.TableData{{"Skipped video", "Reason"}}
		for _, sk := range b.Skipped {
			rows = append(rows, []string{sk.VideoID, sk.Reason})
		}
		_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	}
	pterm.Println()
	pterm.Println(pterm.Gray(b.Config))
}
