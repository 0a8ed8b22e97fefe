package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/signlab/isrgraph/errors"
	"github.com/signlab/isrgraph/logger"
	"github.com/signlab/isrgraph/loader"
)

// BuildCmd builds the dataset and reports partition sizes
var BuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build spatio-temporal graphs and split loaders",
	Long: `Read the annotation metadata and keypoints, assemble one graph per video
and partition the graphs into train, val and per-view test loaders.

Videos listed in the metadata but missing from the keypoint store are
skipped and counted. Use -v to see each skipped video id.

Examples:
  isrgraph build                    # Build with the effective configuration
  isrgraph build --workers 8        # Reduce videos in parallel
  isrgraph build --record           # Record the build in the database`,
	RunE: runBuild,
}

var (
	buildRecordFlag  bool
	buildWorkersFlag int
)

func init() {
	BuildCmd.Flags().BoolVar(&buildRecordFlag, "record", false, "Record the build in the database (overrides build.record)")
	BuildCmd.Flags().IntVar(&buildWorkersFlag, "workers", 0, "Parallel videos (overrides build.workers)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Build.Workers = buildWorkersFlag
	}
	if cmd.Flags().Changed("record") {
		cfg.Build.Record = buildRecordFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.Logger
	ctx := cmd.Context()

	p, err := runPipeline(ctx, cfg, log)
	if err != nil {
		return err
	}

	printBuildSummary(p)

	if !cfg.Build.Record {
		return nil
	}

	database, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close()

	b, err := recordBuild(ctx, database, cfg, p)
	if err != nil {
		return errors.Wrap(err, "record build")
	}
	pterm.Success.Printf("Recorded build %s\n", b.ID)
	return nil
}

func printBuildSummary(p *pipeline) {
	counts := p.Loaders.Counts()

	rows := pterm.TableData{{"Partition", "Graphs", "Batches", "Shuffled"}}
	for _, it := range []*loader.Iterator{p.Loaders.Train, p.Loaders.Val, p.Loaders.Test[0], p.Loaders.Test[1], p.Loaders.Test[2]} {
		rows = append(rows, []string{
			it.Name(),
			fmt.Sprintf("%d", it.Len()),
			fmt.Sprintf("%d", it.NumBatches()),
			fmt.Sprintf("%v", it.Shuffled()),
		})
	}
	rows = append(rows, []string{"unassigned", fmt.Sprintf("%d", counts.Unassigned), "-", "-"})

	pterm.DefaultSection.Println("Dataset")
	pterm.Printf("  Videos:     %s\n", pterm.Green(fmt.Sprintf("%d", p.Dataset.Len())))
	pterm.Printf("  Glosses:    %d\n", p.Dataset.Vocabulary.Len())
	pterm.Printf("  Max frames: %d\n", p.Dataset.MaxFrames())
	pterm.Printf("  Nodes:      %d per frame\n", p.Dataset.Template.Nodes())
	if len(p.Dataset.Skipped) > 0 {
		pterm.Printf("  Skipped:    %s\n", pterm.Yellow(fmt.Sprintf("%d", len(p.Dataset.Skipped))))
	}
	pterm.Println()

	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	if counts.Unassigned > 0 {
		pterm.Warning.Printf("%d graphs have an unknown split or test view\n", counts.Unassigned)
	}
}
