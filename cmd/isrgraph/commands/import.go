package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/signlab/isrgraph/logger"
	"github.com/signlab/isrgraph/store"
)

// ImportCmd copies a JSON keypoint directory into the SQLite store
var ImportCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import a JSON keypoint directory into the SQLite store",
	Long: `Copy every <video_id>.json file of a keypoint directory into the
keypoints table of the configured database. Existing videos are replaced.

Afterwards set dataset.store = "sqlite" to build from the database.

Examples:
  isrgraph import ./subset_selection
  ISRGRAPH_DATABASE_PATH=ngt.db isrgraph import ./subset_selection`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	src, err := store.NewDirStore(args[0])
	if err != nil {
		return err
	}

	database, err := openDatabase(cfg, logger.Logger)
	if err != nil {
		return err
	}
	defer database.Close()

	spinner, _ := pterm.DefaultSpinner.Start("Importing keypoints from " + args[0])
	result, err := store.Import(cmd.Context(), src, store.NewSQLStore(database, logger.Logger), logger.Logger)
	if err != nil {
		if spinner != nil {
			spinner.Fail(err.Error())
		}
		return err
	}
	if spinner != nil {
		spinner.Success()
	}

	pterm.Success.Printf("Imported %d videos into %s\n", result.Imported, cfg.GetDatabasePath())
	if len(result.Failed) > 0 {
		pterm.Warning.Printf("%d files could not be read: %v\n", len(result.Failed), result.Failed)
	}
	return nil
}
