package commands

import (
	"context"
	"database/sql"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/signlab/isrgraph/config"
	"github.com/signlab/isrgraph/dataset"
	"github.com/signlab/isrgraph/db"
	"github.com/signlab/isrgraph/errors"
	"github.com/signlab/isrgraph/loader"
	"github.com/signlab/isrgraph/store"
)

// loadConfig honors the --config flag, falling back to the merged
// user/project/env configuration.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if f := cmd.Flag("config"); f != nil && f.Value.String() != "" {
		return config.LoadFromFile(f.Value.String())
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// openDatabase opens and migrates the configured database.
func openDatabase(cfg *config.Config, log *zap.SugaredLogger) (*sql.DB, error) {
	path := cfg.GetDatabasePath()
	database, err := db.OpenWithMigrations(path, log.Named("db"))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", path)
	}
	return database, nil
}

// openKeypointStore returns the configured store and a func releasing it.
func openKeypointStore(cfg *config.Config, log *zap.SugaredLogger) (store.KeypointStore, func(), error) {
	switch cfg.Dataset.Store {
	case config.StoreSQLite:
		database, err := openDatabase(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return store.NewSQLStore(database, log), func() { database.Close() }, nil
	default:
		ds, err := store.NewDirStore(cfg.PosesPath())
		if err != nil {
			return nil, nil, errors.WithHint(err, "set dataset.poses or run `isrgraph import` and use dataset.store = \"sqlite\"")
		}
		return ds, func() {}, nil
	}
}

// pipeline is the result of reading a dataset and partitioning it.
type pipeline struct {
	Dataset *dataset.Dataset
	Loaders *loader.Loaders
}

// runPipeline reads metadata and keypoints, assembles every record and
// builds the split loaders.
func runPipeline(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (*pipeline, error) {
	ks, release, err := openKeypointStore(cfg, log)
	if err != nil {
		return nil, err
	}
	defer release()

	md, err := store.LoadMetadata(cfg.MetadataPath())
	if err != nil {
		return nil, err
	}

	reader, err := dataset.NewReader(cfg, ks, log)
	if err != nil {
		return nil, err
	}

	ds, err := reader.Build(ctx, md)
	if err != nil {
		return nil, errors.Wrap(err, "build dataset")
	}

	loaders, err := loader.Build(ds.Records, loader.OptionsFromConfig(cfg, ds.Template.PerFrameEdges(), log))
	if err != nil {
		return nil, errors.Wrap(err, "build loaders")
	}

	return &pipeline{Dataset: ds, Loaders: loaders}, nil
}

// recordBuild stores a summary of p in the build history.
func recordBuild(ctx context.Context, database *sql.DB, cfg *config.Config, p *pipeline) (*store.Build, error) {
	snapshot, err := cfg.Marshal()
	if err != nil {
		return nil, err
	}

	counts := p.Loaders.Counts()
	b := &store.Build{
		MaxFrames:  p.Dataset.MaxFrames(),
		Videos:     p.Dataset.Len(),
		Train:      counts.Train,
		Val:        counts.Val,
		Test:       counts.TestTotal(),
		Unassigned: counts.Unassigned,
		Config:     string(snapshot),
	}
	for _, sk := range p.Dataset.Skipped {
		b.Skipped = append(b.Skipped, store.SkippedVideo{VideoID: sk.VideoID, Reason: sk.Reason})
	}

	if err := store.NewBuildStore(database).Record(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
