package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Dataset defaults mirror the layout of the NGT200 subset
	v.SetDefault("dataset.root", ".")
	v.SetDefault("dataset.metadata", "subset_metadata.json")
	v.SetDefault("dataset.poses", "subset_selection")
	v.SetDefault("dataset.store", StoreDir)

	// Graph defaults
	v.SetDefault("graph.n_nodes", 27)
	v.SetDefault("graph.max_frames", 300) // longest video in NGT200
	v.SetDefault("graph.skeleton", "")

	// Preprocessing defaults
	v.SetDefault("preprocess.downsample", false)
	v.SetDefault("preprocess.downsample_rate", 3)
	v.SetDefault("preprocess.scale_norm", false)

	// Loader defaults
	v.SetDefault("loader.batch_size", 5)
	v.SetDefault("loader.temporal_configuration", TemporalSpatioTemporal)
	v.SetDefault("loader.seed", 0)
	v.SetDefault("loader.pad_frames", 0)

	// Build defaults
	v.SetDefault("build.workers", 1)
	v.SetDefault("build.record", false)

	// Database defaults
	v.SetDefault("database.path", "isrgraph.db")
}

// BindEnvVars binds the most commonly overridden keys to explicit
// environment variables (in addition to AutomaticEnv).
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("dataset.root", "ISRGRAPH_DATASET_ROOT")
	v.BindEnv("database.path", "ISRGRAPH_DATABASE_PATH")
	v.BindEnv("loader.temporal_configuration", "ISRGRAPH_TEMPORAL_CONFIGURATION")
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Dataset: %s, Nodes: %d, MaxFrames: %d, Downsample: %v/%d, ScaleNorm: %v, Batch: %d, Temporal: %s}",
		c.Dataset.Root, c.Graph.NNodes, c.Graph.MaxFrames, c.Preprocess.Downsample, c.Preprocess.DownsampleRate,
		c.Preprocess.ScaleNorm, c.Loader.BatchSize, c.Loader.TemporalConfiguration)
}
