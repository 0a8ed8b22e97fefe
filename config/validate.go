package config

import (
	"github.com/signlab/isrgraph/errors"
)

// SupportedNodeCount is the only reduced skeleton size with a node selection.
const SupportedNodeCount = 27

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Graph.NNodes != SupportedNodeCount {
		return errors.WithHint(
			errors.NewInvalidConfigError("graph.n_nodes must be %d, got %d", SupportedNodeCount, c.Graph.NNodes),
			"only the 27-node holistic selection is implemented",
		)
	}
	if c.Graph.MaxFrames < 0 {
		return errors.NewInvalidConfigError("graph.max_frames must be >= 0, got %d", c.Graph.MaxFrames)
	}

	if c.Preprocess.DownsampleRate < 1 {
		return errors.NewInvalidConfigError("preprocess.downsample_rate must be >= 1, got %d", c.Preprocess.DownsampleRate)
	}

	if c.Loader.BatchSize < 1 {
		return errors.NewInvalidConfigError("loader.batch_size must be >= 1, got %d", c.Loader.BatchSize)
	}
	switch c.Loader.TemporalConfiguration {
	case TemporalPerFrame, TemporalSpatioTemporal:
	default:
		return errors.WithHintf(
			errors.NewInvalidConfigError("unknown loader.temporal_configuration %q", c.Loader.TemporalConfiguration),
			"use %q or %q", TemporalPerFrame, TemporalSpatioTemporal,
		)
	}
	if c.Loader.PadFrames < 0 {
		return errors.NewInvalidConfigError("loader.pad_frames must be >= 0, got %d", c.Loader.PadFrames)
	}

	switch c.Dataset.Store {
	case StoreDir, StoreSQLite:
	default:
		return errors.WithHintf(
			errors.NewInvalidConfigError("unknown dataset.store %q", c.Dataset.Store),
			"use %q or %q", StoreDir, StoreSQLite,
		)
	}

	if c.Build.Workers < 0 {
		return errors.NewInvalidConfigError("build.workers must be >= 0, got %d", c.Build.Workers)
	}

	return nil
}
