package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/signlab/isrgraph/errors"
	"github.com/signlab/isrgraph/logger"
)

// Default returns a validated configuration populated only from defaults.
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Root:     ".",
			Metadata: "subset_metadata.json",
			Poses:    "subset_selection",
			Store:    StoreDir,
		},
		Graph: GraphConfig{
			NNodes:    SupportedNodeCount,
			MaxFrames: 300,
		},
		Preprocess: PreprocessConfig{DownsampleRate: 3},
		Loader: LoaderConfig{
			BatchSize:             5,
			TemporalConfiguration: TemporalSpatioTemporal,
		},
		Build:    BuildConfig{Workers: 1},
		Database: DatabaseConfig{Path: "isrgraph.db"},
	}
}

// Marshal encodes the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config")
	}
	return data, nil
}

// Save writes the configuration to configPath, rotating up to three
// backups of any existing file.
func Save(c *Config, configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if dir := filepath.Dir(configPath); dir != "" {
		if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}

	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write config %s", configPath)
	}
	return nil
}

// createBackup creates rotating backups (.back1, .back2, .back3) before overwriting a config
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	// Failing to drop the oldest backup does not block the save
	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		logger.Logger.Named("config").Warnw("Failed to delete old backup", "path", back3, "error", err)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}
