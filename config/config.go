package config

import (
	"path/filepath"
)

// Config is the isrgraph configuration
type Config struct {
	Dataset    DatasetConfig    `mapstructure:"dataset" toml:"dataset"`
	Graph      GraphConfig      `mapstructure:"graph" toml:"graph"`
	Preprocess PreprocessConfig `mapstructure:"preprocess" toml:"preprocess"`
	Loader     LoaderConfig     `mapstructure:"loader" toml:"loader"`
	Build      BuildConfig      `mapstructure:"build" toml:"build"`
	Database   DatabaseConfig   `mapstructure:"database" toml:"database"`
}

// DatasetConfig locates the annotation metadata and keypoint data
type DatasetConfig struct {
	Root     string `mapstructure:"root" toml:"root"`         // base directory for relative paths
	Metadata string `mapstructure:"metadata" toml:"metadata"` // JSON or YAML annotation file
	Poses    string `mapstructure:"poses" toml:"poses"`       // directory of <video_id>.json keypoint files
	Store    string `mapstructure:"store" toml:"store"`       // "dir" or "sqlite"
}

// GraphConfig configures topology construction
type GraphConfig struct {
	NNodes    int    `mapstructure:"n_nodes" toml:"n_nodes"`       // reduced node count, only 27 implemented
	MaxFrames int    `mapstructure:"max_frames" toml:"max_frames"` // per-video frame cap (0 = uncapped)
	Skeleton  string `mapstructure:"skeleton" toml:"skeleton"`     // optional TOML skeleton file
}

// PreprocessConfig configures the keypoint preprocessor
type PreprocessConfig struct {
	Downsample     bool `mapstructure:"downsample" toml:"downsample"`
	DownsampleRate int  `mapstructure:"downsample_rate" toml:"downsample_rate"`
	ScaleNorm      bool `mapstructure:"scale_norm" toml:"scale_norm"` // shoulder center-and-scale
}

// LoaderConfig configures the split loaders
type LoaderConfig struct {
	BatchSize             int    `mapstructure:"batch_size" toml:"batch_size"`
	TemporalConfiguration string `mapstructure:"temporal_configuration" toml:"temporal_configuration"` // per_frame | spatio_temporal
	Seed                  uint64 `mapstructure:"seed" toml:"seed"`                                     // train shuffle seed
	PadFrames             int    `mapstructure:"pad_frames" toml:"pad_frames"`                         // 0 = no padding
}

// BuildConfig configures dataset construction
type BuildConfig struct {
	Workers int  `mapstructure:"workers" toml:"workers"` // parallel videos (0 or 1 = sequential)
	Record  bool `mapstructure:"record" toml:"record"`   // record builds in the database
}

// DatabaseConfig configures the SQLite database
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path"`
}

// Temporal configuration modes
const (
	TemporalPerFrame       = "per_frame"
	TemporalSpatioTemporal = "spatio_temporal"
)

// Keypoint store kinds
const (
	StoreDir    = "dir"
	StoreSQLite = "sqlite"
)

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// MetadataPath resolves the metadata file against the dataset root.
func (c *Config) MetadataPath() string {
	return c.resolve(c.Dataset.Metadata)
}

// PosesPath resolves the keypoint directory against the dataset root.
func (c *Config) PosesPath() string {
	return c.resolve(c.Dataset.Poses)
}

// SkeletonPath resolves the skeleton file, or "" for the built-in skeleton.
func (c *Config) SkeletonPath() string {
	if c.Graph.Skeleton == "" {
		return ""
	}
	return c.resolve(c.Graph.Skeleton)
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Dataset.Root == "" {
		return p
	}
	return filepath.Join(c.Dataset.Root, p)
}

// GetDatabasePath returns the configured database path
func (c *Config) GetDatabasePath() string {
	if c.Database.Path == "" {
		return "isrgraph.db"
	}
	return c.Database.Path
}
