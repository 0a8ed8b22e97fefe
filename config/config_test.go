package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/signlab/isrgraph/errors"
)

func TestLoad_Defaults(t *testing.T) {
	// Isolated viper instance without user/project config
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	if err != nil {
		t.Fatalf("LoadWithViper() failed: %v", err)
	}

	if cfg.Graph.NNodes != 27 {
		t.Errorf("expected default n_nodes 27, got %d", cfg.Graph.NNodes)
	}
	if cfg.Graph.MaxFrames != 300 {
		t.Errorf("expected default max_frames 300, got %d", cfg.Graph.MaxFrames)
	}
	if cfg.Preprocess.Downsample || cfg.Preprocess.DownsampleRate != 3 {
		t.Errorf("expected downsampling off at rate 3, got %v/%d", cfg.Preprocess.Downsample, cfg.Preprocess.DownsampleRate)
	}
	if cfg.Loader.BatchSize != 5 {
		t.Errorf("expected default batch_size 5, got %d", cfg.Loader.BatchSize)
	}
	if cfg.Loader.TemporalConfiguration != TemporalSpatioTemporal {
		t.Errorf("expected spatio_temporal, got %q", cfg.Loader.TemporalConfiguration)
	}
	if cfg.Dataset.Store != StoreDir {
		t.Errorf("expected dir store, got %q", cfg.Dataset.Store)
	}
}

func TestDefault_MatchesViperDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	fromViper, err := LoadWithViper(v)
	if err != nil {
		t.Fatalf("LoadWithViper() failed: %v", err)
	}

	if *fromViper != *Default() {
		t.Errorf("Default() = %+v, viper defaults = %+v", *Default(), *fromViper)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero max_frames is valid (uncapped)", func(c *Config) { c.Graph.MaxFrames = 0 }, false},
		{"zero workers is valid (sequential)", func(c *Config) { c.Build.Workers = 0 }, false},
		{"per_frame mode is valid", func(c *Config) { c.Loader.TemporalConfiguration = TemporalPerFrame }, false},
		{"sqlite store is valid", func(c *Config) { c.Dataset.Store = StoreSQLite }, false},
		{"n_nodes other than 27", func(c *Config) { c.Graph.NNodes = 25 }, true},
		{"negative max_frames", func(c *Config) { c.Graph.MaxFrames = -1 }, true},
		{"zero downsample rate", func(c *Config) { c.Preprocess.DownsampleRate = 0 }, true},
		{"zero batch size", func(c *Config) { c.Loader.BatchSize = 0 }, true},
		{"unknown temporal configuration", func(c *Config) { c.Loader.TemporalConfiguration = "temporal" }, true},
		{"negative pad frames", func(c *Config) { c.Loader.PadFrames = -3 }, true},
		{"unknown store", func(c *Config) { c.Dataset.Store = "s3" }, true},
		{"negative workers", func(c *Config) { c.Build.Workers = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.IsInvalidConfigError(err) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	tests := []struct {
		key      string
		expected interface{}
	}{
		{"graph.n_nodes", 27},
		{"graph.max_frames", 300},
		{"preprocess.downsample_rate", 3},
		{"loader.batch_size", 5},
		{"loader.temporal_configuration", "spatio_temporal"},
		{"dataset.store", "dir"},
		{"database.path", "isrgraph.db"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := v.Get(tt.key)
			if got != tt.expected {
				t.Errorf("default %s = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "isrgraph.toml")
	content := `
[graph]
max_frames = 120

[preprocess]
downsample = true

[loader]
batch_size = 16
temporal_configuration = "per_frame"
`
	if err := os.WriteFile(path, []byte(content), DefaultFilePermissions); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}
	if cfg.Graph.MaxFrames != 120 {
		t.Errorf("max_frames = %d, want 120", cfg.Graph.MaxFrames)
	}
	if !cfg.Preprocess.Downsample {
		t.Error("expected downsample = true")
	}
	if cfg.Loader.BatchSize != 16 || cfg.Loader.TemporalConfiguration != TemporalPerFrame {
		t.Errorf("loader = %+v", cfg.Loader)
	}
	// untouched keys keep defaults
	if cfg.Graph.NNodes != 27 {
		t.Errorf("n_nodes = %d, want 27", cfg.Graph.NNodes)
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "isrgraph.toml")
	os.WriteFile(path, []byte("[graph]\nn_nodes = 25\n"), DefaultFilePermissions)

	_, err := LoadFromFile(path)
	if !errors.IsInvalidConfigError(err) {
		t.Fatalf("expected invalid config error, got %v", err)
	}

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestMergeConfigFiles_LaterOverrides(t *testing.T) {
	dir := t.TempDir()
	user := filepath.Join(dir, "user.toml")
	project := filepath.Join(dir, "project.toml")
	os.WriteFile(user, []byte("[loader]\nbatch_size = 8\nseed = 7\n"), DefaultFilePermissions)
	os.WriteFile(project, []byte("[loader]\nbatch_size = 32\n"), DefaultFilePermissions)

	v := viper.New()
	SetDefaults(v)
	mergeConfigFiles(v, []string{user, filepath.Join(dir, "absent.toml"), project})

	cfg, err := LoadWithViper(v)
	if err != nil {
		t.Fatalf("LoadWithViper() failed: %v", err)
	}
	if cfg.Loader.BatchSize != 32 {
		t.Errorf("batch_size = %d, want project value 32", cfg.Loader.BatchSize)
	}
	if cfg.Loader.Seed != 7 {
		t.Errorf("seed = %d, want user value 7", cfg.Loader.Seed)
	}
}

func TestFindProjectConfig(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "a", "b")
	if err := os.MkdirAll(subDir, DefaultDirPermissions); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(tmpDir, ProjectConfigName), []byte(""), DefaultFilePermissions)

	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)
	os.Chdir(subDir)

	found := findProjectConfig()
	want, _ := filepath.EvalSymlinks(filepath.Join(tmpDir, ProjectConfigName))
	got, _ := filepath.EvalSymlinks(found)
	if got != want {
		t.Errorf("findProjectConfig() = %q, want %q", found, want)
	}
}

func TestResolvePaths(t *testing.T) {
	cfg := Default()
	cfg.Dataset.Root = "/data/ngt"
	cfg.Dataset.Poses = "/abs/poses"

	if got := cfg.MetadataPath(); got != "/data/ngt/subset_metadata.json" {
		t.Errorf("MetadataPath() = %q", got)
	}
	if got := cfg.PosesPath(); got != "/abs/poses" {
		t.Errorf("PosesPath() = %q", got)
	}
	if got := cfg.SkeletonPath(); got != "" {
		t.Errorf("SkeletonPath() = %q, want empty", got)
	}
	cfg.Graph.Skeleton = "skel.toml"
	if got := cfg.SkeletonPath(); got != "/data/ngt/skel.toml" {
		t.Errorf("SkeletonPath() = %q", got)
	}
}

func TestSave_RotatesBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "isrgraph.toml")

	for i := 1; i <= 5; i++ {
		cfg := Default()
		cfg.Loader.BatchSize = i
		if err := Save(cfg, path); err != nil {
			t.Fatalf("Save #%d failed: %v", i, err)
		}
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}
	if cfg.Loader.BatchSize != 5 {
		t.Errorf("batch_size = %d, want 5", cfg.Loader.BatchSize)
	}

	for suffix, want := range map[string]int{".back1": 4, ".back2": 3, ".back3": 2} {
		backup, err := LoadFromFile(path + suffix)
		if err != nil {
			t.Fatalf("backup %s: %v", suffix, err)
		}
		if backup.Loader.BatchSize != want {
			t.Errorf("%s batch_size = %d, want %d", suffix, backup.Loader.BatchSize, want)
		}
	}
}

func TestSave_RejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Loader.BatchSize = 0
	path := filepath.Join(t.TempDir(), "isrgraph.toml")
	if err := Save(cfg, path); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("invalid config must not be written")
	}
}
