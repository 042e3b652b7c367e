package votes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "swissvotes.yaml"

// Config aggregates runtime settings for the analysis pipelines. The keyword
// policy and epoch cut points are domain content, not code: they live here so
// a study can swap them without rebuilding.
type Config struct {
	DataPath     string  `yaml:"data_path"`
	BoundaryPath string  `yaml:"boundary_path"`
	OutputDir    string  `yaml:"output_dir"`
	SQLitePath   string  `yaml:"sqlite_path,omitempty"`
	Policy       Policy  `yaml:"policy,omitempty"`
	Epochs       []Epoch `yaml:"epochs,omitempty"`
}

// ApplyDefaults populates zero values. A partial policy override merges into
// the default keyword sets; absent epochs fall back to the five study periods.
func (c *Config) ApplyDefaults() {
	if c.DataPath == "" {
		c.DataPath = "data/dataset.csv"
	}
	if c.BoundaryPath == "" {
		c.BoundaryPath = "data/cantons.geojson"
	}
	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	c.Policy = DefaultPolicy().Merge(c.Policy)
	if len(c.Epochs) == 0 {
		c.Epochs = DefaultEpochs()
	}
}

// LoadConfig loads configuration from the given path or the default
// swissvotes.yaml. A missing file is not an error; defaults apply.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := ValidateEpochs(cfg.Epochs); err != nil {
		return cfg, fmt.Errorf("config epochs: %w", err)
	}
	return cfg, nil
}

// SaveConfig persists configuration to disk, giving users a starting point
// for editing the keyword policy outside of the binary.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg.ApplyDefaults()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
