package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalConfig is a direct parse of config.yaml, bypassing the viper
// singleton. Used by `sweep config check` to report what the file itself
// says, separate from env overrides and defaults.
type LocalConfig struct {
	Instance         string `yaml:"instance"`
	BackupsLocation  string `yaml:"backups_location"`
	DeletionLocation string `yaml:"deletion_location"`
	GetSize          bool   `yaml:"get_size"`
	LogDir           string `yaml:"log_dir"`
}

// LoadLocal reads and parses config.yaml from dir. A missing file is
// reported as an error; a reader that wants empty-on-missing should stat
// first.
func LoadLocal(dir string) (*LocalConfig, error) {
	path := filepath.Join(dir, "config.yaml")
	data, err := os.ReadFile(path) // #nosec G304 - operator-supplied config dir
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg LocalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}
