package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalConfig represents the .refmap.yaml fields that need to be read directly
// from the file rather than through the viper singleton. This is needed when
// checking an existing config before viper is initialized, or when inspecting
// a config file in a directory other than the one viper discovered.
//
// Using proper YAML parsing handles edge cases like comments, indentation, and
// special characters that regex-based parsing would miss.
type LocalConfig struct {
	Extensions []string `yaml:"extensions"`
	Root       string   `yaml:"root"`
	JSON       bool     `yaml:"json"`
	NoPager    bool     `yaml:"no-pager"`
	DiffLimit  int      `yaml:"diff-limit"`
}

// LoadLocalConfig reads and parses .refmap.yaml directly from the specified
// directory, bypassing the viper singleton.
//
// Returns an empty LocalConfig (not nil) if the file doesn't exist or can't
// be parsed.
func LoadLocalConfig(dir string) *LocalConfig {
	configPath := filepath.Join(dir, FileName)
	data, err := os.ReadFile(configPath) // #nosec G304 - config file path from caller-supplied dir
	if err != nil {
		return &LocalConfig{}
	}

	var cfg LocalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return &LocalConfig{}
	}

	return &cfg
}
