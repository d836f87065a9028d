package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileNames are the config files searched for, in order of precedence
var FileNames = []string{"xsd2ts.json", "xsd2ts.yaml", "xsd2ts.yml"}

// ErrConfigNotFound is returned when no config file exists in a directory or its parents
var ErrConfigNotFound = errors.New("no config file found")

// Config represents the xsd2ts.json (or .yaml) configuration file
type Config struct {
	Input       string      `json:"input" yaml:"input"`
	Output      string      `json:"output" yaml:"output"`
	Language    string      `json:"language" yaml:"language"`
	Timestamp   *bool       `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Comments    bool        `json:"comments" yaml:"comments"`
	Concurrency int         `json:"concurrency" yaml:"concurrency"`
	Watch       WatchConfig `json:"watch" yaml:"watch"`
}

// WatchConfig contains watch mode configuration
type WatchConfig struct {
	Patterns []string `json:"patterns" yaml:"patterns"`
	Exclude  []string `json:"exclude" yaml:"exclude"`
}

// Default returns a config with every default applied
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// TimestampEnabled reports whether generated headers carry a timestamp
func (c *Config) TimestampEnabled() bool {
	return c.Timestamp == nil || *c.Timestamp
}

// LoadConfig loads the configuration from the current directory or a parent directory
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return LoadConfigFromDir(dir)
}

// LoadConfigFromPath loads the configuration from a specific path. The
// format is chosen by extension: .yaml/.yml is YAML, anything else JSON.
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &config, nil
}

// LoadConfigFromDir searches for a config file in the given directory and its parents
func LoadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range FileNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				config, err := LoadConfigFromPath(configPath)
				if err != nil {
					return nil, "", err
				}
				return config, dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("%w in %s or any parent directory", ErrConfigNotFound, startDir)
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	if filepath.Clean(c.Input) == filepath.Clean(c.Output) {
		return fmt.Errorf("input and output directories must differ")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Input == "" {
		c.Input = "./xsd-files"
	}
	if c.Output == "" {
		c.Output = "./output"
	}
	if c.Language == "" {
		c.Language = "typescript"
	}
	if c.Concurrency == 0 {
		c.Concurrency = 4
	}
	if len(c.Watch.Patterns) == 0 {
		c.Watch.Patterns = []string{"*.xsd"}
	}
	if len(c.Watch.Exclude) == 0 {
		c.Watch.Exclude = []string{".git", "node_modules"}
	}
}

// Marshal encodes the config in the format implied by path's extension,
// the same rule LoadConfigFromPath reads it back with.
func (c *Config) Marshal(path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Marshal(c)
	default:
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}
