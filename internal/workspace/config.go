// Package workspace discovers, loads and watches the scripts of a project
// and keeps a model.Environment in sync with them.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no config
// path is given
const DefaultConfigFile = "zentype.yaml"

// ErrInvalidConfig is returned when a config fails validation
var ErrInvalidConfig = errors.New("invalid config")

// Config describes a workspace
type Config struct {
	// Root is the directory scanned for scripts
	Root string `yaml:"root"`

	// Extensions lists the file suffixes treated as scripts
	Extensions []string `yaml:"extensions"`

	// Exclude lists directory names skipped during discovery
	Exclude []string `yaml:"exclude"`

	// Concurrency bounds the number of files parsed at once
	Concurrency int `yaml:"concurrency"`

	Watch       bool   `yaml:"watch"`
	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// DefaultConfig returns the config used when no file is present
func DefaultConfig() Config {
	return Config{
		Root:        "scripts",
		Extensions:  []string{".zs", ".dzs"},
		Exclude:     []string{},
		Concurrency: 8,
		LogLevel:    "info",
	}
}

// LoadConfig reads a YAML config file. Fields missing from the file keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("LoadConfig: reading %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config data over the defaults and validates it
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("LoadConfig: parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config for values the loader cannot work with
func (c Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("%w: root must not be empty", ErrInvalidConfig)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%w: at least one extension is required", ErrInvalidConfig)
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: extension %q must start with a dot", ErrInvalidConfig, ext)
		}
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1, got %d", ErrInvalidConfig, c.Concurrency)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// IsScript reports whether name carries one of the configured extensions
func (c Config) IsScript(name string) bool {
	for _, ext := range c.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Excluded reports whether a directory name is skipped
func (c Config) Excluded(dir string) bool {
	for _, ex := range c.Exclude {
		if ex == dir {
			return true
		}
	}
	return false
}
