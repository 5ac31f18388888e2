package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultBaseDir is the base configuration directory name
	DefaultBaseDir = ".growbuf"
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "config.yaml"
)

// Config represents the main configuration structure for a CLI app
type Config struct {
	// AppName is the application name (e.g., "growbuf")
	AppName string `yaml:"-"`

	// LogLevel is the slog level name (debug, info, warn, error)
	LogLevel string `yaml:"log_level,omitempty"`

	// Buffer holds the limits applied to every buffer the tool creates
	Buffer BufferConfig `yaml:"buffer"`

	// Frame holds the frame codec settings
	Frame FrameConfig `yaml:"frame"`

	// configPath is the path to the config file
	configPath string
}

// BufferConfig configures buffer allocation
type BufferConfig struct {
	// InitialCapacity is the first allocation in bytes (0 uses the minimum)
	InitialCapacity int `yaml:"initial_capacity,omitempty"`

	// MaxCapacity caps growth in bytes (0 means unlimited)
	MaxCapacity int `yaml:"max_capacity,omitempty"`
}

// FrameConfig configures the frame codec
type FrameConfig struct {
	// MaxSize is the largest accepted frame payload in bytes (0 uses the default)
	MaxSize int `yaml:"max_size,omitempty"`
}

// LoadConfigWithPath loads or creates the configuration for appName. An
// empty customPath uses the app's default config file.
func LoadConfigWithPath(appName, customPath string) (*Config, error) {
	configPath := customPath
	if configPath == "" {
		paths, err := NewPaths(appName)
		if err != nil {
			return nil, fmt.Errorf("failed to locate config directory: %w", err)
		}
		if err := paths.EnsureAppDir(); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		configPath = paths.ConfigFile()
	} else if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := &Config{
		AppName:    appName,
		configPath: configPath,
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create empty config file
			return cfg, cfg.Save()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.AppName = appName
	cfg.configPath = configPath

	return cfg, nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Path returns the config file path
func (c *Config) Path() string {
	return c.configPath
}

// Validate checks that sizes are non-negative and the log level parses
func (c *Config) Validate() error {
	for key, p := range c.configKeys() {
		if *p < 0 {
			return fmt.Errorf("%s must not be negative: %d", key, *p)
		}
	}
	if c.LogLevel != "" {
		if _, err := ParseLogLevel(c.LogLevel); err != nil {
			return err
		}
	}
	return nil
}

// configKeys maps dotted keys to their fields
func (c *Config) configKeys() map[string]*int {
	return map[string]*int{
		"buffer.initial_capacity": &c.Buffer.InitialCapacity,
		"buffer.max_capacity":     &c.Buffer.MaxCapacity,
		"frame.max_size":          &c.Frame.MaxSize,
	}
}

// Keys returns all settable keys
func (c *Config) Keys() []string {
	keys := []string{"log_level"}
	for k := range c.configKeys() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a dotted key
func (c *Config) Get(key string) (string, error) {
	if key == "log_level" {
		return c.LogLevel, nil
	}
	p, ok := c.configKeys()[key]
	if !ok {
		return "", fmt.Errorf("unknown config key %q", key)
	}
	return strconv.Itoa(*p), nil
}

// Set updates a dotted key and saves the configuration
func (c *Config) Set(key, value string) error {
	if key == "log_level" {
		if _, err := ParseLogLevel(value); err != nil {
			return err
		}
		c.LogLevel = value
		return c.Save()
	}
	p, ok := c.configKeys()[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	n, err := ParseSize(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	old := *p
	*p = n
	if err := c.Validate(); err != nil {
		*p = old
		return err
	}
	return c.Save()
}
