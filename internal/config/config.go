package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// HomeEnvVar overrides the gitscout home directory
const HomeEnvVar = "GITSCOUT_HOME"

// DefaultHomeDir is the directory under $HOME holding config and state
const DefaultHomeDir = ".gitscout"

// Config represents the complete gitscout configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Clone   CloneConfig   `json:"clone" mapstructure:"clone"`
	Read    ReadConfig    `json:"read" mapstructure:"read"`
	Search  SearchConfig  `json:"search" mapstructure:"search"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// CloneConfig controls the git clone subprocess
type CloneConfig struct {
	TimeoutSeconds int    `json:"timeoutSeconds" mapstructure:"timeoutSeconds"`
	ScratchDir     string `json:"scratchDir" mapstructure:"scratchDir"` // empty means os.TempDir
	Shallow        bool   `json:"shallow" mapstructure:"shallow"`
}

// ReadConfig controls ranged file reads
type ReadConfig struct {
	DefaultLineEnd   int   `json:"defaultLineEnd" mapstructure:"defaultLineEnd"`
	MaxFileSizeBytes int64 `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
}

// SearchConfig controls budgeted pattern search
type SearchConfig struct {
	MaxFiles          int      `json:"maxFiles" mapstructure:"maxFiles"`
	MaxMatchesPerFile int      `json:"maxMatchesPerFile" mapstructure:"maxMatchesPerFile"`
	MaxTokens         int      `json:"maxTokens" mapstructure:"maxTokens"`
	MaxFileSizeBytes  int64    `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
	ContextBefore     int      `json:"contextBefore" mapstructure:"contextBefore"`
	ContextAfter      int      `json:"contextAfter" mapstructure:"contextAfter"`
	DenyDirs          []string `json:"denyDirs" mapstructure:"denyDirs"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Clone: CloneConfig{
			TimeoutSeconds: 300,
			ScratchDir:     "",
			Shallow:        true,
		},
		Read: ReadConfig{
			DefaultLineEnd:   200,
			MaxFileSizeBytes: 10 * 1024 * 1024,
		},
		Search: SearchConfig{
			MaxFiles:          15,
			MaxMatchesPerFile: 3,
			MaxTokens:         100000,
			MaxFileSizeBytes:  1024 * 1024,
			ContextBefore:     2,
			ContextAfter:      2,
			DenyDirs:          []string{"node_modules", "__pycache__", "venv", "env"},
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// Home returns the gitscout home directory, honoring GITSCOUT_HOME.
func Home() (string, error) {
	if env := os.Getenv(HomeEnvVar); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DefaultHomeDir), nil
}

// Load loads configuration from $GITSCOUT_HOME/config.json, falling back
// to defaults when the file does not exist.
func Load() (*Config, error) {
	home, err := Home()
	if err != nil {
		return nil, err
	}
	return loadFrom(home)
}

func loadFrom(dir string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to $GITSCOUT_HOME/config.json
func (c *Config) Save() error {
	home, err := Home()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(home, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(home, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Clone.TimeoutSeconds <= 0 {
		return fmt.Errorf("clone.timeoutSeconds must be positive, got %d", c.Clone.TimeoutSeconds)
	}
	if c.Read.DefaultLineEnd <= 0 {
		return fmt.Errorf("read.defaultLineEnd must be positive, got %d", c.Read.DefaultLineEnd)
	}
	if c.Read.MaxFileSizeBytes <= 0 {
		return fmt.Errorf("read.maxFileSizeBytes must be positive, got %d", c.Read.MaxFileSizeBytes)
	}
	if c.Search.MaxFiles <= 0 {
		return fmt.Errorf("search.maxFiles must be positive, got %d", c.Search.MaxFiles)
	}
	if c.Search.MaxMatchesPerFile <= 0 {
		return fmt.Errorf("search.maxMatchesPerFile must be positive, got %d", c.Search.MaxMatchesPerFile)
	}
	if c.Search.MaxTokens <= 0 {
		return fmt.Errorf("search.maxTokens must be positive, got %d", c.Search.MaxTokens)
	}
	if c.Search.ContextBefore < 0 || c.Search.ContextAfter < 0 {
		return fmt.Errorf("search context lines must not be negative")
	}
	switch c.Logging.Format {
	case "", "human", "json":
	default:
		return fmt.Errorf("logging.format must be 'human' or 'json', got %q", c.Logging.Format)
	}
	return nil
}
