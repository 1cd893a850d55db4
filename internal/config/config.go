package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the scout configuration file
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the scout configuration directory
const ConfigDirName = ".scout"

// Config holds all scout configuration
type Config struct {
	Scan    ScanConfig    `yaml:"scan"`
	Context ContextConfig `yaml:"context"`
	Output  OutputConfig  `yaml:"output"`
	Cache   CacheConfig   `yaml:"cache"`
}

// ScanConfig holds configuration for file discovery
type ScanConfig struct {
	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`
	MaxFileSize int64    `yaml:"max_file_size"`
}

// ContextConfig holds the budgets for context construction
type ContextConfig struct {
	MaxNodes      int `yaml:"max_nodes"`
	MaxFiles      int `yaml:"max_files"`
	MaxCodeLength int `yaml:"max_code_length"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	Format string `yaml:"format"`
}

// CacheConfig holds configuration for the snapshot cache
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	TTL     string `yaml:"ttl"`
}

// ErrConfigNotFound is returned when no config file can be found
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .scout/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking up
// the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		return DefaultConfig(), nil
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigDir locates the .scout directory by walking up from startDir.
// Returns the path to the .scout directory if found.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// EnsureConfigDir creates the .scout directory if it doesn't exist.
// Returns the path to the .scout directory.
func EnsureConfigDir(workDir string) (string, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	configDir := filepath.Join(absDir, ConfigDirName)

	info, err := os.Stat(configDir)
	if err == nil {
		if info.IsDir() {
			return configDir, nil
		}
		return "", fmt.Errorf("%s exists but is not a directory", configDir)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	return configDir, nil
}

// Validate checks that config values are valid.
// Returns an error if validation fails.
func Validate(cfg *Config) error {
	if cfg.Context.MaxNodes <= 0 {
		return fmt.Errorf("%w: max_nodes must be positive, got %d",
			ErrInvalidConfig, cfg.Context.MaxNodes)
	}

	if cfg.Context.MaxFiles <= 0 {
		return fmt.Errorf("%w: max_files must be positive, got %d",
			ErrInvalidConfig, cfg.Context.MaxFiles)
	}

	if cfg.Context.MaxCodeLength <= 0 {
		return fmt.Errorf("%w: max_code_length must be positive, got %d",
			ErrInvalidConfig, cfg.Context.MaxCodeLength)
	}

	if cfg.Scan.MaxFileSize < 0 {
		return fmt.Errorf("%w: max_file_size must be non-negative, got %d",
			ErrInvalidConfig, cfg.Scan.MaxFileSize)
	}

	if !IsValidFormat(cfg.Output.Format) {
		return fmt.Errorf("%w: format must be one of %v, got %q",
			ErrInvalidConfig, ValidFormats, cfg.Output.Format)
	}

	if cfg.Cache.TTL != "" {
		if _, err := time.ParseDuration(cfg.Cache.TTL); err != nil {
			return fmt.Errorf("%w: ttl must be a duration like \"24h\", got %q",
				ErrInvalidConfig, cfg.Cache.TTL)
		}
	}

	return nil
}

// CacheTTL returns the parsed cache TTL. An empty or unset TTL means no
// expiry. Call Validate first; an unparseable TTL here returns zero.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTL == "" {
		return 0
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0
	}
	return ttl
}

// SaveDefault writes the default configuration to .scout/config.yaml in
// workDir. Creates the .scout directory if it doesn't exist.
func SaveDefault(workDir string) (string, error) {
	configDir, err := EnsureConfigDir(workDir)
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(configDir, ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	header := "# scout configuration\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}

	return configPath, nil
}
