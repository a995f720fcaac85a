package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the optional per-book config file at the root.
const DefaultFileName = ".booksum.yaml"

// Title source modes. "filename" derives titles from file names; "content"
// prefers the title declared inside each chapter (frontmatter, then the first
// level-1 heading) and falls back to the filename derivation.
const (
	TitleSourceFilename = "filename"
	TitleSourceContent  = "content"
)

// Config represents booksum configuration options
type Config struct {
	// Output is the summary file name written at the book root
	Output string `yaml:"output"`

	// Exclude lists additional exact names (files or directories) to skip
	Exclude []string `yaml:"exclude"`

	// TitleSource selects where display titles come from (filename, content)
	TitleSource string `yaml:"title_source"`

	// IntroductionLabel is the label of the pinned README.md entry
	IntroductionLabel string `yaml:"introduction_label"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with sensible default values. The defaults
// reproduce the classic behavior exactly: SUMMARY.md output, filename-derived
// titles, an "Introduction" entry for README.md.
func DefaultConfig() *Config {
	return &Config{
		Output:            "SUMMARY.md",
		Exclude:           nil,
		TitleSource:       TitleSourceFilename,
		IntroductionLabel: "Introduction",
		LogLevel:          "info",
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if fileCfg.Output != "" {
		cfg.Output = fileCfg.Output
	}
	if len(fileCfg.Exclude) > 0 {
		cfg.Exclude = fileCfg.Exclude
	}
	if fileCfg.TitleSource != "" {
		cfg.TitleSource = fileCfg.TitleSource
	}
	if fileCfg.IntroductionLabel != "" {
		cfg.IntroductionLabel = fileCfg.IntroductionLabel
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration values for consistency
func (c *Config) Validate() error {
	switch c.TitleSource {
	case TitleSourceFilename, TitleSourceContent:
	default:
		return fmt.Errorf("invalid title_source %q: must be %q or %q",
			c.TitleSource, TitleSourceFilename, TitleSourceContent)
	}
	if c.Output == "" {
		return fmt.Errorf("output must not be empty")
	}
	return nil
}
