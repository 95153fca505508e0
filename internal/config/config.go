package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// Config represents the docnav configuration file.
type Config struct {
	// BasePath is stripped from every page URL before segmentation.
	BasePath   string           `yaml:"base_path"`
	Content    ContentConfig    `yaml:"content"`
	Output     OutputConfig     `yaml:"output"`
	Navigation NavigationConfig `yaml:"navigation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// ContentConfig describes where pages are discovered.
type ContentConfig struct {
	Directory string `yaml:"directory"`
	// Current is the URL of the page being viewed; its item is marked active.
	Current string `yaml:"current,omitempty"`
}

// OutputConfig describes where rendered markup is written. Empty File means stdout.
type OutputConfig struct {
	File string `yaml:"file,omitempty"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig represents Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// Default returns a configuration with every option defaulted.
func Default() *Config {
	cfg := &Config{}
	// Defaults for an empty config cannot fail.
	_ = ApplyDefaults(cfg)
	return cfg
}

// Load loads, defaults and validates a configuration file.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		// A missing .env is normal.
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	// #nosec G304 -- config path comes from the CLI flag.
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.ConfigError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		if classified, ok := ferrors.AsClassified(err); ok {
			return nil, classified.WithContext("path", configPath)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML configuration (with ${VAR} expansion), applies defaults and validates.
//
// Unknown keys and wrongly shaped values (e.g. a scalar where an exclude list is
// expected) are rejected instead of being coerced.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to decode configuration").
			Fatal().
			UserAction().
			Build()
	}

	if err := ApplyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	example := Default()
	example.Content.Directory = "./content"
	example.Navigation.Exclude = ExcludeConfig{
		Single: []string{"404"},
		Folder: []string{"drafts"},
		Regex:  []string{`^_`},
	}

	data, err := yaml.Marshal(example)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal example configuration").Build()
	}
	header := []byte("# docnav configuration\n# Generated by 'docnav init'.\n\n")
	if err := os.WriteFile(configPath, append(header, data...), 0o600); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write configuration file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
