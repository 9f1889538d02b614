package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sant0-9/quill/internal/essay"
)

type Config struct {
	Provider string `yaml:"provider" env:"QUILL_PROVIDER"`
	APIKey   string `yaml:"api_key,omitempty" env:"QUILL_API_KEY"`
	Model    string `yaml:"model" env:"QUILL_MODEL"`
	BaseURL  string `yaml:"base_url,omitempty" env:"QUILL_BASE_URL"`

	// OutputDir is where exported .docx files are saved
	OutputDir    string `yaml:"output_dir,omitempty" env:"QUILL_OUTPUT_DIR"`
	DefaultWords int    `yaml:"default_words,omitempty" env:"QUILL_DEFAULT_WORDS"`

	Log LogConfig `yaml:"log"`

	// set when the environment overrode the file's api_key
	envAPIKey  string
	fileAPIKey string
}

type LogConfig struct {
	File       string `yaml:"file,omitempty" env:"QUILL_LOG_FILE"`
	Level      string `yaml:"level,omitempty" env:"QUILL_LOG_LEVEL"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
	Compress   bool   `yaml:"compress,omitempty"`
}

// pathOverride replaces the default location when set with SetPath
var pathOverride string

func DefaultConfig() *Config {
	p := GetProvider(DefaultProvider)
	return &Config{
		Provider:     p.ID,
		Model:        p.DefaultModel,
		DefaultWords: essay.DefaultWords,
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// SetPath makes Load and Save use path instead of the default location
func SetPath(path string) {
	pathOverride = path
}

func ConfigDir() (string, error) {
	if pathOverride != "" {
		return filepath.Dir(pathOverride), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "quill"), nil
}

func ConfigPath() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config file. It returns nil, nil when no file exists yet so
// the caller can run the setup wizard.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return cfg, nil
}

// LoadEnv loads a .env file from the working directory, if any, and lays
// environment variables over cfg. Secrets are expected to arrive this way.
func LoadEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	fileKey := cfg.APIKey
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	if cfg.APIKey != fileKey {
		cfg.envAPIKey = cfg.APIKey
		cfg.fileAPIKey = fileKey
	}
	return nil
}

// Resolve is the usual startup path: file (or defaults), then environment.
// The bool reports whether a config file was found.
func Resolve() (*Config, bool, error) {
	cfg, err := Load()
	if err != nil {
		return nil, false, err
	}
	found := cfg != nil
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := LoadEnv(cfg); err != nil {
		return nil, found, err
	}
	cfg.applyDefaults()
	return cfg, found, nil
}

func (c *Config) applyDefaults() {
	if c.DefaultWords == 0 {
		c.DefaultWords = essay.DefaultWords
	}
	if c.Log.File == "" {
		if dir, err := ConfigDir(); err == nil {
			c.Log.File = filepath.Join(dir, "quill.log")
		}
	}
}

// ExportDir returns OutputDir, falling back to the working directory
func (c *Config) ExportDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Validate reports every problem at once
func (c *Config) Validate() error {
	var result *multierror.Error

	p := GetProvider(c.Provider)
	switch {
	case p == nil:
		result = multierror.Append(result, fmt.Errorf("unknown provider %q", c.Provider))
	case p.NeedsAPIKey && c.APIKey == "":
		result = multierror.Append(result, fmt.Errorf("%s requires an API key (set QUILL_API_KEY)", p.ID))
	}
	if c.Provider == "custom" && c.BaseURL == "" {
		result = multierror.Append(result, errors.New("custom provider requires base_url"))
	}

	if c.DefaultWords != 0 && c.DefaultWords != essay.ClampWordCount(c.DefaultWords) {
		result = multierror.Append(result, fmt.Errorf("default_words must be %d-%d in steps of %d",
			essay.MinWords, essay.MaxWords, essay.WordStep))
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		result = multierror.Append(result, fmt.Errorf("unknown log level %q", c.Log.Level))
	}

	return result.ErrorOrNil()
}

// Save writes the config with owner-only permissions. An API key that came
// from the environment is not written; the file keeps its own key instead.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	out := *c
	if c.envAPIKey != "" && c.APIKey == c.envAPIKey {
		out.APIKey = c.fileAPIKey
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
