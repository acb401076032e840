// Package config loads the plantilla settings. Sources are applied in
// order, later ones winning: built-in defaults, an optional YAML file,
// optional .env files, and PLANTILLA_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PLANTILLA_"

// Config groups every setting.
type Config struct {
	Gateway   Gateway   `yaml:"gateway" envPrefix:"GATEWAY_"`
	Server    Server    `yaml:"server" envPrefix:"SERVER_"`
	Log       Log       `yaml:"log" envPrefix:"LOG_"`
	Templates Templates `yaml:"templates" envPrefix:"TEMPLATES_"`
	Theme     Theme     `yaml:"theme" envPrefix:"THEME_"`
}

// Gateway configures the API gateway client.
type Gateway struct {
	URL      string        `yaml:"url" env:"URL"`
	Timeout  time.Duration `yaml:"timeout" env:"TIMEOUT"`
	Contract string        `yaml:"contract" env:"CONTRACT"`
}

// Server configures the HTTP presenter.
type Server struct {
	Addr     string `yaml:"addr" env:"ADDR"`
	BasePath string `yaml:"base_path" env:"BASE_PATH"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `yaml:"level" env:"LEVEL"`
	Development bool   `yaml:"development" env:"DEVELOPMENT"`
}

// Templates points at custom fragments and the missing-value text.
type Templates struct {
	Dir         string `yaml:"dir" env:"DIR"`
	ShellDir    string `yaml:"shell_dir" env:"SHELL_DIR"`
	MissingText string `yaml:"missing_text" env:"MISSING_TEXT"`
}

// Theme selects the go-theme manifest variant used for visibility markers.
type Theme struct {
	Name    string `yaml:"name" env:"NAME"`
	Variant string `yaml:"variant" env:"VARIANT"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Gateway: Gateway{URL: "http://localhost:8001"},
		Server:  Server{Addr: ":8080"},
		Log:     Log{Level: "info"},
		Templates: Templates{
			MissingText: "undefined",
		},
		Theme: Theme{Name: "plantilla"},
	}
}

// Options tells Load where to look.
type Options struct {
	// File is an optional YAML file. A missing file is an error.
	File string
	// EnvFiles are loaded with godotenv when they exist. Variables already
	// set in the process environment are not replaced.
	EnvFiles []string
	// SkipEnv disables environment overrides.
	SkipEnv bool
}

// DefaultEnvFiles are the .env files looked up by the CLI.
var DefaultEnvFiles = []string{".env", ".env.local"}

// Load builds a Config from every configured source and validates it.
func Load(opts Options) (Config, error) {
	cfg := Default()

	if opts.File != "" {
		if err := cfg.mergeFile(opts.File); err != nil {
			return Config{}, err
		}
	}
	if _, err := LoadEnv(opts.EnvFiles); err != nil {
		return Config{}, fmt.Errorf("config: load env files: %w", err)
	}
	if !opts.SkipEnv {
		if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
			return Config{}, fmt.Errorf("config: parse environment: %w", err)
		}
	}

	cfg.normalise()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadEnv loads the env files that exist and reports how many were loaded.
func LoadEnv(files []string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}

func (c *Config) normalise() {
	c.Gateway.URL = strings.TrimRight(strings.TrimSpace(c.Gateway.URL), "/")
	c.Server.BasePath = strings.TrimRight(strings.TrimSpace(c.Server.BasePath), "/")
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		c.Server.BasePath = "/" + c.Server.BasePath
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Templates.MissingText == "" {
		c.Templates.MissingText = Default().Templates.MissingText
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Gateway.URL == "" {
		errs = append(errs, errors.New("gateway.url is required"))
	} else if u, err := url.Parse(c.Gateway.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("gateway.url %q must be an absolute URL", c.Gateway.URL))
	}
	if c.Gateway.Timeout < 0 {
		errs = append(errs, fmt.Errorf("gateway.timeout must not be negative, got %s", c.Gateway.Timeout))
	}
	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level: %w", err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: %w", errors.Join(errs...))
}
