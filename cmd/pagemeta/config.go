package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/pagemeta"
	pmhttp "github.com/fwojciec/pagemeta/http"
	"github.com/fwojciec/pagemeta/inspect"
	"github.com/fwojciec/pagemeta/rod"
	"gopkg.in/yaml.v3"
)

// Extractor names accepted in the config file.
const (
	ExtractorTrafilatura = "trafilatura"
	ExtractorReadability = "readability"
)

// Config holds settings read from the YAML config file. Command-line flags
// take precedence over these values.
type Config struct {
	UserAgent     string        `yaml:"userAgent"`
	Timeout       time.Duration `yaml:"timeout"`
	Concurrency   int           `yaml:"concurrency"`
	RateLimit     float64       `yaml:"rateLimit"`
	RespectRobots bool          `yaml:"respectRobots"`
	Extractor     string        `yaml:"extractor"`
	Languages     []string      `yaml:"languages"`
	Database      string        `yaml:"database"`
	Listen        string        `yaml:"listen"`
	Browser       BrowserConfig `yaml:"browser"`
}

// BrowserConfig configures the headless browser used by --browser.
type BrowserConfig struct {
	MaxPages int `yaml:"maxPages"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		UserAgent:     pmhttp.DefaultUserAgent,
		Timeout:       pmhttp.DefaultFetchTimeout,
		Concurrency:   inspect.DefaultConcurrency,
		RateLimit:     1.0,
		RespectRobots: true,
		Extractor:     ExtractorTrafilatura,
		Listen:        ":8080",
		Browser:       BrowserConfig{MaxPages: rod.DefaultMaxPages},
	}
}

// LoadConfig reads the YAML file at path over the defaults. Keys missing
// from the file keep their default values. An empty path returns the
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// An empty file decodes to io.EOF and leaves the defaults in place.
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "failed to decode config %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error if the config contains invalid values.
func (c *Config) Validate() error {
	switch {
	case c.Timeout < 0:
		return pagemeta.Errorf(pagemeta.EINVALID, "timeout must not be negative")
	case c.Concurrency < 0:
		return pagemeta.Errorf(pagemeta.EINVALID, "concurrency must not be negative")
	case c.RateLimit < 0:
		return pagemeta.Errorf(pagemeta.EINVALID, "rateLimit must not be negative")
	case c.Browser.MaxPages < 0:
		return pagemeta.Errorf(pagemeta.EINVALID, "browser.maxPages must not be negative")
	}
	switch c.Extractor {
	case ExtractorTrafilatura, ExtractorReadability:
	default:
		return pagemeta.Errorf(pagemeta.EINVALID, "unknown extractor %q", c.Extractor)
	}
	return nil
}

// configPath picks the config file to load: the flag, then $PAGEMETA_CONFIG,
// then ~/.pagemeta/config.yaml when it exists.
func configPath(flag string) string {
	if flag != "" {
		return flag
	}
	if path := os.Getenv("PAGEMETA_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".pagemeta", "config.yaml")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return ""
	}
	return path
}
