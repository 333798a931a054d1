// Package config loads the tool configuration from a YAML or JSON file
// and overlays it on compiled defaults. A missing file is not an error;
// the defaults alone are a complete, valid configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"
	yaml "gopkg.in/yaml.v3"

	"seoaudit/internal/linkprobe"
	"seoaudit/internal/page"
	"seoaudit/internal/report"
)

// Config is the full tool configuration. Every field has a usable
// default; a config file only needs to name what it changes.
type Config struct {
	Server  Server  `json:"server" yaml:"server"`
	History History `json:"history" yaml:"history"`
	Fetch   Fetch   `json:"fetch" yaml:"fetch"`
	Probe   Probe   `json:"probe" yaml:"probe"`

	// Weights overrides individual category weights. Categories not
	// named keep their default weight; naming a new category (such as
	// link_health) adds it to the blend.
	Weights map[string]float64 `json:"weights,omitempty" yaml:"weights,omitempty"`

	// ExtendedAnalyzers enables the social/security/mobile/schema
	// categories on full audits.
	ExtendedAnalyzers bool `json:"extended_analyzers" yaml:"extended_analyzers"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `json:"addr" yaml:"addr"`
}

// History configures scan persistence.
type History struct {
	// Path is the SQLite database file. Parent directories are created
	// on open.
	Path string `json:"path" yaml:"path"`
}

// Fetch configures the page fetcher.
type Fetch struct {
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	MaxBodyBytes   int64  `json:"max_body_bytes" yaml:"max_body_bytes"`
	UserAgent      string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// Probe configures the link prober.
type Probe struct {
	Concurrency    int     `json:"concurrency" yaml:"concurrency"`
	TimeoutSeconds int     `json:"timeout_seconds" yaml:"timeout_seconds"`
	MaxTargets     int     `json:"max_targets" yaml:"max_targets"`
	RatePerSecond  float64 `json:"rate_per_second" yaml:"rate_per_second"`
	UserAgent      string  `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// Default returns the compiled defaults.
func Default() Config {
	return Config{
		Server:  Server{Addr: ":8080"},
		History: History{Path: "seoaudit.db"},
		Fetch: Fetch{
			TimeoutSeconds: int(page.DefaultFetchTimeout / time.Second),
			MaxBodyBytes:   page.DefaultMaxBodyBytes,
		},
		Probe: Probe{
			Concurrency:    linkprobe.DefaultConcurrency,
			TimeoutSeconds: int(linkprobe.DefaultTimeout / time.Second),
			MaxTargets:     linkprobe.DefaultMaxTargets,
		},
	}
}

// Load reads the config file at path, overlaying it on Default. An
// empty path or a missing file yields pure defaults; a file that exists
// but fails to parse or validate is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, filepath.Ext(path), &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse unmarshals config bytes over cfg. ext is the file extension
// (".yaml", ".yml", ".json") as a format hint; empty means detect from
// content (JSON when the first non-space byte is '{', YAML otherwise).
func Parse(data []byte, ext string, cfg *Config) error {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	switch ext {
	case ".yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config yaml: %w", err)
		}
		return nil
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config json: %w", err)
		}
		return nil
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config json: %w", err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	return nil
}

// Validate rejects configurations that cannot run. Called by Load after
// the overlay, and again by anything accepting a hand-built Config.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.History.Path == "" {
		return errors.New("history.path must not be empty")
	}
	if c.Fetch.TimeoutSeconds < 1 {
		return fmt.Errorf("fetch.timeout_seconds must be at least 1, got %d", c.Fetch.TimeoutSeconds)
	}
	if c.Fetch.MaxBodyBytes < 1 {
		return fmt.Errorf("fetch.max_body_bytes must be positive, got %d", c.Fetch.MaxBodyBytes)
	}
	if c.Probe.Concurrency < 1 {
		return fmt.Errorf("probe.concurrency must be at least 1, got %d", c.Probe.Concurrency)
	}
	if c.Probe.TimeoutSeconds < 1 {
		return fmt.Errorf("probe.timeout_seconds must be at least 1, got %d", c.Probe.TimeoutSeconds)
	}
	if c.Probe.MaxTargets < 1 {
		return fmt.Errorf("probe.max_targets must be at least 1, got %d", c.Probe.MaxTargets)
	}
	if c.Probe.RatePerSecond < 0 {
		return fmt.Errorf("probe.rate_per_second must not be negative, got %v", c.Probe.RatePerSecond)
	}
	if err := c.WeightTable().Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	return nil
}

// WeightTable returns the default weight table with the config's
// overrides applied.
func (c Config) WeightTable() report.Weights {
	w := report.DefaultWeights()
	for name, weight := range c.Weights {
		w[name] = weight
	}
	return w
}

// FetchConfig translates the fetch section for page.NewFetcher.
func (c Config) FetchConfig() page.FetchConfig {
	return page.FetchConfig{
		Timeout:      time.Duration(c.Fetch.TimeoutSeconds) * time.Second,
		MaxBodyBytes: c.Fetch.MaxBodyBytes,
		UserAgent:    c.Fetch.UserAgent,
	}
}

// ProbeConfig translates the probe section for linkprobe.New.
func (c Config) ProbeConfig() linkprobe.Config {
	return linkprobe.Config{
		Concurrency: c.Probe.Concurrency,
		Timeout:     time.Duration(c.Probe.TimeoutSeconds) * time.Second,
		MaxTargets:  c.Probe.MaxTargets,
		RateLimit:   rate.Limit(c.Probe.RatePerSecond),
		UserAgent:   c.Probe.UserAgent,
	}
}
