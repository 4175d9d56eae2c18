// Package config loads the optional domaincheck YAML configuration file and
// supplies defaults for everything the file leaves out.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// DefaultTLDs is the built-in scan list, ordered by rough popularity.
var DefaultTLDs = []string{
	"com", "net", "org", "io", "co", "app", "dev", "ai",
	"me", "info", "xyz", "online", "site", "tech",
}

// Config is the full runtime configuration.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	RDAP  RDAPConfig  `yaml:"rdap"`
	Scan  ScanConfig  `yaml:"scan"`
	Cache CacheConfig `yaml:"cache"`
}

// RDAPConfig controls the RDAP client.
type RDAPConfig struct {
	// Timeout applies to each RDAP HTTP request.
	Timeout time.Duration `yaml:"timeout"`
	// UserAgent is sent on every registry request.
	UserAgent string `yaml:"user_agent"`
	// Endpoints maps a TLD (without dot) to an RDAP base URL, overriding
	// the built-in table and the IANA bootstrap registry.
	Endpoints map[string]string `yaml:"endpoints"`
	// Bootstrap enables fetching the IANA bootstrap registry at startup.
	Bootstrap bool `yaml:"bootstrap"`
}

// ScanConfig controls keyword scans across TLDs.
type ScanConfig struct {
	TLDs     []string `yaml:"tlds"`
	Parallel int      `yaml:"parallel"`
}

// CacheConfig controls the SQLite result cache. An empty Path disables
// caching entirely; every check then does live lookups.
type CacheConfig struct {
	Path string        `yaml:"path"`
	TTL  time.Duration `yaml:"ttl"`
}

// Default returns a complete configuration with no file applied.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		RDAP: RDAPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "domaincheck/1.0",
			Bootstrap: false,
		},
		Scan: ScanConfig{
			TLDs:     append([]string(nil), DefaultTLDs...),
			Parallel: 4,
		},
		Cache: CacheConfig{
			Path: "",
			TTL:  15 * time.Minute,
		},
	}
}

// LoadFromPath reads a YAML config file and merges it over the defaults.
// A missing file is not an error when optional is true.
func LoadFromPath(path string, optional bool) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations that would misbehave at runtime.
func (c *Config) Validate() error {
	if c.RDAP.Timeout <= 0 {
		return fmt.Errorf("rdap.timeout must be positive, got %s", c.RDAP.Timeout)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	if c.Scan.Parallel < 1 {
		return fmt.Errorf("scan.parallel must be at least 1, got %d", c.Scan.Parallel)
	}
	for i, tld := range c.Scan.TLDs {
		if strings.TrimSpace(tld) == "" {
			return fmt.Errorf("scan.tlds[%d] is empty", i)
		}
		if strings.Contains(tld, ".") {
			return fmt.Errorf("scan.tlds[%d] %q must not contain a dot", i, tld)
		}
	}
	for tld, base := range c.RDAP.Endpoints {
		if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
			return fmt.Errorf("rdap.endpoints[%s] %q is not an http(s) URL", tld, base)
		}
	}
	return nil
}
