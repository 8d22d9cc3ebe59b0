// Package config loads process configuration for the cascade binaries from
// environment variables and builds the collaborators they share.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/goliatone/go-cascade/pkg/site"
)

// Store drivers.
const (
	StoreYAML   = "yaml"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config is the environment backed configuration. Command line flags
// override individual values after parsing.
type Config struct {
	Addr        string   `env:"CASCADE_ADDR"         envDefault:":8080"`
	StoreDriver string   `env:"CASCADE_STORE"        envDefault:"yaml"`
	StorePath   string   `env:"CASCADE_STORE_PATH"   envDefault:"extra_fields.yaml"`
	Sites       []string `env:"CASCADE_SITES"        envSeparator:","`
	DefaultSite string   `env:"CASCADE_DEFAULT_SITE" envDefault:"1"`
	SiteHeader  bool     `env:"CASCADE_SITE_HEADER"`
	Plugins     string   `env:"CASCADE_PLUGINS"`
	Presets     string   `env:"CASCADE_PRESETS"`
	Renderer    string   `env:"CASCADE_RENDERER"     envDefault:"vanilla"`
	LogLevel    string   `env:"CASCADE_LOG_LEVEL"    envDefault:"info"`
	LogFormat   string   `env:"CASCADE_LOG_FORMAT"   envDefault:"text"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreYAML, StoreSQLite:
		if strings.TrimSpace(c.StorePath) == "" {
			return fmt.Errorf("config: store path is required for %s", c.StoreDriver)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("config: unknown store %q", c.StoreDriver)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseSites decodes entries of the form "id=domain" or "id=domain=Name".
func ParseSites(entries []string) ([]site.Site, error) {
	var out []site.Site
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 3)
		if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("config: invalid site %q, want id=domain", entry)
		}
		s := site.Site{ID: strings.TrimSpace(parts[0]), Domain: strings.TrimSpace(parts[1])}
		if len(parts) == 3 {
			s.Name = strings.TrimSpace(parts[2])
		}
		out = append(out, s)
	}
	return out, nil
}

// SiteResolver builds the host resolver for c. The default site is
// returned for unknown hosts when it is registered, or when no sites are
// configured at all.
func (c Config) SiteResolver() (*site.HostResolver, error) {
	sites, err := ParseSites(c.Sites)
	if err != nil {
		return nil, err
	}
	options := []site.HostOption{site.WithHeaderLookup(c.SiteHeader)}
	if c.DefaultSite != "" {
		fallback := site.Site{ID: c.DefaultSite}
		for _, s := range sites {
			if s.ID == c.DefaultSite {
				fallback = s
			}
		}
		options = append(options, site.WithDefault(fallback))
		if len(sites) == 0 {
			sites = append(sites, fallback)
		}
	}
	return site.NewHostResolver(sites, options...)
}

// Logger builds the process logger.
func (c Config) Logger() (*slog.Logger, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return 0, fmt.Errorf("config: log level %q: %w", raw, err)
	}
	return level, nil
}
