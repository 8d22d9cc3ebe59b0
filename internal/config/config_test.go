package config

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cascade/pkg/extrafields"
	"github.com/goliatone/go-cascade/pkg/site"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.StoreDriver != StoreYAML || cfg.Renderer != "vanilla" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate defaults: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CASCADE_STORE", StoreSQLite)
	t.Setenv("CASCADE_SITES", "1=example.com=Example,2=other.org")
	t.Setenv("CASCADE_SITE_HEADER", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreDriver != StoreSQLite || !cfg.SiteHeader {
		t.Fatalf("unexpected config %+v", cfg)
	}

	sites, err := ParseSites(cfg.Sites)
	if err != nil {
		t.Fatalf("parse sites: %v", err)
	}
	want := []site.Site{
		{ID: "1", Domain: "example.com", Name: "Example"},
		{ID: "2", Domain: "other.org"},
	}
	if diff := cmp.Diff(want, sites); diff != "" {
		t.Fatalf("sites mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsMalformedBool(t *testing.T) {
	t.Setenv("CASCADE_SITE_HEADER", "maybe")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{name: "Memory", cfg: Config{StoreDriver: StoreMemory, LogLevel: "debug"}, ok: true},
		{name: "UnknownStore", cfg: Config{StoreDriver: "redis", LogLevel: "info"}},
		{name: "MissingPath", cfg: Config{StoreDriver: StoreSQLite, LogLevel: "info"}},
		{name: "BadLevel", cfg: Config{StoreDriver: StoreMemory, LogLevel: "loud"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParseSitesRejectsMissingDomain(t *testing.T) {
	if _, err := ParseSites([]string{"1"}); err == nil {
		t.Fatalf("expected error for entry without domain")
	}
}

func TestSiteResolverFallsBackToDefault(t *testing.T) {
	cfg := Config{Sites: []string{"2=other.org"}, DefaultSite: "2"}
	resolver, err := cfg.SiteResolver()
	if err != nil {
		t.Fatalf("site resolver: %v", err)
	}
	current, err := resolver.CurrentSite(httptest.NewRequest("GET", "http://unknown.test/", nil))
	if err != nil {
		t.Fatalf("current site: %v", err)
	}
	if current.ID != "2" || current.Domain != "other.org" {
		t.Fatalf("unexpected site %+v", current)
	}
}

func TestOpenStoreDrivers(t *testing.T) {
	dir := t.TempDir()
	for _, driver := range []string{StoreMemory, StoreYAML, StoreSQLite} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			cfg := Config{StoreDriver: driver, StorePath: filepath.Join(dir, "records."+driver)}
			store, closer, err := cfg.OpenStore(ctx)
			if err != nil {
				t.Fatalf("open store: %v", err)
			}
			defer closer.Close()

			record := extrafields.Record{PluginType: "TextPlugin", SiteID: "1", AllowIDTag: true}
			if err := store.Put(ctx, record); err != nil {
				t.Fatalf("put: %v", err)
			}
			got, err := store.Get(ctx, "TextPlugin", "1")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if !got.AllowIDTag {
				t.Fatalf("unexpected record %+v", got)
			}
		})
	}
}
