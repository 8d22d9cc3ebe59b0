package site

import (
	"errors"
	"net/http/httptest"
	"testing"
)

func newResolver(t *testing.T, options ...HostOption) *HostResolver {
	t.Helper()
	resolver, err := NewHostResolver([]Site{
		{ID: "1", Domain: "example.com", Name: "Example"},
		{ID: "2", Domain: "blog.example.com", Name: "Blog"},
	}, options...)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	return resolver
}

func TestHostResolverMatchesHostIgnoringPort(t *testing.T) {
	resolver := newResolver(t)
	req := httptest.NewRequest("GET", "http://blog.example.com:8080/admin", nil)

	got, err := resolver.CurrentSite(req)
	if err != nil {
		t.Fatalf("current site: %v", err)
	}
	if got.ID != "2" {
		t.Fatalf("expected site 2, got %q", got.ID)
	}
}

func TestHostResolverHeaderOverride(t *testing.T) {
	resolver := newResolver(t, WithHeaderLookup(true))
	req := httptest.NewRequest("GET", "http://example.com/", nil)
	req.Header.Set(HeaderSiteID, "2")

	got, err := resolver.CurrentSite(req)
	if err != nil {
		t.Fatalf("current site: %v", err)
	}
	if got.ID != "2" {
		t.Fatalf("expected header to select site 2, got %q", got.ID)
	}

	req.Header.Set(HeaderSiteID, "99")
	if _, err := resolver.CurrentSite(req); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown header id, got %v", err)
	}
}

func TestHostResolverFallback(t *testing.T) {
	req := httptest.NewRequest("GET", "http://unknown.test/", nil)

	if _, err := newResolver(t).CurrentSite(req); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound without fallback, got %v", err)
	}

	resolver := newResolver(t, WithDefault(Site{ID: "default"}))
	got, err := resolver.CurrentSite(req)
	if err != nil {
		t.Fatalf("current site: %v", err)
	}
	if got.ID != "default" {
		t.Fatalf("expected default site, got %q", got.ID)
	}
}

func TestHostResolverRejectsDuplicates(t *testing.T) {
	_, err := NewHostResolver([]Site{
		{ID: "1", Domain: "example.com"},
		{ID: "2", Domain: "EXAMPLE.com"},
	})
	if err == nil {
		t.Fatalf("expected duplicate domain error")
	}
}
