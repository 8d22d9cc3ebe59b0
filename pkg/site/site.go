// Package site resolves which configured site a request belongs to.
package site

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
)

// HeaderSiteID lets a fronting proxy pin the site explicitly.
const HeaderSiteID = "X-Site-ID"

// ErrNotFound reports that no site matches the request.
var ErrNotFound = errors.New("site: not found")

// Site is one tenant of the page framework.
type Site struct {
	ID     string `json:"id" yaml:"id"`
	Domain string `json:"domain" yaml:"domain"`
	Name   string `json:"name" yaml:"name"`
}

// Resolver maps a request to its site.
type Resolver interface {
	CurrentSite(r *http.Request) (Site, error)
}

// ResolverFunc adapts a function into a Resolver.
type ResolverFunc func(r *http.Request) (Site, error)

// CurrentSite calls the underlying function.
func (fn ResolverFunc) CurrentSite(r *http.Request) (Site, error) {
	return fn(r)
}

// Static always resolves to the same site.
func Static(s Site) Resolver {
	return ResolverFunc(func(*http.Request) (Site, error) {
		return s, nil
	})
}

// HostResolver matches the request host against registered site domains. The
// X-Site-ID header takes precedence when header lookups are enabled. When no
// domain matches, the default site is returned if one was configured.
type HostResolver struct {
	mu        sync.RWMutex
	byDomain  map[string]Site
	byID      map[string]Site
	fallback  *Site
	useHeader bool
}

// HostOption configures a HostResolver.
type HostOption func(*HostResolver)

// WithDefault sets the site returned when nothing else matches.
func WithDefault(s Site) HostOption {
	return func(h *HostResolver) {
		h.fallback = &s
	}
}

// WithHeaderLookup honours the X-Site-ID request header.
func WithHeaderLookup(enabled bool) HostOption {
	return func(h *HostResolver) {
		h.useHeader = enabled
	}
}

// NewHostResolver registers the supplied sites by domain and ID.
func NewHostResolver(sites []Site, options ...HostOption) (*HostResolver, error) {
	h := &HostResolver{
		byDomain: make(map[string]Site, len(sites)),
		byID:     make(map[string]Site, len(sites)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	for _, s := range sites {
		if err := h.Add(s); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Add registers a site. Duplicate IDs or domains return an error.
func (h *HostResolver) Add(s Site) error {
	id := strings.TrimSpace(s.ID)
	if id == "" {
		return fmt.Errorf("site: id is required")
	}
	domain := normaliseHost(s.Domain)

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.byID[id]; exists {
		return fmt.Errorf("site: %q already registered", id)
	}
	if domain != "" {
		if _, exists := h.byDomain[domain]; exists {
			return fmt.Errorf("site: domain %q already registered", domain)
		}
		h.byDomain[domain] = s
	}
	h.byID[id] = s
	return nil
}

// CurrentSite implements Resolver.
func (h *HostResolver) CurrentSite(r *http.Request) (Site, error) {
	if r == nil {
		return Site{}, fmt.Errorf("site: request is required")
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.useHeader {
		if id := strings.TrimSpace(r.Header.Get(HeaderSiteID)); id != "" {
			if s, ok := h.byID[id]; ok {
				return s, nil
			}
			return Site{}, fmt.Errorf("%w: id %q", ErrNotFound, id)
		}
	}
	if s, ok := h.byDomain[normaliseHost(r.Host)]; ok {
		return s, nil
	}
	if h.fallback != nil {
		return *h.fallback, nil
	}
	return Site{}, fmt.Errorf("%w: host %q", ErrNotFound, r.Host)
}

func normaliseHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.TrimSuffix(host, ".")
}
