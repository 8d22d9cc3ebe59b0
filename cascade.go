// Package cascade augments page-building plugins with site-configured extra
// fields: an element ID, customised CSS classes, and inline styles. The root
// package re-exports the common entry points; subpackages hold the pieces.
package cascade

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/goliatone/go-cascade/pkg/extrafields"
	"github.com/goliatone/go-cascade/pkg/orchestrator"
	"github.com/goliatone/go-cascade/pkg/plugin"
	"github.com/goliatone/go-cascade/pkg/render"
	"github.com/goliatone/go-cascade/pkg/renderers/vanilla"
	"github.com/goliatone/go-cascade/pkg/site"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Record aliases the extra fields configuration record.
type Record = extrafields.Record

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// Extend wraps base with the extra fields behaviour.
func Extend(base plugin.Plugin, store extrafields.Store, sites site.Resolver, options ...extrafields.Option) (*extrafields.Extender, error) {
	return extrafields.New(base, store, sites, options...)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	return orchestrator.New(options...)
}

// GenerateHTML renders the admin form of one plugin, extended with the extra
// fields configured for the request's site, using the vanilla renderer.
func GenerateHTML(ctx context.Context, base plugin.Plugin, store extrafields.Store, sites site.Resolver, r *http.Request, obj *plugin.Instance) ([]byte, error) {
	pool, err := orchestrator.NewPool(base)
	if err != nil {
		return nil, err
	}
	orch, err := orchestrator.New(
		orchestrator.WithPool(pool),
		orchestrator.WithExtraFields(store, sites),
	)
	if err != nil {
		return nil, err
	}
	return orch.Generate(ctx, orchestrator.Request{
		PluginType:  base.Type(),
		HTTPRequest: r,
		Instance:    obj,
	})
}

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
