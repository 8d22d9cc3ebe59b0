package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/goliatone/go-cascade/pkg/block"
	"github.com/goliatone/go-cascade/pkg/extrafields"
	"github.com/goliatone/go-cascade/pkg/glossary"
	"github.com/goliatone/go-cascade/pkg/model"
	"github.com/goliatone/go-cascade/pkg/plugin"
	"github.com/goliatone/go-cascade/pkg/render"
	"github.com/goliatone/go-cascade/pkg/renderers/vanilla"
	"github.com/goliatone/go-cascade/pkg/site"
)

const defaultRendererName = vanilla.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithPool injects the plugin pool.
func WithPool(pool *Pool) Option {
	return func(o *Orchestrator) {
		o.pool = pool
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that runs after the plugin built
// its form and before decorators.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators run against every form model before
// rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithBlockRenderer replaces the block tag renderer used by Preview.
func WithBlockRenderer(r *block.Renderer) Option {
	return func(o *Orchestrator) {
		o.blocks = r
	}
}

// WithExtraFields wraps every pooled plugin in an extrafields.Extender
// backed by store and sites. Extender options are forwarded.
func WithExtraFields(store extrafields.Store, sites site.Resolver, options ...extrafields.Option) Option {
	return func(o *Orchestrator) {
		o.extraStore = store
		o.extraSites = sites
		o.extraOptions = options
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates plugin lookup, form assembly, and rendering.
type Orchestrator struct {
	pool            *Pool
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	decorators      []model.Decorator
	blocks          *block.Renderer
	logger          *slog.Logger

	extraStore   extrafields.Store
	extraSites   site.Resolver
	extraOptions []extrafields.Option
}

// New constructs an Orchestrator. Missing dependencies default to an empty
// pool, a registry holding the vanilla renderer, and the default block
// policy. The returned error reports failures wiring defaults or extras.
func New(options ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}

	if o.pool == nil {
		o.pool, _ = NewPool()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("orchestrator: default renderer: %w", err)
		}
		o.registry.MustRegister(renderer)
	}
	if o.blocks == nil {
		o.blocks = block.New()
	}
	if o.extraStore != nil {
		if err := o.decoratePool(); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *Orchestrator) decoratePool() error {
	return o.pool.Each(func(pl plugin.Plugin) error {
		_, err := o.extend(pl)
		return err
	})
}

// extend wraps pl in an extra fields Extender and stores it back in the pool.
func (o *Orchestrator) extend(pl plugin.Plugin) (plugin.Plugin, error) {
	if o.extraStore == nil {
		return pl, nil
	}
	if _, done := pl.(*extrafields.Extender); done {
		return pl, nil
	}
	options := append([]extrafields.Option{extrafields.WithLogger(o.logger)}, o.extraOptions...)
	ext, err := extrafields.New(pl, o.extraStore, o.extraSites, options...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: extra fields for %s: %w", pl.Type(), err)
	}
	if err := o.pool.Replace(ext); err != nil {
		return nil, err
	}
	return ext, nil
}

// lookup fetches pluginType, extending plugins registered after New.
func (o *Orchestrator) lookup(pluginType string) (plugin.Plugin, error) {
	pl, err := o.pool.Get(pluginType)
	if err != nil {
		return nil, err
	}
	return o.extend(pl)
}

// Pool exposes the plugin pool. Plugins registered on it after New still
// receive extra fields when the orchestrator was built WithExtraFields.
func (o *Orchestrator) Pool() *Pool {
	return o.pool
}

// Request describes one admin form request.
type Request struct {
	// PluginType selects the plugin whose form is built.
	PluginType string

	// HTTPRequest is the admin request, used for site resolution.
	HTTPRequest *http.Request

	// Instance is the edited block, nil when creating one.
	Instance *plugin.Instance

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	RenderOptions render.RenderOptions
}

// Form builds the form model for req without rendering it.
func (o *Orchestrator) Form(ctx context.Context, req Request) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}

	pl, err := o.lookup(req.PluginType)
	if err != nil {
		return model.FormModel{}, err
	}

	form, err := pl.Form(ctx, req.HTTPRequest, req.Instance, nil)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form for %s: %w", req.PluginType, err)
	}

	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &form); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}
	if err := model.ApplyDecorators(&form, o.decorators...); err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: decorate form: %w", err)
	}
	return form, nil
}

// Generate builds and renders the form for req.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	renderer, err := o.ResolveRenderer(req.Renderer)
	if err != nil {
		return nil, err
	}
	form, err := o.Form(ctx, req)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, form, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.DebugContext(ctx, "form rendered", "plugin", req.PluginType, "renderer", renderer.Name(), "fields", len(form.Fields))
	return output, nil
}

// Submit builds the form for req and decodes values against it. The
// returned map holds per-field validation messages.
func (o *Orchestrator) Submit(ctx context.Context, req Request, values url.Values) (glossary.Glossary, map[string][]string, error) {
	form, err := o.Form(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	decoded, problems := render.DecodeSubmission(form, values)
	return decoded, problems, nil
}

// Preview renders the sanitised opening tag of a block of pluginType.
func (o *Orchestrator) Preview(ctx context.Context, pluginType string, obj *plugin.Instance) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	pl, err := o.lookup(pluginType)
	if err != nil {
		return "", err
	}
	if obj == nil {
		obj = &plugin.Instance{}
	}
	if obj.PluginType == "" {
		obj.PluginType = pluginType
	}
	open, err := o.blocks.Open(pl, obj)
	if err != nil {
		return "", fmt.Errorf("orchestrator: preview %s: %w", pluginType, err)
	}
	return open, nil
}

// Identifier returns the structure-tree label of obj.
func (o *Orchestrator) Identifier(pluginType string, obj *plugin.Instance) (string, error) {
	pl, err := o.lookup(pluginType)
	if err != nil {
		return "", err
	}
	return plugin.Describe(pl, obj), nil
}

// ResolveRenderer returns the named renderer, the default when name is
// empty, or the first registered renderer when no default is available.
func (o *Orchestrator) ResolveRenderer(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}
