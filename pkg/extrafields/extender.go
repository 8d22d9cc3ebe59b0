package extrafields

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goliatone/go-cascade/pkg/glossary"
	"github.com/goliatone/go-cascade/pkg/model"
	"github.com/goliatone/go-cascade/pkg/plugin"
	"github.com/goliatone/go-cascade/pkg/site"
	"github.com/goliatone/go-cascade/pkg/widgets"
)

// Labels used by the generated fields.
const (
	LabelElementID      = "Named Element ID"
	LabelCSSClasses     = "Customized CSS Classes"
	HelpCSSClasses      = "Customized CSS classes to be added to this element."
	BlankCSSChoiceLabel = "Select CSS"
	toggleOn            = "on"
)

// Option customises an Extender.
type Option func(*Extender)

// WithLogger sets the logger used for configuration lookups.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extender) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithStyleGroups replaces the built-in style groups.
func WithStyleGroups(groups []StyleGroup) Option {
	return func(e *Extender) {
		e.groups = append([]StyleGroup(nil), groups...)
	}
}

// Extender decorates a plugin with site-configured extras: an element ID,
// customised CSS classes, and inline styles. It embeds the wrapped plugin so
// hooks it does not override pass straight through.
type Extender struct {
	plugin.Plugin

	store  Store
	sites  site.Resolver
	groups []StyleGroup
	logger *slog.Logger
}

var _ plugin.Plugin = (*Extender)(nil)

// New wraps base. Store and sites are required.
func New(base plugin.Plugin, store Store, sites site.Resolver, options ...Option) (*Extender, error) {
	if base == nil {
		return nil, fmt.Errorf("extrafields: base plugin is required")
	}
	if store == nil {
		return nil, fmt.Errorf("extrafields: store is required")
	}
	if sites == nil {
		return nil, fmt.Errorf("extrafields: site resolver is required")
	}
	e := &Extender{
		Plugin: base,
		store:  store,
		sites:  sites,
		groups: DefaultStyleGroups(),
		logger: slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// Tag reports the wrapped plugin's block element.
func (e *Extender) Tag() string {
	return plugin.TagOf(e.Plugin)
}

// Form appends the configured extra fields to fields (or to the base
// plugin's glossary fields when nil) and delegates to the base Form.
func (e *Extender) Form(ctx context.Context, r *http.Request, obj *plugin.Instance, fields []model.PartialFormField) (model.FormModel, error) {
	if fields == nil {
		fields = e.Plugin.GlossaryFields()
	} else {
		fields = append([]model.PartialFormField(nil), fields...)
	}

	extras, err := e.ExtraFields(ctx, r)
	if err != nil {
		return model.FormModel{}, err
	}
	fields = append(fields, extras...)
	return e.Plugin.Form(ctx, r, obj, fields)
}

// ExtraFields resolves the request's site and returns the fields its record
// enables. A missing site or record yields no fields and no error.
func (e *Extender) ExtraFields(ctx context.Context, r *http.Request) ([]model.PartialFormField, error) {
	current, err := e.sites.CurrentSite(r)
	if err != nil {
		if errors.Is(err, site.ErrNotFound) {
			e.logger.DebugContext(ctx, "extra fields skipped: no site", "plugin", e.Type(), "error", err)
			return nil, nil
		}
		return nil, fmt.Errorf("extrafields: resolve site: %w", err)
	}

	record, err := e.store.Get(ctx, e.Type(), current.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			e.logger.DebugContext(ctx, "extra fields skipped: no configuration", "plugin", e.Type(), "site", current.ID)
			return nil, nil
		}
		return nil, fmt.Errorf("extrafields: load configuration for %s: %w", e.Type(), err)
	}
	return BuildFields(record, e.groups), nil
}

// BuildFields turns a record into form fields: the element ID input, the
// CSS class picker, then style widgets in group order.
func BuildFields(record Record, groups []StyleGroup) []model.PartialFormField {
	var fields []model.PartialFormField

	if record.AllowIDTag {
		fields = append(fields, model.NewField(glossary.KeyElementID, widgets.TextInput{},
			model.WithLabel(LabelElementID),
		))
	}

	if names := record.CSSClasses.Choices(); len(names) > 0 {
		choices := widgets.ChoicesFromValues(names)
		var widget widgets.Widget
		if record.CSSClasses.Multiple {
			widget = widgets.SelectMultiple{Choices: choices}
		} else {
			blank := widgets.Choice{Value: "", Label: BlankCSSChoiceLabel}
			widget = widgets.Select{Choices: append([]widgets.Choice{blank}, choices...)}
		}
		fields = append(fields, model.NewField(glossary.KeyCSSClasses, widget,
			model.WithLabel(LabelCSSClasses),
			model.WithHelpText(HelpCSSClasses),
		))
	}

	for _, group := range groups {
		enabled := knownProperties(group, record.InlineStyles.Enabled(group.Name))
		if len(enabled) == 0 {
			continue
		}
		if group.Grouped {
			units := record.InlineStyles.Units(group.Name)
			if len(units) == 0 {
				units = append([]string(nil), DefaultUnits...)
			}
			widget := widgets.MultipleCascadingSize{
				Properties:   enabled,
				AllowedUnits: units,
				Required:     false,
			}
			fields = append(fields, model.NewField(glossary.InlineStylesKeyPrefix+group.Name, widget,
				model.WithLabel(group.Name),
			))
			continue
		}
		if group.Widget == nil {
			continue
		}
		for _, property := range enabled {
			fields = append(fields, model.NewField(glossary.InlineStylesKeyPrefix+property, group.Widget(),
				model.WithLabel(group.Name+": "+property),
			))
		}
	}
	return fields
}

func knownProperties(group StyleGroup, enabled []string) []string {
	var out []string
	for _, property := range enabled {
		if group.Has(property) {
			out = append(out, property)
		}
	}
	return out
}

// CSSClasses appends the editor's chosen classes to the base classes.
func (e *Extender) CSSClasses(obj *plugin.Instance) []string {
	classes := e.Plugin.CSSClasses(obj)
	if obj == nil {
		return classes
	}
	return MergeCSSClasses(classes, obj.Glossary)
}

// MergeCSSClasses appends the extra_css_classes glossary value, accepting a
// single class name or a list of them.
func MergeCSSClasses(classes []string, g glossary.Glossary) []string {
	for _, name := range g.Strings(glossary.KeyCSSClasses) {
		if name != "" {
			classes = append(classes, name)
		}
	}
	return classes
}

// InlineStyles merges the editor's inline styles over the base styles.
func (e *Extender) InlineStyles(obj *plugin.Instance) map[string]string {
	styles := e.Plugin.InlineStyles(obj)
	if styles == nil {
		styles = make(map[string]string)
	}
	if obj == nil {
		return styles
	}
	return MergeInlineStyles(styles, obj.Glossary)
}

// MergeInlineStyles copies every extra_inline_styles:<suffix> entry of g into
// styles. Three encodings are understood:
//
//   - a mapping of property to value, where empty values are skipped;
//   - a [toggle, value] pair applied under suffix only when toggle is "on";
//   - a bare string applied under suffix.
func MergeInlineStyles(styles map[string]string, g glossary.Glossary) map[string]string {
	for _, key := range g.Prefixed(glossary.InlineStylesKeyPrefix) {
		suffix := strings.TrimPrefix(key, glossary.InlineStylesKeyPrefix)
		switch value := g[key].(type) {
		case map[string]any:
			for property, v := range value {
				if glossary.Truthy(v) {
					styles[property] = fmt.Sprint(v)
				}
			}
		case map[string]string:
			for property, v := range value {
				if v != "" {
					styles[property] = v
				}
			}
		case string:
			if value != "" {
				styles[suffix] = value
			}
		case []string, []any:
			pair := glossary.ToStrings(value)
			if len(pair) >= 2 && pair[0] == toggleOn && pair[1] != "" {
				styles[suffix] = pair[1]
			}
		}
	}
	return styles
}

// HTMLTagAttributes adds the id attribute when an element ID was entered.
func (e *Extender) HTMLTagAttributes(obj *plugin.Instance) map[string]string {
	attributes := e.Plugin.HTMLTagAttributes(obj)
	if attributes == nil {
		attributes = make(map[string]string)
	}
	if obj == nil {
		return attributes
	}
	if id := obj.Glossary.String(glossary.KeyElementID); id != "" {
		attributes["id"] = id
	}
	return attributes
}

// Identifier appends the escaped element ID to the base identifier.
func (e *Extender) Identifier(obj *plugin.Instance) string {
	identifier := e.Plugin.Identifier(obj)
	if obj == nil {
		return identifier
	}
	if id := obj.Glossary.String(glossary.KeyElementID); id != "" {
		return identifier + "<em>" + html.EscapeString(id) + ":</em> "
	}
	return identifier
}
