// Package plugin defines the contract page-building plugins implement for the
// admin form and rendering pipeline, plus a Base implementation carrying the
// default behaviour that decorating plugins (such as extrafields.Extender)
// build on.
package plugin

import (
	"context"
	"net/http"

	"github.com/goliatone/go-cascade/pkg/glossary"
	"github.com/goliatone/go-cascade/pkg/model"
)

// Instance is one placed block: its plugin type and persisted glossary.
type Instance struct {
	ID         string            `json:"id"`
	PluginType string            `json:"pluginType"`
	Glossary   glossary.Glossary `json:"glossary"`
}

// Plugin is implemented by every block type. Decorators wrap a Plugin and
// delegate to it before merging their own contributions.
type Plugin interface {
	// Type names the plugin; configuration records are keyed by it.
	Type() string
	// GlossaryFields lists the plugin's own form fields.
	GlossaryFields() []model.PartialFormField
	// Form assembles the admin form for obj (nil when creating) from fields.
	Form(ctx context.Context, r *http.Request, obj *Instance, fields []model.PartialFormField) (model.FormModel, error)
	// CSSClasses returns the classes rendered on the block element. Callers
	// may append to the returned slice.
	CSSClasses(obj *Instance) []string
	// InlineStyles returns CSS property/value pairs for the style attribute.
	// Callers may mutate the returned map.
	InlineStyles(obj *Instance) map[string]string
	// HTMLTagAttributes returns extra attributes for the block element.
	// Callers may mutate the returned map.
	HTMLTagAttributes(obj *Instance) map[string]string
	// Identifier is the short HTML label shown for obj in the structure tree.
	Identifier(obj *Instance) string
}

// Describe returns the identifier used when printing an instance.
func Describe(p Plugin, obj *Instance) string {
	if p == nil {
		return ""
	}
	return p.Identifier(obj)
}

// Tagger is implemented by plugins that choose their block element.
type Tagger interface {
	Tag() string
}

// DefaultTag is the element used when a plugin does not implement Tagger.
const DefaultTag = "div"

// TagOf returns the block element for p.
func TagOf(p Plugin) string {
	if tagger, ok := p.(Tagger); ok {
		if tag := tagger.Tag(); tag != "" {
			return tag
		}
	}
	return DefaultTag
}
