package plugin

import (
	"context"
	"html"
	"net/http"

	"github.com/goliatone/go-cascade/pkg/model"
)

// Base implements Plugin with static configuration. Concrete block types
// embed it and override only what they need.
type Base struct {
	TypeName string
	// Name is the human readable plugin name used in form titles.
	Name string
	// TagType is the HTML element the block renders, defaults to "div".
	TagType string
	// DefaultCSSClasses are always rendered on the block element.
	DefaultCSSClasses []string
	// DefaultInlineStyles are always rendered in the style attribute.
	DefaultInlineStyles map[string]string
	Fields              []model.PartialFormField
	Decorators          []model.Decorator
}

var _ Plugin = (*Base)(nil)

func (b *Base) Type() string {
	return b.TypeName
}

// Tag returns the HTML element used for the block.
func (b *Base) Tag() string {
	if b.TagType == "" {
		return DefaultTag
	}
	return b.TagType
}

// GlossaryFields returns a copy so callers can append safely.
func (b *Base) GlossaryFields() []model.PartialFormField {
	return append([]model.PartialFormField(nil), b.Fields...)
}

// Form builds the form model from fields, seeding values from obj.
func (b *Base) Form(_ context.Context, _ *http.Request, obj *Instance, fields []model.PartialFormField) (model.FormModel, error) {
	if fields == nil {
		fields = b.GlossaryFields()
	}
	form := model.FormModel{
		PluginType: b.TypeName,
		Title:      b.Name,
		Fields:     fields,
	}
	if obj != nil && len(obj.Glossary) > 0 {
		form.Values = obj.Glossary.Clone()
	}
	if err := model.ApplyDecorators(&form, b.Decorators...); err != nil {
		return model.FormModel{}, err
	}
	return form, nil
}

func (b *Base) CSSClasses(*Instance) []string {
	return append([]string(nil), b.DefaultCSSClasses...)
}

func (b *Base) InlineStyles(*Instance) map[string]string {
	styles := make(map[string]string, len(b.DefaultInlineStyles))
	for property, value := range b.DefaultInlineStyles {
		styles[property] = value
	}
	return styles
}

func (b *Base) HTMLTagAttributes(*Instance) map[string]string {
	return make(map[string]string)
}

// Identifier returns the escaped plugin name.
func (b *Base) Identifier(*Instance) string {
	return html.EscapeString(b.Name)
}
