// Package block renders the opening element of a placed plugin instance from
// the plugin's class, style, and attribute hooks. Output passes through a
// bluemonday policy so glossary values cannot inject markup or arbitrary
// style properties.
package block

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-cascade/pkg/extrafields"
	"github.com/goliatone/go-cascade/pkg/plugin"
	"github.com/goliatone/go-cascade/pkg/render"
)

// Elements the default policy lets blocks render as.
var Elements = []string{
	"div", "section", "article", "aside", "header", "footer", "nav", "main",
	"span", "p", "figure", "ul", "ol", "li", "a", "h1", "h2", "h3", "h4", "h5", "h6",
}

// Tag is the resolved opening element of one block.
type Tag struct {
	Element    string
	Classes    []string
	Styles     map[string]string
	Attributes map[string]string
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithPolicy replaces the sanitising policy.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// WithStyleGroups limits allowed style properties to those of groups.
func WithStyleGroups(groups []extrafields.StyleGroup) Option {
	return func(r *Renderer) {
		r.policy = NewPolicy(groups)
	}
}

// Renderer builds sanitised block tags.
type Renderer struct {
	policy *bluemonday.Policy
}

// New returns a Renderer using NewPolicy over the default style groups
// unless an option overrides it.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.policy == nil {
		r.policy = NewPolicy(extrafields.DefaultStyleGroups())
	}
	return r
}

// NewPolicy allows the block elements, class and id attributes, and style
// declarations for the properties of groups.
func NewPolicy(groups []extrafields.StyleGroup) *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements(Elements...)
	policy.AllowNoAttrs().OnElements(Elements...)
	policy.AllowAttrs("class", "id").Globally()
	if properties := extrafields.StyleProperties(groups); len(properties) > 0 {
		policy.AllowStyles(properties...).Globally()
	}
	return policy
}

// Build collects the block tag from the plugin hooks.
func Build(p plugin.Plugin, obj *plugin.Instance) Tag {
	return Tag{
		Element:    plugin.TagOf(p),
		Classes:    p.CSSClasses(obj),
		Styles:     p.InlineStyles(obj),
		Attributes: p.HTMLTagAttributes(obj),
	}
}

// Open renders the sanitised opening tag for obj.
func (r *Renderer) Open(p plugin.Plugin, obj *plugin.Instance) (string, error) {
	if p == nil {
		return "", fmt.Errorf("block: plugin is required")
	}
	return r.OpenTag(Build(p, obj))
}

// OpenTag serialises and sanitises tag.
func (r *Renderer) OpenTag(tag Tag) (string, error) {
	element := strings.ToLower(strings.TrimSpace(tag.Element))
	if element == "" {
		element = plugin.DefaultTag
	}

	var b strings.Builder
	b.WriteString("<")
	b.WriteString(element)
	if class := render.ClassAttr(tag.Classes); class != "" {
		writeAttr(&b, "class", class)
	}
	if style := render.StyleAttr(tag.Styles); style != "" {
		writeAttr(&b, "style", style)
	}
	for _, name := range render.SortedAttributes(tag.Attributes) {
		if name == "class" || name == "style" {
			continue
		}
		writeAttr(&b, name, tag.Attributes[name])
	}
	b.WriteString("></")
	b.WriteString(element)
	b.WriteString(">")

	closing := "</" + element + ">"
	clean := r.policy.Sanitize(b.String())
	if !strings.HasSuffix(clean, closing) {
		return "", fmt.Errorf("block: element %q is not allowed", element)
	}
	return strings.TrimSuffix(clean, closing), nil
}

// Close returns the closing tag matching Open.
func Close(p plugin.Plugin) string {
	return "</" + strings.ToLower(plugin.TagOf(p)) + ">"
}

// Wrap renders the block around already rendered content.
func (r *Renderer) Wrap(p plugin.Plugin, obj *plugin.Instance, content string) (string, error) {
	open, err := r.Open(p, obj)
	if err != nil {
		return "", err
	}
	return open + content + Close(p), nil
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}
