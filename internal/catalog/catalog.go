// Package catalog declares the plugins served by the cascade binaries. A
// built-in set covers common layout blocks; a YAML file can replace it.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cascade/pkg/model"
	"github.com/goliatone/go-cascade/pkg/plugin"
	"github.com/goliatone/go-cascade/pkg/widgets"
)

// Definition declares one plugin.
type Definition struct {
	Type         string            `yaml:"type"`
	Name         string            `yaml:"name"`
	Tag          string            `yaml:"tag"`
	CSSClasses   []string          `yaml:"css_classes"`
	InlineStyles map[string]string `yaml:"inline_styles"`
	Fields       []FieldDefinition `yaml:"fields"`
}

// FieldDefinition declares one glossary field.
type FieldDefinition struct {
	Name     string   `yaml:"name"`
	Label    string   `yaml:"label"`
	HelpText string   `yaml:"help_text"`
	Widget   string   `yaml:"widget"`
	Choices  []string `yaml:"choices"`
	Initial  any      `yaml:"initial"`
}

type document struct {
	Plugins []Definition `yaml:"plugins"`
}

// Builtins returns the default plugin set.
func Builtins() []plugin.Plugin {
	defs := []Definition{
		{Type: "BootstrapContainerPlugin", Name: "Container", CSSClasses: []string{"container"},
			Fields: []FieldDefinition{{Name: "fluid", Label: "Fluid", Widget: "select", Choices: []string{"", "fluid"}}}},
		{Type: "BootstrapRowPlugin", Name: "Row", CSSClasses: []string{"row"}},
		{Type: "BootstrapColumnPlugin", Name: "Column", CSSClasses: []string{"col"},
			Fields: []FieldDefinition{{Name: "breakpoint", Label: "Breakpoint", Widget: "select", Choices: []string{"sm", "md", "lg", "xl"}}}},
		{Type: "HeadingPlugin", Name: "Heading", Tag: "h2",
			Fields: []FieldDefinition{{Name: "content", Label: "Content", Widget: "text"}}},
		{Type: "SimpleWrapperPlugin", Name: "Wrapper", Tag: "section"},
	}
	out := make([]plugin.Plugin, 0, len(defs))
	for _, def := range defs {
		p, err := def.Plugin()
		if err != nil {
			panic(err)
		}
		out = append(out, p)
	}
	return out
}

// Load reads plugin definitions from a YAML file.
func Load(path string) ([]plugin.Plugin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a "plugins:" YAML document.
func Parse(data []byte) ([]plugin.Plugin, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	out := make([]plugin.Plugin, 0, len(doc.Plugins))
	for _, def := range doc.Plugins {
		p, err := def.Plugin()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Plugin builds the plugin described by d.
func (d Definition) Plugin() (*plugin.Base, error) {
	if d.Type == "" {
		return nil, fmt.Errorf("catalog: plugin type is required")
	}
	name := d.Name
	if name == "" {
		name = d.Type
	}
	base := &plugin.Base{
		TypeName:            d.Type,
		Name:                name,
		TagType:             d.Tag,
		DefaultCSSClasses:   d.CSSClasses,
		DefaultInlineStyles: d.InlineStyles,
	}
	for _, field := range d.Fields {
		widget, err := field.widget()
		if err != nil {
			return nil, fmt.Errorf("catalog: %s.%s: %w", d.Type, field.Name, err)
		}
		base.Fields = append(base.Fields, model.NewField(field.Name, widget,
			model.WithLabel(field.Label),
			model.WithHelpText(field.HelpText),
			model.WithInitial(field.Initial),
		))
	}
	return base, nil
}

func (f FieldDefinition) widget() (widgets.Widget, error) {
	switch widgets.Kind(f.Widget) {
	case "", widgets.KindTextInput:
		return widgets.TextInput{}, nil
	case widgets.KindSelect:
		return widgets.Select{Choices: widgets.ChoicesFromValues(f.Choices)}, nil
	case widgets.KindSelectMultiple:
		return widgets.SelectMultiple{Choices: widgets.ChoicesFromValues(f.Choices)}, nil
	case widgets.KindColorPicker:
		return widgets.ColorPicker{}, nil
	case widgets.KindSelectOverflow:
		return widgets.SelectOverflow{}, nil
	default:
		return nil, fmt.Errorf("unsupported widget %q", f.Widget)
	}
}
