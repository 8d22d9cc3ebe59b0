// Package jsonform renders form models as JSON for script-driven admin
// frontends. Widget descriptors are emitted with their kind so clients can
// pick a control without inspecting Go types.
package jsonform

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-cascade/pkg/model"
	"github.com/goliatone/go-cascade/pkg/render"
	"github.com/goliatone/go-cascade/pkg/widgets"
)

// Name is the registry name of the JSON renderer.
const Name = "json"

type fieldView struct {
	Name     string         `json:"name"`
	Kind     widgets.Kind   `json:"kind"`
	Widget   widgets.Widget `json:"widget"`
	Label    string         `json:"label,omitempty"`
	HelpText string         `json:"helpText,omitempty"`
	Value    any            `json:"value,omitempty"`
	Errors   []string       `json:"errors,omitempty"`
}

type formView struct {
	PluginType string            `json:"pluginType"`
	Title      string            `json:"title,omitempty"`
	Action     string            `json:"action,omitempty"`
	Hidden     map[string]string `json:"hidden,omitempty"`
	Errors     []string          `json:"errors,omitempty"`
	Fields     []fieldView       `json:"fields"`
}

// Renderer implements render.Renderer.
type Renderer struct {
	indent bool
}

var _ render.Renderer = (*Renderer)(nil)

// New returns a JSON renderer. When indent is set the output is pretty
// printed.
func New(indent bool) *Renderer {
	return &Renderer{indent: indent}
}

func (r *Renderer) Name() string        { return Name }
func (r *Renderer) ContentType() string { return "application/json" }

func (r *Renderer) Render(_ context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	view := formView{
		PluginType: form.PluginType,
		Title:      form.Title,
		Action:     options.Action,
		Hidden:     options.Hidden,
		Errors:     options.Errors[""],
		Fields:     make([]fieldView, 0, len(form.Fields)),
	}
	for _, field := range form.Fields {
		if field.Widget == nil {
			return nil, fmt.Errorf("jsonform: field %q has no widget", field.Name)
		}
		value, ok := options.Value(field.Name, form.Values)
		if !ok {
			value = field.Initial
		}
		widget := field.Widget
		if overflow, isOverflow := widget.(widgets.SelectOverflow); isOverflow {
			widget = widgets.Select{Choices: overflow.Choices()}
		}
		view.Fields = append(view.Fields, fieldView{
			Name:     field.Name,
			Kind:     field.Widget.Kind(),
			Widget:   widget,
			Label:    field.Label,
			HelpText: field.HelpText,
			Value:    value,
			Errors:   options.Errors[field.Name],
		})
	}

	var (
		out []byte
		err error
	)
	if r.indent {
		out, err = json.MarshalIndent(view, "", "  ")
	} else {
		out, err = json.Marshal(view)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonform: encode: %w", err)
	}
	return out, nil
}
