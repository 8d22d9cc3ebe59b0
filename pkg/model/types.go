package model

import "github.com/goliatone/go-cascade/pkg/widgets"

// PartialFormField describes one glossary-backed input in a plugin's admin
// form. Name is the glossary key the submitted value is stored under.
type PartialFormField struct {
	Name     string         `json:"name"`
	Widget   widgets.Widget `json:"widget"`
	Label    string         `json:"label,omitempty"`
	HelpText string         `json:"helpText,omitempty"`
	Initial  any            `json:"initial,omitempty"`
}

// FieldOption configures a PartialFormField at construction time.
type FieldOption func(*PartialFormField)

// WithLabel sets the field label.
func WithLabel(label string) FieldOption {
	return func(f *PartialFormField) {
		f.Label = label
	}
}

// WithHelpText sets the help text shown beneath the control.
func WithHelpText(text string) FieldOption {
	return func(f *PartialFormField) {
		f.HelpText = text
	}
}

// WithInitial sets the value used when the glossary holds none.
func WithInitial(value any) FieldOption {
	return func(f *PartialFormField) {
		f.Initial = value
	}
}

// NewField builds a PartialFormField for the glossary key name.
func NewField(name string, widget widgets.Widget, options ...FieldOption) PartialFormField {
	field := PartialFormField{Name: name, Widget: widget}
	for _, opt := range options {
		if opt != nil {
			opt(&field)
		}
	}
	return field
}

// FormModel is the top-level representation renderers consume: the ordered
// glossary fields of one plugin type plus the values currently stored.
type FormModel struct {
	PluginType string             `json:"pluginType"`
	Title      string             `json:"title,omitempty"`
	Fields     []PartialFormField `json:"fields"`
	Values     map[string]any     `json:"values,omitempty"`
	Metadata   map[string]string  `json:"metadata,omitempty"`
}

// Field returns the field stored under name.
func (f FormModel) Field(name string) (PartialFormField, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return PartialFormField{}, false
}

// FieldNames lists field names in form order.
func (f FormModel) FieldNames() []string {
	names := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		names = append(names, field.Name)
	}
	return names
}
