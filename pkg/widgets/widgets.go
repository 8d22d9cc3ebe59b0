package widgets

import "strings"

// Kind identifies a widget descriptor independently of the component used to
// render it.
type Kind string

const (
	KindTextInput      Kind = "text"
	KindSelect         Kind = "select"
	KindSelectMultiple Kind = "select-multiple"
	KindCascadingSize  Kind = "cascading-size"
	KindColorPicker    Kind = "color-picker"
	KindSelectOverflow Kind = "select-overflow"
)

// Widget describes how a form field collects its value. Descriptors carry no
// rendering logic; renderers resolve a component for them via Registry.
type Widget interface {
	Kind() Kind
}

// Choice is a single option offered by select-style widgets. A blank Value
// marks the "nothing selected" option.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ChoicesFromValues builds choices whose label mirrors the value.
func ChoicesFromValues(values []string) []Choice {
	if len(values) == 0 {
		return nil
	}
	out := make([]Choice, 0, len(values))
	for _, value := range values {
		out = append(out, Choice{Value: value, Label: value})
	}
	return out
}

// TextInput is a free-text single line input.
type TextInput struct {
	Placeholder string `json:"placeholder,omitempty"`
}

func (TextInput) Kind() Kind { return KindTextInput }

// Select offers a single choice.
type Select struct {
	Choices []Choice `json:"choices"`
}

func (Select) Kind() Kind { return KindSelect }

// SelectMultiple offers any number of choices.
type SelectMultiple struct {
	Choices []Choice `json:"choices"`
}

func (SelectMultiple) Kind() Kind { return KindSelectMultiple }

// MultipleCascadingSize groups related dimensional CSS properties (for
// example margin-top..margin-left) into one composite input. Each property
// accepts a number followed by one of AllowedUnits. The submitted value is a
// mapping of property to size.
type MultipleCascadingSize struct {
	Properties   []string `json:"properties"`
	AllowedUnits []string `json:"allowedUnits"`
	Required     bool     `json:"required"`
}

func (MultipleCascadingSize) Kind() Kind { return KindCascadingSize }

// AcceptsUnit reports whether the supplied unit is allowed. An empty
// AllowedUnits list accepts any unit.
func (w MultipleCascadingSize) AcceptsUnit(unit string) bool {
	if len(w.AllowedUnits) == 0 {
		return true
	}
	unit = strings.TrimSpace(unit)
	for _, allowed := range w.AllowedUnits {
		if allowed == unit {
			return true
		}
	}
	return false
}

// ColorPicker collects a toggle plus a colour value. The submitted value is a
// two element sequence: the toggle state ("on" to apply) and the colour.
type ColorPicker struct{}

func (ColorPicker) Kind() Kind { return KindColorPicker }

// OverflowValues lists the CSS overflow keywords offered by SelectOverflow.
var OverflowValues = []string{"auto", "scroll", "hidden", "visible"}

// SelectOverflow is a select restricted to CSS overflow keywords.
type SelectOverflow struct{}

func (SelectOverflow) Kind() Kind { return KindSelectOverflow }

// Choices returns the overflow keywords preceded by a blank option.
func (SelectOverflow) Choices() []Choice {
	return append([]Choice{{Value: "", Label: "inherit"}}, ChoicesFromValues(OverflowValues)...)
}
