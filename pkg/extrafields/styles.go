package extrafields

import "github.com/goliatone/go-cascade/pkg/widgets"

// StyleGroup is a named bundle of CSS properties that administrators enable
// together for a plugin type.
type StyleGroup struct {
	Name       string
	Properties []string
	// Grouped groups render as a single MultipleCascadingSize widget keyed by
	// the group name. Other groups render one Widget per enabled property.
	Grouped bool
	Widget  func() widgets.Widget
}

// Has reports whether property belongs to the group.
func (g StyleGroup) Has(property string) bool {
	for _, candidate := range g.Properties {
		if candidate == property {
			return true
		}
	}
	return false
}

// DefaultUnits are offered by size groups whose record lists no units.
var DefaultUnits = []string{"px", "em", "%"}

// DefaultStyleGroups returns the built-in groups in form order.
func DefaultStyleGroups() []StyleGroup {
	return []StyleGroup{
		{Name: "Margins", Properties: []string{"margin-top", "margin-right", "margin-bottom", "margin-left"}, Grouped: true},
		{Name: "Paddings", Properties: []string{"padding-top", "padding-right", "padding-bottom", "padding-left"}, Grouped: true},
		{Name: "Widths", Properties: []string{"min-width", "width", "max-width"}, Grouped: true},
		{Name: "Heights", Properties: []string{"min-height", "height", "max-height"}, Grouped: true},
		{Name: "Colors", Properties: []string{"color", "background-color"}, Widget: func() widgets.Widget { return widgets.ColorPicker{} }},
		{Name: "Overflow", Properties: []string{"overflow", "overflow-x", "overflow-y"}, Widget: func() widgets.Widget { return widgets.SelectOverflow{} }},
	}
}

// StyleProperties flattens the properties of groups, in order.
func StyleProperties(groups []StyleGroup) []string {
	var out []string
	for _, group := range groups {
		out = append(out, group.Properties...)
	}
	return out
}
