package vanilla

import (
	"fmt"

	"github.com/goliatone/go-cascade/pkg/glossary"
	"github.com/goliatone/go-cascade/pkg/model"
	"github.com/goliatone/go-cascade/pkg/render"
	"github.com/goliatone/go-cascade/pkg/widgets"
)

const defaultColor = "#000000"

func (r *Renderer) renderField(field model.PartialFormField, stored map[string]any, options render.RenderOptions) (map[string]any, error) {
	component, ok := r.widgets.Resolve(field.Widget)
	if !ok {
		return nil, fmt.Errorf("no component for field %q (%T)", field.Name, field.Widget)
	}

	value, ok := options.Value(field.Name, stored)
	if !ok {
		value = field.Initial
	}
	data := controlData(field, value)

	control, err := r.templates.RenderTemplate(componentTemplate(component), data)
	if err != nil {
		return nil, fmt.Errorf("render component %q for field %q: %w", component, field.Name, err)
	}

	label := field.Label
	if label == "" {
		label = field.Name
	}
	return map[string]any{
		"id":        data["id"],
		"name":      field.Name,
		"label":     label,
		"help":      field.HelpText,
		"component": component,
		"control":   control,
		"errors":    options.Errors[field.Name],
	}, nil
}

// controlData builds the template context for a widget from its current
// glossary value.
func controlData(field model.PartialFormField, value any) map[string]any {
	id := controlID(field.Name)
	data := map[string]any{
		"id":   id,
		"name": field.Name,
	}

	switch widget := field.Widget.(type) {
	case widgets.TextInput:
		data["value"] = stringValue(value)
		data["placeholder"] = widget.Placeholder
	case widgets.Select:
		data["choices"] = choiceData(widget.Choices, glossary.ToStrings(value))
	case widgets.SelectMultiple:
		data["choices"] = choiceData(widget.Choices, glossary.ToStrings(value))
	case widgets.SelectOverflow:
		data["choices"] = choiceData(widget.Choices(), glossary.ToStrings(value))
	case widgets.MultipleCascadingSize:
		data["units"] = widget.AllowedUnits
		data["required"] = widget.Required
		data["rows"] = sizeRows(field.Name, widget, value)
	case widgets.ColorPicker:
		pair := glossary.ToStrings(value)
		data["toggleName"] = field.Name + render.ToggleSuffix
		data["enabled"] = len(pair) > 0 && pair[0] == "on"
		data["color"] = defaultColor
		if len(pair) > 1 && pair[1] != "" {
			data["color"] = pair[1]
		}
	default:
		data["value"] = stringValue(value)
	}
	return data
}

func choiceData(choices []widgets.Choice, selected []string) []map[string]any {
	chosen := make(map[string]struct{}, len(selected))
	for _, value := range selected {
		chosen[value] = struct{}{}
	}
	out := make([]map[string]any, 0, len(choices))
	for _, choice := range choices {
		_, isSelected := chosen[choice.Value]
		out = append(out, map[string]any{
			"value":    choice.Value,
			"label":    choice.Label,
			"selected": isSelected,
		})
	}
	return out
}

func sizeRows(name string, widget widgets.MultipleCascadingSize, value any) []map[string]any {
	sizes := map[string]string{}
	switch typed := value.(type) {
	case map[string]any:
		for property, size := range typed {
			if s, ok := size.(string); ok {
				sizes[property] = s
			}
		}
	case map[string]string:
		sizes = typed
	}

	rows := make([]map[string]any, 0, len(widget.Properties))
	for _, property := range widget.Properties {
		number, unit, _ := render.SplitSize(sizes[property])
		if unit == "" && len(widget.AllowedUnits) > 0 {
			unit = widget.AllowedUnits[0]
		}
		inputName := name + ":" + property
		rows = append(rows, map[string]any{
			"id":       controlID(inputName),
			"name":     inputName,
			"unitName": inputName + render.UnitSuffix,
			"property": property,
			"number":   number,
			"unit":     unit,
		})
	}
	return rows
}

func stringValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	default:
		return fmt.Sprint(typed)
	}
}
