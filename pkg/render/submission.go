package render

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/goliatone/go-cascade/pkg/glossary"
	"github.com/goliatone/go-cascade/pkg/model"
	"github.com/goliatone/go-cascade/pkg/widgets"
)

// Suffixes appended to a field name for composite widget inputs.
const (
	UnitSuffix   = ":unit"
	ToggleSuffix = ":toggle"
)

// HiddenField represents a hidden form input emitted alongside the visible
// fields.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs a hidden field carrying the provided token.
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if field.Name == "" {
			continue
		}
		out[field.Name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields sorts hidden fields by name for deterministic rendering.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	names := SortedAttributes(fields)
	if len(names) == 0 {
		return nil
	}
	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: fields[name]})
	}
	return result
}

var sizePattern = regexp.MustCompile(`^(-?\d*\.?\d+)\s*([a-zA-Z%]*)$`)

// SplitSize separates "12.5px" into "12.5" and "px". Values that do not look
// like a size return ok=false.
func SplitSize(value string) (number, unit string, ok bool) {
	match := sizePattern.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return "", "", false
	}
	return match[1], match[2], true
}

// DecodeSubmission converts posted form values into glossary entries using
// the encodings each widget produces. Field errors are keyed by field name.
// Blank inputs are omitted from the glossary.
func DecodeSubmission(form model.FormModel, values url.Values) (glossary.Glossary, map[string][]string) {
	out := glossary.Glossary{}
	errs := map[string][]string{}

	for _, field := range form.Fields {
		if field.Widget == nil {
			continue
		}
		name := field.Name
		switch widget := field.Widget.(type) {
		case widgets.SelectMultiple:
			selected := nonBlank(values[name])
			if invalid := outsideChoices(selected, widget.Choices); len(invalid) > 0 {
				errs[name] = append(errs[name], fmt.Sprintf("invalid choice: %s", strings.Join(invalid, ", ")))
				continue
			}
			if len(selected) > 0 {
				items := make([]any, len(selected))
				for i, value := range selected {
					items[i] = value
				}
				out[name] = items
			}
		case widgets.Select:
			value := strings.TrimSpace(values.Get(name))
			if value == "" {
				continue
			}
			if invalid := outsideChoices([]string{value}, widget.Choices); len(invalid) > 0 {
				errs[name] = append(errs[name], fmt.Sprintf("invalid choice: %s", value))
				continue
			}
			out[name] = value
		case widgets.SelectOverflow:
			value := strings.TrimSpace(values.Get(name))
			if value == "" {
				continue
			}
			if invalid := outsideChoices([]string{value}, widget.Choices()); len(invalid) > 0 {
				errs[name] = append(errs[name], fmt.Sprintf("invalid overflow: %s", value))
				continue
			}
			out[name] = value
		case widgets.MultipleCascadingSize:
			sizes := map[string]any{}
			for _, property := range widget.Properties {
				inputName := name + ":" + property
				number := strings.TrimSpace(values.Get(inputName))
				if number == "" {
					continue
				}
				unit := strings.TrimSpace(values.Get(inputName + UnitSuffix))
				if n, u, ok := SplitSize(number); ok && u != "" {
					number, unit = n, u
				}
				if _, _, ok := SplitSize(number); !ok {
					errs[name] = append(errs[name], fmt.Sprintf("%s: %q is not a number", property, number))
					continue
				}
				if !widget.AcceptsUnit(unit) {
					errs[name] = append(errs[name], fmt.Sprintf("%s: unit %q is not allowed", property, unit))
					continue
				}
				sizes[property] = number + unit
			}
			if len(sizes) > 0 {
				out[name] = sizes
			}
		case widgets.ColorPicker:
			color := strings.TrimSpace(values.Get(name))
			if color == "" {
				continue
			}
			toggle := "off"
			if values.Get(name+ToggleSuffix) == "on" {
				toggle = "on"
			}
			out[name] = []any{toggle, color}
		default:
			if value := strings.TrimSpace(values.Get(name)); value != "" {
				out[name] = value
			}
		}
	}

	if len(errs) == 0 {
		errs = nil
	}
	return out, errs
}

func nonBlank(values []string) []string {
	var out []string
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}

func outsideChoices(values []string, choices []widgets.Choice) []string {
	allowed := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		allowed[choice.Value] = struct{}{}
	}
	var invalid []string
	for _, value := range values {
		if _, ok := allowed[value]; !ok {
			invalid = append(invalid, value)
		}
	}
	sort.Strings(invalid)
	return invalid
}
