package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-cascade/pkg/glossary"
	"github.com/goliatone/go-cascade/pkg/model"
	"github.com/goliatone/go-cascade/pkg/render"
	"github.com/goliatone/go-cascade/pkg/widgets"
)

// Name is the registry name of the terminal renderer.
const Name = "tui"

// Renderer implements render.Renderer for terminal-driven sessions: it
// prompts for every field of the form and serializes the answers.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        Theme{InfoPrefix: "", ErrorPrefix: "! "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver()
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for each field in order, starting from the stored or
// overridden value, and serializes the collected glossary.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if form.Title != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+form.Title); err != nil {
			return nil, err
		}
	}
	for _, message := range opts.Errors[""] {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return nil, err
		}
	}

	values := map[string]any{}
	for _, field := range form.Fields {
		for _, message := range opts.Errors[field.Name] {
			if err := r.driver.Info(ctx, r.theme.ErrorPrefix+fieldLabel(field)+": "+message); err != nil {
				return nil, err
			}
		}
		current, ok := opts.Value(field.Name, form.Values)
		if !ok {
			current = field.Initial
		}
		value, err := r.promptField(ctx, field, current)
		if err != nil {
			return nil, fmt.Errorf("tui: %s: %w", field.Name, err)
		}
		if value != nil {
			values[field.Name] = value
		}
	}

	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(form, values)
}

func (r *Renderer) promptField(ctx context.Context, field model.PartialFormField, current any) (any, error) {
	label := fieldLabel(field)
	switch widget := field.Widget.(type) {
	case widgets.TextInput:
		out, err := r.driver.Input(ctx, InputConfig{Message: label, Help: field.HelpText, Default: stringOf(current)})
		if err != nil || strings.TrimSpace(out) == "" {
			return nil, err
		}
		return strings.TrimSpace(out), nil
	case widgets.Select:
		return r.promptSelect(ctx, label, field.HelpText, widget.Choices, current)
	case widgets.SelectOverflow:
		return r.promptSelect(ctx, label, field.HelpText, widget.Choices(), current)
	case widgets.SelectMultiple:
		return r.promptMulti(ctx, label, field.HelpText, widget.Choices, current)
	case widgets.MultipleCascadingSize:
		return r.promptSizes(ctx, label, widget, current)
	case widgets.ColorPicker:
		return r.promptColor(ctx, label, current)
	case nil:
		return nil, fmt.Errorf("%w: field has no widget", ErrUnsupportedWidget)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedWidget, widget.Kind())
	}
}

func (r *Renderer) promptSelect(ctx context.Context, label, help string, choices []widgets.Choice, current any) (any, error) {
	if len(choices) == 0 {
		return nil, nil
	}
	options, values := choiceOptions(choices)
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      label,
		Help:         help,
		Options:      options,
		DefaultIndex: indexOf(values, stringOf(current)),
	})
	if err != nil || idx < 0 || idx >= len(values) || values[idx] == "" {
		return nil, err
	}
	return values[idx], nil
}

func (r *Renderer) promptMulti(ctx context.Context, label, help string, choices []widgets.Choice, current any) (any, error) {
	if len(choices) == 0 {
		return nil, nil
	}
	options, values := choiceOptions(choices)
	indices, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  label,
		Help:     help,
		Options:  options,
		Defaults: indicesOf(values, glossary.ToStrings(current)),
	})
	if err != nil {
		return nil, err
	}
	var out []any
	for _, idx := range indices {
		if idx >= 0 && idx < len(values) {
			out = append(out, values[idx])
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func (r *Renderer) promptSizes(ctx context.Context, label string, widget widgets.MultipleCascadingSize, current any) (any, error) {
	stored, _ := current.(map[string]any)
	fallbackUnit := ""
	if len(widget.AllowedUnits) > 0 {
		fallbackUnit = widget.AllowedUnits[0]
	}
	sizes := map[string]any{}
	for _, property := range widget.Properties {
		out, err := r.driver.Input(ctx, InputConfig{
			Message:   label + " " + property,
			Help:      "Units: " + strings.Join(widget.AllowedUnits, ", "),
			Default:   stringOf(stored[property]),
			Validator: sizeValidator(widget),
		})
		if err != nil {
			return nil, err
		}
		out = strings.TrimSpace(out)
		if out == "" {
			continue
		}
		number, unit, _ := render.SplitSize(out)
		if unit == "" {
			unit = fallbackUnit
		}
		sizes[property] = number + unit
	}
	if len(sizes) == 0 {
		return nil, nil
	}
	return sizes, nil
}

func sizeValidator(widget widgets.MultipleCascadingSize) func(string) error {
	return func(value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			return nil
		}
		_, unit, ok := render.SplitSize(value)
		if !ok {
			return fmt.Errorf("%q is not a size", value)
		}
		if unit != "" && !widget.AcceptsUnit(unit) {
			return fmt.Errorf("unit %q is not allowed", unit)
		}
		return nil
	}
}

func (r *Renderer) promptColor(ctx context.Context, label string, current any) (any, error) {
	toggle, color := "", ""
	if pair := glossary.ToStrings(current); len(pair) == 2 {
		toggle, color = pair[0], pair[1]
	}
	enabled, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Set " + label + "?", Default: toggle == "on"})
	if err != nil {
		return nil, err
	}
	if !enabled && color == "" {
		return nil, nil
	}
	if enabled {
		color, err = r.driver.Input(ctx, InputConfig{Message: label, Default: color})
		if err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(color) == "" {
		return nil, nil
	}
	state := "off"
	if enabled {
		state = "on"
	}
	return []any{state, strings.TrimSpace(color)}, nil
}

func (r *Renderer) serialize(form model.FormModel, values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(FormValues(form, values).Encode()), nil
	case OutputFormatPrettyText:
		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, key := range keys {
			fmt.Fprintf(&b, "%s: %v\n", key, values[key])
		}
		return []byte(b.String()), nil
	default:
		out, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode: %w", err)
		}
		return out, nil
	}
}

// FormValues encodes glossary values as the inputs the HTML form posts, so
// the output round-trips through render.DecodeSubmission.
func FormValues(form model.FormModel, values map[string]any) url.Values {
	out := url.Values{}
	for _, field := range form.Fields {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		switch field.Widget.(type) {
		case widgets.MultipleCascadingSize:
			sizes, _ := value.(map[string]any)
			for property, size := range sizes {
				out.Set(field.Name+":"+property, stringOf(size))
			}
		case widgets.ColorPicker:
			if pair := glossary.ToStrings(value); len(pair) == 2 {
				out.Set(field.Name, pair[1])
				if pair[0] == "on" {
					out.Set(field.Name+render.ToggleSuffix, "on")
				}
			}
		default:
			for _, item := range glossary.ToStrings(value) {
				out.Add(field.Name, item)
			}
		}
	}
	return out
}

func fieldLabel(field model.PartialFormField) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func choiceOptions(choices []widgets.Choice) (labels, values []string) {
	for _, choice := range choices {
		label := choice.Label
		if label == "" {
			label = choice.Value
		}
		if label == "" {
			label = "(none)"
		}
		labels = append(labels, label)
		values = append(values, choice.Value)
	}
	return labels, values
}

func stringOf(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	default:
		return fmt.Sprint(typed)
	}
}
