package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-cascade/pkg/model"
)

// Transformer mutates a FormModel after the plugin assembled it. Implementations
// can relabel fields, inject metadata, or perform arbitrary rewrites.
type Transformer interface {
	Transform(ctx context.Context, form *model.FormModel) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.FormModel) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.FormModel) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON file.
// Presets are keyed by plugin type; "*" applies to every form:
//
//	{
//	  "*": {"metadata": {"theme": "admin"}},
//	  "BootstrapColumnPlugin": {
//	    "title": "Column",
//	    "fields": {"extra_element_id": {"label": "Anchor", "helpText": "Used in links"}}
//	  }
//	}
//
// Patches naming fields a form does not carry are ignored, since extra
// fields depend on the site configuration of each request.
type JSONPresetTransformer struct {
	presets map[string]jsonPreset
}

type jsonPreset struct {
	Title    string                    `json:"title"`
	Metadata map[string]string         `json:"metadata"`
	Fields   map[string]jsonFieldPatch `json:"fields"`
}

type jsonFieldPatch struct {
	Label    string `json:"label"`
	HelpText string `json:"helpText"`
	Initial  any    `json:"initial"`
}

const wildcardPreset = "*"

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var presets map[string]jsonPreset
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{presets: presets}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the wildcard preset then the plugin type's preset.
func (t *JSONPresetTransformer) Transform(ctx context.Context, form *model.FormModel) error {
	if form == nil {
		return errors.New("json preset transformer: form model is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, key := range []string{wildcardPreset, form.PluginType} {
		preset, ok := t.presets[key]
		if !ok {
			continue
		}
		applyPreset(form, preset)
	}
	return nil
}

func applyPreset(form *model.FormModel, preset jsonPreset) {
	if preset.Title != "" {
		form.Title = preset.Title
	}
	if len(preset.Metadata) > 0 {
		form.Metadata = mergeStringMap(form.Metadata, preset.Metadata)
	}
	for idx := range form.Fields {
		patch, ok := preset.Fields[form.Fields[idx].Name]
		if !ok {
			continue
		}
		applyFieldPatch(&form.Fields[idx], patch)
	}
}

func applyFieldPatch(field *model.PartialFormField, patch jsonFieldPatch) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.HelpText != "" {
		field.HelpText = patch.HelpText
	}
	if patch.Initial != nil {
		field.Initial = patch.Initial
	}
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
