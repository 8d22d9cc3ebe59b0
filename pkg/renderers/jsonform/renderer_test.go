package jsonform

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cascade/pkg/model"
	"github.com/goliatone/go-cascade/pkg/render"
	"github.com/goliatone/go-cascade/pkg/widgets"
)

func TestRenderEmitsKindsAndValues(t *testing.T) {
	form := model.FormModel{
		PluginType: "BootstrapColumnPlugin",
		Fields: []model.PartialFormField{
			model.NewField("extra_element_id", widgets.TextInput{}, model.WithLabel("Named Element ID")),
			model.NewField("extra_inline_styles:overflow", widgets.SelectOverflow{}),
		},
		Values: map[string]any{"extra_element_id": "hero"},
	}

	out, err := New(false).Render(context.Background(), form, render.RenderOptions{
		Errors: map[string][]string{"extra_element_id": {"taken"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var decoded struct {
		PluginType string `json:"pluginType"`
		Fields     []struct {
			Name   string          `json:"name"`
			Kind   string          `json:"kind"`
			Label  string          `json:"label"`
			Value  any             `json:"value"`
			Errors []string        `json:"errors"`
			Widget json.RawMessage `json:"widget"`
		} `json:"fields"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.PluginType != "BootstrapColumnPlugin" || len(decoded.Fields) != 2 {
		t.Fatalf("unexpected payload %s", out)
	}

	id := decoded.Fields[0]
	if id.Kind != "text" || id.Value != "hero" || id.Label != "Named Element ID" {
		t.Fatalf("unexpected id field %+v", id)
	}
	if diff := cmp.Diff([]string{"taken"}, id.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	overflow := decoded.Fields[1]
	var sel widgets.Select
	if err := json.Unmarshal(overflow.Widget, &sel); err != nil {
		t.Fatalf("decode overflow widget: %v", err)
	}
	if overflow.Kind != "select-overflow" || len(sel.Choices) != len(widgets.OverflowValues)+1 {
		t.Fatalf("expected overflow choices to be expanded, got %s", overflow.Widget)
	}
}

func TestRenderRejectsMissingWidget(t *testing.T) {
	form := model.FormModel{Fields: []model.PartialFormField{{Name: "broken"}}}
	if _, err := New(true).Render(context.Background(), form, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for missing widget")
	}
}
