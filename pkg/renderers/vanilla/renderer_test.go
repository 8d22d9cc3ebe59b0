package vanilla_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/goliatone/go-cascade/pkg/extrafields"
	"github.com/goliatone/go-cascade/pkg/glossary"
	"github.com/goliatone/go-cascade/pkg/model"
	"github.com/goliatone/go-cascade/pkg/render"
	"github.com/goliatone/go-cascade/pkg/renderers/vanilla"
	"github.com/goliatone/go-cascade/pkg/widgets"
)

func extraFieldsForm() model.FormModel {
	record := extrafields.Record{
		PluginType: "BootstrapColumnPlugin",
		SiteID:     "1",
		AllowIDTag: true,
		CSSClasses: extrafields.CSSClasses{ClassNames: "foo,bar"},
		InlineStyles: extrafields.InlineStyles{
			"extra_fields:Margins":  []any{"margin-top"},
			"extra_units:Margins":   "px,em",
			"extra_fields:Colors":   []any{"color"},
			"extra_fields:Overflow": []any{"overflow"},
		},
	}
	return model.FormModel{
		PluginType: record.PluginType,
		Title:      "Column",
		Fields:     extrafields.BuildFields(record, extrafields.DefaultStyleGroups()),
		Values: map[string]any{
			glossary.KeyElementID:         "hero",
			glossary.KeyCSSClasses:        "bar",
			"extra_inline_styles:Margins": map[string]any{"margin-top": "2em"},
			"extra_inline_styles:color":   []any{"on", "#ff0000"},
		},
	}
}

func renderForm(t *testing.T, form model.FormModel, options render.RenderOptions) string {
	t.Helper()
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(context.Background(), form, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(output)
}

func TestRendererRendersExtraFields(t *testing.T) {
	html := renderForm(t, extraFieldsForm(), render.RenderOptions{})

	expectations := []string{
		`data-plugin-type="BootstrapColumnPlugin"`,
		`<h2 class="cascade-form__title">Column</h2>`,
		`<label for="cf-extra_element_id">Named Element ID</label>`,
		`name="extra_element_id" value="hero"`,
		`<option value="">Select CSS</option>`,
		`<option value="bar" selected>bar</option>`,
		`<option value="foo">foo</option>`,
		`Customized CSS classes to be added to this element.`,
		`name="extra_inline_styles:Margins:margin-top" value="2"`,
		`<option value="em" selected>em</option>`,
		`name="extra_inline_styles:color:toggle" value="on" checked`,
		`name="extra_inline_styles:color" value="#ff0000"`,
		`<option value="hidden">hidden</option>`,
	}
	for _, want := range expectations {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, html)
		}
	}
}

func TestRendererUsesOverridesAndErrors(t *testing.T) {
	html := renderForm(t, extraFieldsForm(), render.RenderOptions{
		Action: "/admin/plugins/BootstrapColumnPlugin/form",
		Values: map[string]any{glossary.KeyElementID: "<main>"},
		Errors: map[string][]string{
			"":                     {"could not save"},
			glossary.KeyCSSClasses: {"invalid choice: evil"},
		},
		Hidden: map[string]string{"_csrf": "token"},
	})

	expectations := []string{
		`action="/admin/plugins/BootstrapColumnPlugin/form"`,
		`value="&lt;main&gt;"`,
		`<input type="hidden" name="_csrf" value="token">`,
		`<p class="cascade-form__error">could not save</p>`,
		`cascade-field--invalid`,
		`<p class="cascade-field__error">invalid choice: evil</p>`,
	}
	for _, want := range expectations {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, html)
		}
	}
}

func TestRendererDefaultsUnitToFirstAllowed(t *testing.T) {
	form := model.FormModel{Fields: []model.PartialFormField{
		model.NewField("extra_inline_styles:Widths", widgets.MultipleCascadingSize{
			Properties:   []string{"width"},
			AllowedUnits: []string{"%", "px"},
		}),
	}}
	html := renderForm(t, form, render.RenderOptions{})
	if !strings.Contains(html, `<option value="%" selected>%</option>`) {
		t.Fatalf("expected first unit to be preselected, got:\n%s", html)
	}
}

type unknownWidget struct{}

func (unknownWidget) Kind() widgets.Kind { return "mystery" }

func TestRendererRejectsUnknownWidgets(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	form := model.FormModel{Fields: []model.PartialFormField{model.NewField("x", unknownWidget{})}}
	if _, err := renderer.Render(context.Background(), form, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for unknown widget")
	}
}

type stubTemplateRenderer struct {
	calls []string
	fail  string
}

func (s *stubTemplateRenderer) RenderTemplate(name string, _ any, _ ...io.Writer) (string, error) {
	s.calls = append(s.calls, name)
	if name == s.fail {
		return "", errors.New("boom")
	}
	if name == "templates/form.tmpl" {
		return "custom-output", nil
	}
	return "<component />", nil
}

func (s *stubTemplateRenderer) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (s *stubTemplateRenderer) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func TestRendererWithTemplateRenderer(t *testing.T) {
	stub := &stubTemplateRenderer{}
	renderer, err := vanilla.New(vanilla.WithTemplateRenderer(stub))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form := model.FormModel{Fields: []model.PartialFormField{model.NewField("x", widgets.TextInput{})}}
	output, err := renderer.Render(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(output) != "custom-output" {
		t.Fatalf("expected stub output, got %q", output)
	}
	want := []string{"templates/components/input.tmpl", "templates/form.tmpl"}
	if strings.Join(stub.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected template calls %v", stub.calls)
	}

	stub.fail = "templates/components/input.tmpl"
	if _, err := renderer.Render(context.Background(), form, render.RenderOptions{}); err == nil {
		t.Fatalf("expected component failure to propagate")
	}
}
