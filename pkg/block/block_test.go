package block_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-cascade/pkg/block"
	"github.com/goliatone/go-cascade/pkg/extrafields"
	"github.com/goliatone/go-cascade/pkg/glossary"
	"github.com/goliatone/go-cascade/pkg/plugin"
	"github.com/goliatone/go-cascade/pkg/site"
)

func newExtender(t *testing.T, tag string) *extrafields.Extender {
	t.Helper()

	store, err := extrafields.NewMemoryStore()
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	base := &plugin.Base{
		TypeName:          "BootstrapColumnPlugin",
		Name:              "Column",
		TagType:           tag,
		DefaultCSSClasses: []string{"col"},
	}
	ext, err := extrafields.New(base, store, site.Static(site.Site{ID: "1"}))
	if err != nil {
		t.Fatalf("new extender: %v", err)
	}
	return ext
}

func TestOpenRendersIDAndClasses(t *testing.T) {
	ext := newExtender(t, "section")
	obj := &plugin.Instance{Glossary: glossary.Glossary{
		glossary.KeyElementID:         "hero",
		glossary.KeyCSSClasses:        []any{"lead", "col"},
		"extra_inline_styles:Margins": map[string]any{"margin-top": "10px"},
	}}

	open, err := block.New().Open(ext, obj)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !strings.HasPrefix(open, "<section") || !strings.HasSuffix(open, ">") {
		t.Fatalf("unexpected tag %q", open)
	}
	for _, want := range []string{`id="hero"`, `class="col lead"`} {
		if !strings.Contains(open, want) {
			t.Fatalf("expected %s in %q", want, open)
		}
	}
	if strings.Contains(open, "</section>") {
		t.Fatalf("opening tag must not be closed: %q", open)
	}
}

func TestOpenDropsDisallowedStylesAndAttributes(t *testing.T) {
	tag := block.Tag{
		Element: "div",
		Classes: []string{"card"},
		Styles:  map[string]string{"position": "fixed"},
		Attributes: map[string]string{
			"id":      "x",
			"onclick": "alert(1)",
		},
	}

	open, err := block.New().OpenTag(tag)
	if err != nil {
		t.Fatalf("open tag: %v", err)
	}
	if strings.Contains(open, "position") || strings.Contains(open, "onclick") {
		t.Fatalf("expected sanitised tag, got %q", open)
	}
	if !strings.Contains(open, `id="x"`) {
		t.Fatalf("expected id to survive, got %q", open)
	}
}

func TestOpenEscapesAttributeValues(t *testing.T) {
	tag := block.Tag{Element: "div", Attributes: map[string]string{"id": `x" onmouseover="alert(1)`}}

	open, err := block.New().OpenTag(tag)
	if err != nil {
		t.Fatalf("open tag: %v", err)
	}
	if strings.Contains(open, `onmouseover="`) {
		t.Fatalf("attribute value broke out of quotes: %q", open)
	}
}

func TestOpenRejectsDisallowedElement(t *testing.T) {
	if _, err := block.New().OpenTag(block.Tag{Element: "script"}); err == nil {
		t.Fatalf("expected error for script element")
	}
}

func TestOpenBareElements(t *testing.T) {
	r := block.New()
	for _, el := range block.Elements {
		t.Run(el, func(t *testing.T) {
			open, err := r.Open(&plugin.Base{TypeName: "Bare", TagType: el}, &plugin.Instance{})
			if err != nil {
				t.Fatalf("open %s: %v", el, err)
			}
			if open != "<"+el+">" {
				t.Fatalf("unexpected tag %q", open)
			}
		})
	}
}

func TestWrapUsesPluginTag(t *testing.T) {
	ext := newExtender(t, "")

	out, err := block.New().Wrap(ext, &plugin.Instance{}, "content")
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	if !strings.HasPrefix(out, `<div class="col">`) || !strings.HasSuffix(out, "content</div>") {
		t.Fatalf("unexpected block %q", out)
	}
}

func TestBuildWithoutExtrasKeepsBase(t *testing.T) {
	ext := newExtender(t, "article")
	tag := block.Build(ext, &plugin.Instance{})
	if tag.Element != "article" || len(tag.Attributes) != 0 {
		t.Fatalf("unexpected tag %+v", tag)
	}
}
