package render

import (
	"context"
	"testing"

	"github.com/goliatone/go-cascade/pkg/model"
)

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, model.FormModel, RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistryDefaultsToFirstRenderer(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(stubRenderer{name: "vanilla"})
	reg.MustRegister(stubRenderer{name: "json"})

	got, err := reg.Get("")
	if err != nil {
		t.Fatalf("get default: %v", err)
	}
	if got.Name() != "vanilla" {
		t.Fatalf("expected vanilla default, got %q", got.Name())
	}

	if err := reg.SetDefault("json"); err != nil {
		t.Fatalf("set default: %v", err)
	}
	if got, _ := reg.Get(""); got.Name() != "json" {
		t.Fatalf("expected json default, got %q", got.Name())
	}
	if err := reg.SetDefault("missing"); err == nil {
		t.Fatalf("expected error for unknown default")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(stubRenderer{name: "vanilla"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(stubRenderer{name: "vanilla"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if _, err := reg.Get("preact"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
	if names := reg.List(); len(names) != 1 || names[0] != "vanilla" {
		t.Fatalf("unexpected names %v", names)
	}
}
