package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cascade/internal/config"
	"github.com/goliatone/go-cascade/pkg/extrafields"
	"github.com/goliatone/go-cascade/pkg/extrafields/yamlstore"
	"github.com/goliatone/go-cascade/pkg/renderers/tui"
)

func seedStore(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "extra_fields.yaml")
	store, err := yamlstore.Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	record := extrafields.Record{
		PluginType: "BootstrapColumnPlugin",
		SiteID:     "1",
		AllowIDTag: true,
		CSSClasses: extrafields.CSSClasses{ClassNames: "lead, hero"},
	}
	if err := store.Put(context.Background(), record); err != nil {
		t.Fatalf("put: %v", err)
	}
	return path
}

func execute(t *testing.T, path string, args ...string) (string, error) {
	t.Helper()

	a := &app{cfg: config.Config{StoreDriver: config.StoreYAML, StorePath: path, LogLevel: "info", DefaultSite: "1"}}
	root := newRootCommand(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGetAndList(t *testing.T) {
	path := seedStore(t)

	out, err := execute(t, path, "get", "BootstrapColumnPlugin")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !strings.Contains(out, "class_names: lead, hero") {
		t.Fatalf("unexpected get output:\n%s", out)
	}

	out, err = execute(t, path, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "plugin_type: BootstrapColumnPlugin") {
		t.Fatalf("unexpected list output:\n%s", out)
	}
}

func TestGetMissingRecordFails(t *testing.T) {
	path := seedStore(t)
	if _, err := execute(t, path, "get", "HeadingPlugin"); err == nil {
		t.Fatalf("expected not found error")
	}
}

func TestDeleteRemovesRecord(t *testing.T) {
	path := seedStore(t)

	if _, err := execute(t, path, "delete", "BootstrapColumnPlugin"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	if strings.Contains(string(data), "BootstrapColumnPlugin") {
		t.Fatalf("record still persisted:\n%s", data)
	}
}

func TestFormRendersExtraFields(t *testing.T) {
	path := seedStore(t)

	out, err := execute(t, path, "form", "BootstrapColumnPlugin", "--renderer", "json")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	for _, want := range []string{`"extra_element_id"`, `"extra_css_classes"`, `"Select CSS"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output:\n%s", want, out)
		}
	}
}

func TestFormUnknownPlugin(t *testing.T) {
	path := seedStore(t)
	if _, err := execute(t, path, "form", "MissingPlugin"); err == nil {
		t.Fatalf("expected unknown plugin error")
	}
}

func TestPreviewReadsGlossary(t *testing.T) {
	path := seedStore(t)
	glossPath := filepath.Join(t.TempDir(), "glossary.json")
	if err := os.WriteFile(glossPath, []byte(`{"extra_element_id": "intro", "extra_css_classes": "lead"}`), 0o644); err != nil {
		t.Fatalf("write glossary: %v", err)
	}

	out, err := execute(t, path, "preview", "BootstrapColumnPlugin", "--glossary", glossPath)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(out, `id="intro"`) || !strings.Contains(out, "Column<em>intro:</em>") {
		t.Fatalf("unexpected preview:\n%s", out)
	}
}

// scriptedDriver answers the editor prompts by message.
type scriptedDriver struct {
	inputs   map[string]string
	confirms map[string]bool
	multis   map[string][]int
}

func (d scriptedDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	if out, ok := d.inputs[cfg.Message]; ok {
		return out, nil
	}
	return cfg.Default, nil
}

func (d scriptedDriver) Confirm(_ context.Context, cfg tui.ConfirmConfig) (bool, error) {
	return d.confirms[cfg.Message], nil
}

func (d scriptedDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	return cfg.DefaultIndex, nil
}

func (d scriptedDriver) MultiSelect(_ context.Context, cfg tui.SelectConfig) ([]int, error) {
	if out, ok := d.multis[cfg.Message]; ok {
		return out, nil
	}
	return cfg.Defaults, nil
}

func (scriptedDriver) Info(context.Context, string) error { return nil }

func TestRecordEditor(t *testing.T) {
	editor := recordEditor{
		driver: scriptedDriver{
			inputs: map[string]string{
				"CSS class names": "lead, muted",
				"Margins units":   "px, rem",
			},
			confirms: map[string]bool{
				"Allow an element ID?":    true,
				"Allow multiple classes?": true,
			},
			multis: map[string][]int{
				"Margins": {0, 2},
				"Colors":  {1},
			},
		},
		groups: extrafields.DefaultStyleGroups(),
	}

	got, err := editor.Edit(context.Background(), extrafields.Record{PluginType: "BootstrapColumnPlugin", SiteID: "1"})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	want := extrafields.Record{
		PluginType: "BootstrapColumnPlugin",
		SiteID:     "1",
		AllowIDTag: true,
		CSSClasses: extrafields.CSSClasses{ClassNames: "lead, muted", Multiple: true},
		InlineStyles: extrafields.InlineStyles{
			"extra_fields:Margins": []any{"margin-top", "margin-bottom"},
			"extra_units:Margins":  "px,rem",
			"extra_fields:Colors":  []any{"background-color"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}
