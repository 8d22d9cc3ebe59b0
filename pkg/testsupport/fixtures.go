package testsupport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cascade/pkg/extrafields"
	"github.com/goliatone/go-cascade/pkg/model"
	"github.com/goliatone/go-cascade/pkg/plugin"
	"github.com/goliatone/go-cascade/pkg/site"
	"github.com/goliatone/go-cascade/pkg/widgets"
)

// ColumnPluginType names the sample plugin used across package tests.
const ColumnPluginType = "BootstrapColumnPlugin"

// Site is the sample site every fixture record belongs to.
var Site = site.Site{ID: "1", Domain: "example.com", Name: "Example"}

// ColumnPlugin returns a fresh plugin.Base with one glossary field and a
// default CSS class.
func ColumnPlugin() *plugin.Base {
	return &plugin.Base{
		TypeName:          ColumnPluginType,
		Name:              "Column",
		TagType:           "div",
		DefaultCSSClasses: []string{"col"},
		Fields: []model.PartialFormField{
			model.NewField("breakpoint", widgets.Select{Choices: widgets.ChoicesFromValues([]string{"sm", "md", "lg"})},
				model.WithLabel("Breakpoint")),
		},
	}
}

// ColumnRecord returns a record enabling every extra for the column plugin
// on Site.
func ColumnRecord() extrafields.Record {
	return extrafields.Record{
		PluginType: ColumnPluginType,
		SiteID:     Site.ID,
		AllowIDTag: true,
		CSSClasses: extrafields.CSSClasses{ClassNames: "lead, hero-banner"},
		InlineStyles: extrafields.InlineStyles{
			extrafields.EnabledStylesKeyPrefix + "Margins": []any{"margin-top", "margin-bottom"},
			extrafields.UnitsKeyPrefix + "Margins":         "px,rem",
			extrafields.EnabledStylesKeyPrefix + "Colors":  []any{"color"},
		},
	}
}

// MemoryStore builds a memory store holding records.
func MemoryStore(t *testing.T, records ...extrafields.Record) *extrafields.MemoryStore {
	t.Helper()

	store, err := extrafields.NewMemoryStore(records...)
	if err != nil {
		t.Fatalf("memory store: %v", err)
	}
	return store
}

// Request returns an admin request addressed to host.
func Request(method, host string) *http.Request {
	return httptest.NewRequest(method, "http://"+host+"/admin", nil)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}
