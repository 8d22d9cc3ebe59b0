package admin_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-cascade/pkg/admin"
	"github.com/goliatone/go-cascade/pkg/extrafields"
	"github.com/goliatone/go-cascade/pkg/orchestrator"
	"github.com/goliatone/go-cascade/pkg/site"
	"github.com/goliatone/go-cascade/pkg/testsupport"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, store extrafields.Store) *gin.Engine {
	t.Helper()

	pool, err := orchestrator.NewPool(testsupport.ColumnPlugin())
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	sites := site.Static(testsupport.Site)
	orch, err := orchestrator.New(
		orchestrator.WithPool(pool),
		orchestrator.WithExtraFields(store, sites),
	)
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}
	return admin.New(orch, store, sites).Router()
}

func serve(router http.Handler, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "http://example.com"+target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

func TestRenderFormIncludesExtraFields(t *testing.T) {
	router := newRouter(t, testsupport.MemoryStore(t, testsupport.ColumnRecord()))

	rec := serve(router, http.MethodGet, "/admin/plugins/BootstrapColumnPlugin/form", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
	body := rec.Body.String()
	for _, want := range []string{`name="extra_element_id"`, "Select CSS", "hero-banner"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in form:\n%s", want, body)
		}
	}
}

func TestRenderFormWithoutRecordHasNoExtras(t *testing.T) {
	router := newRouter(t, testsupport.MemoryStore(t))

	rec := serve(router, http.MethodGet, "/admin/plugins/BootstrapColumnPlugin/form", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "extra_element_id") {
		t.Fatalf("unexpected extra field in form")
	}
}

func TestRenderFormErrors(t *testing.T) {
	router := newRouter(t, testsupport.MemoryStore(t))

	cases := []struct {
		name   string
		target string
		status int
	}{
		{name: "UnknownPlugin", target: "/admin/plugins/Missing/form", status: http.StatusNotFound},
		{name: "UnknownRenderer", target: "/admin/plugins/BootstrapColumnPlugin/form?renderer=nope", status: http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(router, http.MethodGet, tc.target, nil, "")
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
			var payload map[string]string
			decodeJSON(t, rec, &payload)
			if payload["error"] == "" {
				t.Fatalf("expected error message, got %#v", payload)
			}
		})
	}
}

func TestSubmitFormRejectsInvalidChoice(t *testing.T) {
	router := newRouter(t, testsupport.MemoryStore(t, testsupport.ColumnRecord()))

	values := url.Values{"extra_css_classes": {"bogus"}}
	rec := serve(router, http.MethodPost, "/admin/plugins/BootstrapColumnPlugin/form",
		strings.NewReader(values.Encode()), "application/x-www-form-urlencoded")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "invalid choice") {
		t.Fatalf("expected error in re-rendered form:\n%s", rec.Body.String())
	}
}

func TestSubmitFormReturnsGlossary(t *testing.T) {
	router := newRouter(t, testsupport.MemoryStore(t, testsupport.ColumnRecord()))

	values := url.Values{
		"extra_element_id":                            {"hero"},
		"extra_inline_styles:Margins:margin-top":      {"10"},
		"extra_inline_styles:Margins:margin-top:unit": {"px"},
	}
	rec := serve(router, http.MethodPost, "/admin/plugins/BootstrapColumnPlugin/form",
		strings.NewReader(values.Encode()), "application/x-www-form-urlencoded")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Glossary map[string]any `json:"glossary"`
	}
	decodeJSON(t, rec, &payload)
	if payload.Glossary["extra_element_id"] != "hero" {
		t.Fatalf("unexpected glossary %#v", payload.Glossary)
	}
	margins, _ := payload.Glossary["extra_inline_styles:Margins"].(map[string]any)
	if margins["margin-top"] != "10px" {
		t.Fatalf("unexpected margins %#v", payload.Glossary)
	}
}

func TestPreviewRendersTag(t *testing.T) {
	router := newRouter(t, testsupport.MemoryStore(t, testsupport.ColumnRecord()))

	body := `{"extra_element_id": "hero", "extra_css_classes": ["lead"]}`
	rec := serve(router, http.MethodPost, "/admin/plugins/BootstrapColumnPlugin/preview",
		strings.NewReader(body), "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Tag        string `json:"tag"`
		Identifier string `json:"identifier"`
	}
	decodeJSON(t, rec, &payload)
	if !strings.Contains(payload.Tag, `id="hero"`) || !strings.Contains(payload.Tag, `class="col lead"`) {
		t.Fatalf("unexpected tag %q", payload.Tag)
	}
	if payload.Identifier != "Column<em>hero:</em> " {
		t.Fatalf("unexpected identifier %q", payload.Identifier)
	}
}

func TestPreviewRejectsMalformedJSON(t *testing.T) {
	router := newRouter(t, testsupport.MemoryStore(t))

	rec := serve(router, http.MethodPost, "/admin/plugins/BootstrapColumnPlugin/preview",
		strings.NewReader("{"), "application/json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRecordRoutes(t *testing.T) {
	router := newRouter(t, testsupport.MemoryStore(t))

	rec := serve(router, http.MethodGet, "/admin/extra-fields/BootstrapColumnPlugin", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before put, got %d", rec.Code)
	}

	put := `{"allow_id_tag": true, "css_classes": {"class_names": "lead", "multiple": true}}`
	rec = serve(router, http.MethodPut, "/admin/extra-fields/BootstrapColumnPlugin", strings.NewReader(put), "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on put, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = serve(router, http.MethodGet, "/admin/extra-fields/BootstrapColumnPlugin", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var record extrafields.Record
	decodeJSON(t, rec, &record)
	if record.SiteID != testsupport.Site.ID || !record.AllowIDTag || !record.CSSClasses.Multiple {
		t.Fatalf("unexpected record %+v", record)
	}

	rec = serve(router, http.MethodDelete, "/admin/extra-fields/BootstrapColumnPlugin", nil, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = serve(router, http.MethodGet, "/admin/extra-fields", nil, "")
	var listing struct {
		Records []extrafields.Record `json:"records"`
	}
	decodeJSON(t, rec, &listing)
	if len(listing.Records) != 0 {
		t.Fatalf("expected empty listing, got %+v", listing.Records)
	}
}

func TestListRecordsKeepsCurrentSite(t *testing.T) {
	other := testsupport.ColumnRecord()
	other.SiteID = "2"
	router := newRouter(t, testsupport.MemoryStore(t, testsupport.ColumnRecord(), other))

	rec := serve(router, http.MethodGet, "/admin/extra-fields", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var listing struct {
		Records []extrafields.Record `json:"records"`
	}
	decodeJSON(t, rec, &listing)
	if len(listing.Records) != 1 || listing.Records[0].SiteID != testsupport.Site.ID {
		t.Fatalf("expected only site %s records, got %+v", testsupport.Site.ID, listing.Records)
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context, string, string) (extrafields.Record, error) {
	return extrafields.Record{}, errors.New("database unavailable")
}

func TestStoreFailureReturns500(t *testing.T) {
	router := newRouter(t, failingStore{})

	rec := serve(router, http.MethodGet, "/admin/plugins/BootstrapColumnPlugin/form", nil, "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var payload map[string]string
	decodeJSON(t, rec, &payload)
	if !strings.Contains(payload["error"], "database unavailable") {
		t.Fatalf("unexpected error payload %#v", payload)
	}

	rec = serve(router, http.MethodPut, "/admin/extra-fields/BootstrapColumnPlugin", strings.NewReader("{}"), "application/json")
	if rec.Code != http.StatusNotFound && rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("read-only store must not expose PUT, got %d", rec.Code)
	}
}
