// Package admin exposes the plugin form pipeline and the extra fields
// configuration records over HTTP using gin.
package admin

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-cascade/pkg/extrafields"
	"github.com/goliatone/go-cascade/pkg/glossary"
	"github.com/goliatone/go-cascade/pkg/orchestrator"
	"github.com/goliatone/go-cascade/pkg/plugin"
	"github.com/goliatone/go-cascade/pkg/render"
	"github.com/goliatone/go-cascade/pkg/site"
)

// Option customises a Handler.
type Option func(*Handler)

// WithLogger sets the logger used for failed requests.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithCSRF adds a hidden token field to every rendered form. token is
// called once per request.
func WithCSRF(field string, token func(*gin.Context) string) Option {
	return func(h *Handler) {
		h.csrfField = field
		h.csrfToken = token
	}
}

// Handler serves the admin routes.
type Handler struct {
	orch      *orchestrator.Orchestrator
	store     extrafields.Store
	sites     site.Resolver
	logger    *slog.Logger
	csrfField string
	csrfToken func(*gin.Context) string
}

// New returns a Handler. store and sites back the extra fields record
// routes; when store also implements extrafields.WritableStore the PUT and
// DELETE routes are enabled.
func New(orch *orchestrator.Orchestrator, store extrafields.Store, sites site.Resolver, options ...Option) *Handler {
	h := &Handler{
		orch:   orch,
		store:  store,
		sites:  sites,
		logger: slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Register mounts the admin routes on r.
func (h *Handler) Register(r gin.IRouter) {
	group := r.Group("/admin")
	group.GET("/plugins", h.listPlugins)
	group.GET("/plugins/:type/form", h.renderForm)
	group.POST("/plugins/:type/form", h.submitForm)
	group.POST("/plugins/:type/preview", h.preview)
	group.GET("/extra-fields", h.listRecords)
	group.GET("/extra-fields/:type", h.getRecord)
	if _, ok := h.store.(extrafields.WritableStore); ok {
		group.PUT("/extra-fields/:type", h.putRecord)
		group.DELETE("/extra-fields/:type", h.deleteRecord)
	}
}

// Router builds a gin engine with recovery and the admin routes.
func (h *Handler) Router() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	h.Register(engine)
	return engine
}

func (h *Handler) listPlugins(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plugins": h.orch.Pool().List()})
}

func (h *Handler) renderForm(c *gin.Context) {
	h.writeForm(c, http.StatusOK, render.RenderOptions{})
}

func (h *Handler) writeForm(c *gin.Context, status int, options render.RenderOptions) {
	renderer, err := h.orch.ResolveRenderer(c.Query("renderer"))
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	options.Action = c.Request.URL.Path
	if h.csrfToken != nil {
		options.Hidden = render.MergeHiddenFields(options.Hidden, render.CSRFToken(h.csrfField, h.csrfToken(c)))
	}

	body, err := h.orch.Generate(c.Request.Context(), orchestrator.Request{
		PluginType:    c.Param("type"),
		HTTPRequest:   c.Request,
		Renderer:      renderer.Name(),
		RenderOptions: options,
	})
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}
	c.Data(status, renderer.ContentType(), body)
}

func (h *Handler) submitForm(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	req := orchestrator.Request{PluginType: c.Param("type"), HTTPRequest: c.Request}
	decoded, problems, err := h.orch.Submit(c.Request.Context(), req, c.Request.PostForm)
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}
	if len(problems) > 0 {
		h.writeForm(c, http.StatusUnprocessableEntity, render.RenderOptions{
			Values: decoded,
			Errors: problems,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"glossary": decoded})
}

type previewResponse struct {
	Tag        string `json:"tag"`
	Identifier string `json:"identifier"`
}

func (h *Handler) preview(c *gin.Context) {
	var payload glossary.Glossary
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	pluginType := c.Param("type")
	obj := &plugin.Instance{PluginType: pluginType, Glossary: payload}
	tag, err := h.orch.Preview(c.Request.Context(), pluginType, obj)
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}
	identifier, err := h.orch.Identifier(pluginType, obj)
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, previewResponse{Tag: tag, Identifier: identifier})
}

func (h *Handler) listRecords(c *gin.Context) {
	writable, ok := h.store.(extrafields.WritableStore)
	if !ok {
		h.fail(c, http.StatusNotImplemented, errors.New("admin: store does not support listing"))
		return
	}
	current, ok := h.currentSite(c)
	if !ok {
		return
	}
	all, err := writable.List(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	records := make([]extrafields.Record, 0, len(all))
	for _, record := range all {
		if record.SiteID == current.ID {
			records = append(records, record)
		}
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *Handler) getRecord(c *gin.Context) {
	current, ok := h.currentSite(c)
	if !ok {
		return
	}
	record, err := h.store.Get(c.Request.Context(), c.Param("type"), current.ID)
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) putRecord(c *gin.Context) {
	current, ok := h.currentSite(c)
	if !ok {
		return
	}
	var record extrafields.Record
	if err := c.ShouldBindJSON(&record); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	record.PluginType = c.Param("type")
	record.SiteID = current.ID

	if err := h.store.(extrafields.WritableStore).Put(c.Request.Context(), record); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) deleteRecord(c *gin.Context) {
	current, ok := h.currentSite(c)
	if !ok {
		return
	}
	if err := h.store.(extrafields.WritableStore).Delete(c.Request.Context(), c.Param("type"), current.ID); err != nil {
		h.fail(c, statusFor(err), err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) currentSite(c *gin.Context) (site.Site, bool) {
	current, err := h.sites.CurrentSite(c.Request)
	if err != nil {
		h.fail(c, statusFor(err), err)
		return site.Site{}, false
	}
	return current, true
}

func (h *Handler) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(c.Request.Context(), "admin request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, orchestrator.ErrUnknownPlugin),
		errors.Is(err, extrafields.ErrNotFound),
		errors.Is(err, site.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
