// Package forms serves the resume form variants as HTML pages.
package forms

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-generator/internal/generator"
	"resume-generator/internal/shared/server/middleware"
	"resume-generator/internal/shared/server/respond"
	"resume-generator/internal/shared/telemetry"
	"resume-generator/resume/variant"
)

//go:embed templates/*.html.tmpl
var templateFiles embed.FS

var pages = template.Must(template.ParseFS(templateFiles, "templates/*.html.tmpl"))

// Catalog lists and resolves variants.
type Catalog interface {
	Get(id string) (variant.Variant, error)
	List() []variant.Variant
	Default() variant.Variant
}

// Handler wires the HTML form to the generator service.
type Handler struct {
	Svc          *generator.Service
	Variants     Catalog
	MaxFormBytes int64
	// DefaultVariant overrides Variants.Default() for GET /.
	DefaultVariant string
}

// NewHandler constructs a Handler.
func NewHandler(svc *generator.Service, variants Catalog, maxFormBytes int64, defaultVariant string) *Handler {
	return &Handler{Svc: svc, Variants: variants, MaxFormBytes: maxFormBytes, DefaultVariant: defaultVariant}
}

// RegisterRoutes attaches the form pages.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.index)
	r.GET("/forms/:variant", h.show)
	r.POST("/forms/:variant", h.submit)
	r.GET("/forms/:variant/resumes/:id", h.result)
}

func (h *Handler) index(c *gin.Context) {
	id := h.Variants.Default().ID
	if h.DefaultVariant != "" {
		if v, err := h.Variants.Get(h.DefaultVariant); err == nil {
			id = v.ID
		}
	}
	c.Redirect(http.StatusFound, "/forms/"+id)
}

func (h *Handler) show(c *gin.Context) {
	v, ok := h.lookup(c)
	if !ok {
		return
	}
	h.render(c, http.StatusOK, "form", buildFormPage(v, h.Variants.List(), nil, nil))
}

func (h *Handler) submit(c *gin.Context) {
	v, ok := h.lookup(c)
	if !ok {
		return
	}
	if h.MaxFormBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxFormBytes)
	}
	if err := c.Request.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "form submission is too large", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "invalid_form", "could not read form submission", nil)
		return
	}

	rec, problems := RecordFromForm(c.Request.PostForm)
	if len(problems) > 0 {
		h.render(c, http.StatusUnprocessableEntity, "form", buildFormPage(v, h.Variants.List(), c.Request.PostForm, problems))
		return
	}

	resume, err := h.Svc.Generate(c.Request.Context(), middleware.UserIDFromContext(c), v.ID, rec)
	if err != nil {
		if errors.Is(err, generator.ErrInvalidInput) {
			h.render(c, http.StatusUnprocessableEntity, "form",
				buildFormPage(v, h.Variants.List(), c.Request.PostForm, generator.Messages(err)))
			return
		}
		respond.Error(c, http.StatusInternalServerError, "generation_failed", "failed to generate resume", nil)
		return
	}
	middleware.SetResumeID(c, resume.ID)
	c.Redirect(http.StatusSeeOther, "/forms/"+v.ID+"/resumes/"+resume.ID)
}

func (h *Handler) result(c *gin.Context) {
	v, ok := h.lookup(c)
	if !ok {
		return
	}
	resume, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, generator.ErrNotFound) || errors.Is(err, generator.ErrForbidden) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load resume", nil)
		return
	}
	middleware.SetResumeID(c, resume.ID)
	h.render(c, http.StatusOK, "result", resultPage{
		Title:       v.Title,
		Role:        v.Role,
		FileName:    resume.FileName,
		DownloadURL: "/api/v1/resumes/" + resume.ID + "/download",
		FormURL:     "/forms/" + v.ID,
		SizeBytes:   resume.SizeBytes,
	})
}

func (h *Handler) lookup(c *gin.Context) (variant.Variant, bool) {
	v, err := h.Variants.Get(c.Param("variant"))
	if err != nil {
		respond.Error(c, http.StatusNotFound, "unknown_variant", "form variant not found", nil)
		return variant.Variant{}, false
	}
	middleware.SetVariantID(c, v.ID)
	return v, true
}

func (h *Handler) render(c *gin.Context, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		telemetry.Error("forms.render_failed", map[string]any{"template": name, "error": err})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render page", nil)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
