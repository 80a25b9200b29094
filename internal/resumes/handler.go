// Package resumes exposes variants and generated resumes over JSON.
package resumes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-generator/internal/generator"
	"resume-generator/internal/shared/server/middleware"
	"resume-generator/internal/shared/server/respond"
	"resume-generator/resume/model"
	"resume-generator/resume/variant"
)

var errInvalidJSON = errors.New("invalid json body")

// Catalog lists and resolves variants.
type Catalog interface {
	Get(id string) (variant.Variant, error)
	List() []variant.Variant
}

// Handler wires HTTP handlers to the generator service.
type Handler struct {
	Svc          *generator.Service
	Variants     Catalog
	MaxBodyBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *generator.Service, variants Catalog, maxBodyBytes int64) *Handler {
	return &Handler{Svc: svc, Variants: variants, MaxBodyBytes: maxBodyBytes}
}

// RegisterRoutes attaches variant and resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/variants", h.listVariants)
	rg.GET("/variants/:id", h.getVariant)
	rg.POST("/variants/:id/resumes", h.create)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.GET("/resumes/:id/download", h.download)
}

func (h *Handler) listVariants(c *gin.Context) {
	variants := h.Variants.List()
	resp := make([]VariantSummary, 0, len(variants))
	for _, v := range variants {
		resp = append(resp, toVariantSummary(v))
	}
	respond.OK(c, resp)
}

func (h *Handler) getVariant(c *gin.Context) {
	v, err := h.Variants.Get(c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusNotFound, "unknown_variant", "form variant not found", nil)
		return
	}
	middleware.SetVariantID(c, v.ID)
	respond.OK(c, v)
}

func (h *Handler) create(c *gin.Context) {
	variantID := c.Param("id")
	middleware.SetVariantID(c, variantID)

	body := c.Request.Body
	if h.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(c.Writer, body, h.MaxBodyBytes)
	}
	var rec model.Record
	if err := decodeJSON(body, &rec); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "request body is too large", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	resume, err := h.Svc.Generate(c.Request.Context(), middleware.UserIDFromContext(c), variantID, rec)
	if err != nil {
		switch {
		case errors.Is(err, generator.ErrUnknownVariant):
			respond.Error(c, http.StatusNotFound, "unknown_variant", "form variant not found", nil)
		case errors.Is(err, generator.ErrInvalidInput):
			respond.Error(c, http.StatusUnprocessableEntity, "invalid_input", "resume record is invalid",
				respond.ValidationDetails{Fields: generator.Messages(err)})
		default:
			respond.Error(c, http.StatusInternalServerError, "generation_failed", "failed to generate resume", nil)
		}
		return
	}

	middleware.SetResumeID(c, resume.ID)
	respond.Created(c, "/api/v1/resumes/"+resume.ID, toResumeResponse(resume))
}

func (h *Handler) list(c *gin.Context) {
	limit, offset := 0, 0
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be a number", nil)
			return
		}
		limit = parsed
	}
	if v := c.Query("offset"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "offset must be a number", nil)
			return
		}
		offset = parsed
	}

	resumes, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list generated resumes", nil)
		return
	}

	resp := make([]ResumeResponse, 0, len(resumes))
	for _, resume := range resumes {
		resp = append(resp, toResumeResponse(resume))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	resume, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		h.lookupError(c, err)
		return
	}
	middleware.SetResumeID(c, resume.ID)
	respond.OK(c, toResumeResponse(resume))
}

func (h *Handler) download(c *gin.Context) {
	reader, resume, err := h.Svc.Open(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		h.lookupError(c, err)
		return
	}
	defer reader.Close()

	middleware.SetResumeID(c, resume.ID)
	middleware.SetVariantID(c, resume.VariantID)
	respond.Attachment(c, resume.FileName, resume.MimeType, resume.SizeBytes, reader)
}

func (h *Handler) lookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, generator.ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "access denied", nil)
	case errors.Is(err, generator.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "generated resume not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch generated resume", nil)
	}
}

// decodeJSON reads exactly one JSON object and rejects unknown fields.
func decodeJSON(body io.Reader, out any) error {
	if body == nil {
		return errInvalidJSON
	}
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return errors.New("invalid value for " + typeErr.Field)
		}
		return errInvalidJSON
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return errInvalidJSON
	}
	return nil
}
