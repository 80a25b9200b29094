// Package generator turns a submitted resume record into a stored DOCX file.
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-generator/internal/generatedresumes"
	"resume-generator/internal/shared/metrics"
	"resume-generator/internal/shared/storage/object"
	"resume-generator/internal/shared/telemetry"
	"resume-generator/resume/layout"
	"resume-generator/resume/model"
	"resume-generator/resume/render"
	"resume-generator/resume/variant"
)

// Variants resolves form variants by id.
type Variants interface {
	Get(id string) (variant.Variant, error)
}

// Service coordinates normalize, validate, layout, render and store.
type Service struct {
	Variants Variants
	Repo     generatedresumes.Repo
	Store    object.ObjectStore
	Metrics  *metrics.Recorder
	Now      func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Prepare resolves the variant and returns the cleaned, validated record.
func (s *Service) Prepare(variantID string, rec model.Record) (variant.Variant, model.Record, error) {
	if s.Variants == nil {
		return variant.Variant{}, model.Record{}, errors.New("missing variants")
	}
	v, err := s.Variants.Get(variantID)
	if err != nil {
		return variant.Variant{}, model.Record{}, err
	}
	clean, err := Check(v, rec, s.now())
	return v, clean, err
}

// Check normalizes rec for v and reports every problem as an *InputError.
func Check(v variant.Variant, rec model.Record, now time.Time) (model.Record, error) {
	clean := layout.VisibleFields(v, model.Normalize(rec, now))

	problems := v.CheckSelection(clean.Skills)
	if err := clean.Validate(); err != nil {
		var verr *model.ValidationError
		if !errors.As(err, &verr) {
			return model.Record{}, err
		}
		problems = append(verr.Messages, problems...)
	}
	if len(problems) > 0 {
		return model.Record{}, &InputError{Messages: problems}
	}
	return clean, nil
}

// Render lays out a checked record and writes the DOCX bytes.
func Render(v variant.Variant, rec model.Record, now time.Time) ([]byte, error) {
	l, err := layout.Build(v, rec)
	if err != nil {
		if errors.Is(err, layout.ErrMissingName) {
			return nil, &InputError{Messages: []string{"name: is required"}}
		}
		return nil, err
	}
	return render.RenderDocx(l, render.Metadata{Created: now})
}

// Generate renders rec with the given variant and stores the document for userID.
func (s *Service) Generate(ctx context.Context, userID, variantID string, rec model.Record) (generatedresumes.GeneratedResume, error) {
	if strings.TrimSpace(userID) == "" {
		return generatedresumes.GeneratedResume{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if s.Repo == nil || s.Store == nil {
		return generatedresumes.GeneratedResume{}, errors.New("missing dependencies")
	}
	start := time.Now()

	v, clean, err := s.Prepare(variantID, rec)
	if err != nil {
		if !errors.Is(err, ErrUnknownVariant) {
			s.Metrics.GenerationFailed(variantID, failureReason(err))
		}
		return generatedresumes.GeneratedResume{}, err
	}

	now := s.now()
	docx, err := Render(v, clean, now)
	if err != nil {
		s.Metrics.GenerationFailed(v.ID, failureReason(err))
		return generatedresumes.GeneratedResume{}, err
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, v.OutputFile, bytes.NewReader(docx))
	if err != nil {
		s.Metrics.GenerationFailed(v.ID, "storage")
		return generatedresumes.GeneratedResume{}, fmt.Errorf("store %s: %w", v.OutputFile, err)
	}
	if mimeType == "" {
		mimeType = render.MimeType
	}

	resume := generatedresumes.GeneratedResume{
		ID:         uuid.NewString(),
		UserID:     userID,
		VariantID:  v.ID,
		FileName:   v.OutputFile,
		StorageKey: storageKey,
		MimeType:   mimeType,
		SizeBytes:  size,
		CreatedAt:  now,
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		s.Metrics.GenerationFailed(v.ID, "repository")
		return generatedresumes.GeneratedResume{}, err
	}

	took := time.Since(start)
	s.Metrics.Generated(v.ID, took, size)
	telemetry.Info("resume.generated", map[string]any{
		"resume_id":   resume.ID,
		"user_id":     userID,
		"variant_id":  v.ID,
		"size_bytes":  size,
		"duration_ms": float64(took.Microseconds()) / 1000.0,
	})
	return resume, nil
}

// Get returns the metadata of a generated resume owned by userID.
func (s *Service) Get(ctx context.Context, userID, id string) (generatedresumes.GeneratedResume, error) {
	return s.Repo.GetByID(ctx, userID, id)
}

// List returns userID's resumes, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]generatedresumes.GeneratedResume, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Open returns the document bytes of a generated resume. The caller closes
// the reader.
func (s *Service) Open(ctx context.Context, userID, id string) (io.ReadCloser, generatedresumes.GeneratedResume, error) {
	resume, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, generatedresumes.GeneratedResume{}, err
	}
	rc, err := s.Store.Open(ctx, resume.StorageKey)
	if err != nil {
		return nil, generatedresumes.GeneratedResume{}, fmt.Errorf("open %s: %w", resume.ID, err)
	}
	return rc, resume, nil
}

// WriteFile saves a document to path, replacing any previous file.
func WriteFile(path string, docx []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".resume-*.docx")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(docx); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, render.ErrInvalidPackage):
		return "render"
	default:
		return "internal"
	}
}
