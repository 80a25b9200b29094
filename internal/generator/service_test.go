package generator_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"resume-generator/internal/generatedresumes"
	"resume-generator/internal/generator"
	"resume-generator/internal/shared/metrics"
	"resume-generator/internal/shared/storage/object"
	"resume-generator/internal/shared/storage/object/local"
	"resume-generator/resume/model"
	"resume-generator/resume/render"
	"resume-generator/resume/variant"
)

var fixedNow = time.Date(2024, time.May, 20, 9, 30, 0, 0, time.UTC)

func newService(t *testing.T) (*generator.Service, *generatedresumes.MemoryRepo) {
	t.Helper()
	registry, err := variant.Load()
	if err != nil {
		t.Fatalf("load variants: %v", err)
	}
	repo := generatedresumes.NewMemoryRepo()
	return &generator.Service{
		Variants: registry,
		Repo:     repo,
		Store:    local.New(t.TempDir()),
		Metrics:  metrics.New(),
		Now:      func() time.Time { return fixedNow },
	}, repo
}

func sampleRecord() model.Record {
	return model.Record{
		Name:     "Jordan Lee",
		City:     "Austin",
		Area:     "Downtown",
		Zipcode:  "73301",
		Email:    "jordan@example.com",
		Phone:    "+1 555 0102",
		LinkedIn: "https://linkedin.com/in/jordanlee",
		Summary:  "Analyst who likes tidy data.",
		Skills: map[string][]string{
			"programming_languages": {"Python", "SQL"},
			"business_intelligence": {"Tableau"},
		},
		Experience: model.Experience{
			Profile:           "Data Analyst",
			Company:           "Acme",
			StartDate:         model.NewDate(time.Date(2021, time.April, 1, 0, 0, 0, 0, time.UTC)),
			CurrentlyEmployed: true,
			Description:       "Built dashboards\nAutomated reports",
		},
		Education: model.Education{Degree: "BSc Statistics", University: "State University"},
	}
}

func TestGenerateStoresDocxAndMetadata(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	resume, err := svc.Generate(ctx, "user-1", "data-analyst", sampleRecord())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resume.ID == "" || resume.StorageKey == "" {
		t.Fatalf("expected id and storage key, got %+v", resume)
	}
	if resume.FileName != variant.DefaultOutputFile {
		t.Fatalf("expected %s, got %s", variant.DefaultOutputFile, resume.FileName)
	}
	if resume.MimeType != object.DocxMimeType {
		t.Fatalf("unexpected mime type %s", resume.MimeType)
	}
	if !resume.CreatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected created at %s", resume.CreatedAt)
	}

	stored, err := repo.GetByID(ctx, "user-1", resume.ID)
	if err != nil {
		t.Fatalf("repo lookup: %v", err)
	}
	if stored.VariantID != "data-analyst" {
		t.Fatalf("unexpected variant %s", stored.VariantID)
	}

	rc, meta, err := svc.Open(ctx, "user-1", resume.ID)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	docx, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if int64(len(docx)) != meta.SizeBytes {
		t.Fatalf("size mismatch: %d vs %d", len(docx), meta.SizeBytes)
	}
	if err := render.Validate(docx); err != nil {
		t.Fatalf("stored docx invalid: %v", err)
	}
	text, err := render.DocumentText(docx)
	if err != nil {
		t.Fatalf("DocumentText: %v", err)
	}
	for _, want := range []string{
		"Jordan Lee",
		"Data Analyst at Acme (April 2021 - Present)",
		"• Programming Languages: Python, SQL",
		"BSc Statistics from State University",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("document text missing %q:\n%s", want, text)
		}
	}
}

func TestGenerateRejectsInvalidInput(t *testing.T) {
	svc, repo := newService(t)
	rec := sampleRecord()
	rec.Name = "   "
	rec.Email = "nope"
	rec.Skills["programming_languages"] = []string{"COBOL"}

	_, err := svc.Generate(context.Background(), "user-1", "data-analyst", rec)
	if !errors.Is(err, generator.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	messages := generator.Messages(err)
	want := []string{
		"name: is required",
		"email: must be a valid email address",
		`skills.programming_languages: "COBOL" is not an option`,
	}
	if strings.Join(messages, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected messages %q", messages)
	}

	list, err := repo.ListByUser(context.Background(), "user-1", 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("nothing should be stored, got %d", len(list))
	}
}

func TestGenerateUnknownVariant(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Generate(context.Background(), "user-1", "astronaut", sampleRecord())
	if !errors.Is(err, generator.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestGenerateRequiresUser(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Generate(context.Background(), "", "data-analyst", sampleRecord())
	if !errors.Is(err, generator.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGenerateDropsHiddenFields(t *testing.T) {
	svc, _ := newService(t)
	rec := sampleRecord()
	rec.LinkedIn = "not a url"
	rec.Skills = map[string][]string{"analysis": {"Requirements Gathering"}}

	resume, err := svc.Generate(context.Background(), "user-1", "business-analyst", rec)
	if err != nil {
		t.Fatalf("hidden linkedin must not be validated: %v", err)
	}
	rc, _, err := svc.Open(context.Background(), "user-1", resume.ID)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	docx, _ := io.ReadAll(rc)
	text, err := render.DocumentText(docx)
	if err != nil {
		t.Fatalf("DocumentText: %v", err)
	}
	if strings.Contains(text, "not a url") {
		t.Fatalf("hidden field leaked into document:\n%s", text)
	}
}

func TestOwnerScoping(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	resume, err := svc.Generate(ctx, "owner", "data-analyst", sampleRecord())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := svc.Get(ctx, "intruder", resume.ID); !errors.Is(err, generator.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, _, err := svc.Open(ctx, "intruder", resume.ID); !errors.Is(err, generator.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on open, got %v", err)
	}
	if _, err := svc.Get(ctx, "owner", "missing"); !errors.Is(err, generator.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	list, err := svc.List(ctx, "owner", 0, 0)
	if err != nil || len(list) != 1 || list[0].ID != resume.ID {
		t.Fatalf("unexpected list %v err=%v", list, err)
	}
}

type failingStore struct{}

func (failingStore) Save(ctx context.Context, userID, fileName string, r io.Reader) (string, int64, string, error) {
	return "", 0, "", errors.New("disk full")
}

func (failingStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	return nil, errors.New("unreachable")
}

func TestGenerateStorageFailure(t *testing.T) {
	svc, _ := newService(t)
	svc.Store = failingStore{}
	_, err := svc.Generate(context.Background(), "user-1", "data-analyst", sampleRecord())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	registry, err := variant.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	v, err := registry.Get("data-scientist")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	rec, err := generator.Check(v, sampleRecord(), fixedNow)
	if err == nil {
		t.Fatalf("data-analyst skills must be rejected by data-scientist")
	}

	rec, err = generator.Check(v, model.Record{Name: "Ada"}, fixedNow)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	first, err := generator.Render(v, rec, fixedNow)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := generator.Render(v, rec, fixedNow)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical output")
	}
}

func TestWriteFileReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "resume.docx")
	if err := generator.WriteFile(path, []byte("first")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := generator.WriteFile(path, []byte("second")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "second" {
		t.Fatalf("unexpected content %q", got)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}
}
