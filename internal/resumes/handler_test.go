package resumes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-generator/internal/generatedresumes"
	"resume-generator/internal/generator"
	"resume-generator/internal/resumes"
	"resume-generator/internal/shared/server/middleware"
	"resume-generator/internal/shared/storage/object/local"
	"resume-generator/resume/variant"
)

const recordJSON = `{
  "name": "Jordan Lee",
  "city": "Austin",
  "area": "Downtown",
  "zipcode": "73301",
  "email": "jordan@example.com",
  "phone": "+1 555 0102",
  "linkedin": "https://linkedin.com/in/jordanlee",
  "summary": "Analyst who likes tidy data.",
  "skills": {"programming_languages": ["Python", "SQL"], "libraries": ["Pandas"]},
  "experience": {
    "profile": "Data Analyst",
    "company": "Acme",
    "startDate": "2021-04-01",
    "endDate": "2023-06-30",
    "currentlyEmployed": false,
    "description": "Built dashboards\nAutomated reports"
  },
  "education": {"degree": "BSc Statistics", "university": "State University"},
  "certifications": "PL-300",
  "additionalSkills": "Public speaking"
}`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry, err := variant.Load()
	if err != nil {
		t.Fatalf("load variants: %v", err)
	}
	svc := &generator.Service{
		Variants: registry,
		Repo:     generatedresumes.NewMemoryRepo(),
		Store:    local.New(t.TempDir()),
		Now:      func() time.Time { return time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC) },
	}

	r := gin.New()
	r.Use(middleware.Identity())
	resumes.NewHandler(svc, registry, 1<<20).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doRequest(r http.Handler, method, path, userID, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func createResume(t *testing.T, r http.Handler, userID string) resumes.ResumeResponse {
	t.Helper()
	resp := doRequest(r, http.MethodPost, "/api/v1/variants/data-analyst/resumes", userID, recordJSON)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created resumes.ResumeResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if got := resp.Header().Get("Location"); got != "/api/v1/resumes/"+created.ID {
		t.Fatalf("unexpected Location %q", got)
	}
	return created
}

func TestVariantEndpoints(t *testing.T) {
	r := newTestRouter(t)

	resp := doRequest(r, http.MethodGet, "/api/v1/variants", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var list []resumes.VariantSummary
	if err := json.Unmarshal(resp.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	ids := make([]string, 0, len(list))
	for _, v := range list {
		ids = append(ids, v.ID)
	}
	if strings.Join(ids, ",") != "business-analyst,data-analyst,data-scientist" {
		t.Fatalf("unexpected variants %v", ids)
	}

	resp = doRequest(r, http.MethodGet, "/api/v1/variants/data-scientist", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var v variant.Variant
	if err := json.Unmarshal(resp.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode variant: %v", err)
	}
	if v.ID != "data-scientist" || len(v.Skills) == 0 {
		t.Fatalf("unexpected variant %+v", v)
	}

	resp = doRequest(r, http.MethodGet, "/api/v1/variants/astronaut", "", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestCreateListGet(t *testing.T) {
	r := newTestRouter(t)
	created := createResume(t, r, "user-1")

	if created.VariantID != "data-analyst" || created.FileName != "resume.docx" {
		t.Fatalf("unexpected create response %+v", created)
	}
	if created.SizeBytes <= 0 {
		t.Fatalf("expected positive size")
	}
	if created.DownloadURL != "/api/v1/resumes/"+created.ID+"/download" {
		t.Fatalf("unexpected download url %q", created.DownloadURL)
	}

	resp := doRequest(r, http.MethodGet, "/api/v1/resumes", "user-1", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var list []resumes.ResumeResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("unexpected list %+v", list)
	}

	resp = doRequest(r, http.MethodGet, "/api/v1/resumes", "user-2", "")
	if !strings.HasPrefix(strings.TrimSpace(resp.Body.String()), "[]") {
		t.Fatalf("other users must see an empty list, got %s", resp.Body.String())
	}

	resp = doRequest(r, http.MethodGet, "/api/v1/resumes/"+created.ID, "user-1", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	resp = doRequest(r, http.MethodGet, "/api/v1/resumes/"+created.ID, "user-2", "")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
	resp = doRequest(r, http.MethodGet, "/api/v1/resumes/missing", "user-1", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	resp = doRequest(r, http.MethodGet, "/api/v1/resumes?limit=abc", "user-1", "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCreateValidationErrors(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{name: "malformed json", path: "/api/v1/variants/data-analyst/resumes", body: `{"name":`, status: http.StatusBadRequest, code: "validation_error"},
		{name: "unknown field", path: "/api/v1/variants/data-analyst/resumes", body: `{"name":"A","age":3}`, status: http.StatusBadRequest, code: "validation_error"},
		{name: "bad date", path: "/api/v1/variants/data-analyst/resumes", body: `{"name":"A","experience":{"startDate":"01/02/2020"}}`, status: http.StatusBadRequest, code: "validation_error"},
		{name: "missing name", path: "/api/v1/variants/data-analyst/resumes", body: `{"city":"Austin"}`, status: http.StatusUnprocessableEntity, code: "invalid_input"},
		{name: "unknown option", path: "/api/v1/variants/data-analyst/resumes", body: `{"name":"A","skills":{"libraries":["Keras"]}}`, status: http.StatusUnprocessableEntity, code: "invalid_input"},
		{name: "unknown variant", path: "/api/v1/variants/astronaut/resumes", body: `{"name":"A"}`, status: http.StatusNotFound, code: "unknown_variant"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(r, http.MethodPost, tc.path, "user-1", tc.body)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, resp.Code, resp.Body.String())
			}
			var body struct {
				Error struct {
					Code    string `json:"code"`
					Details struct {
						Fields []string `json:"fields"`
					} `json:"details"`
				} `json:"error"`
			}
			if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body.Error.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, body.Error.Code)
			}
			if tc.status == http.StatusUnprocessableEntity && len(body.Error.Details.Fields) == 0 {
				t.Fatalf("expected field messages")
			}
		})
	}
}
