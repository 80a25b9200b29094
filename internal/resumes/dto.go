package resumes

import (
	"time"

	"resume-generator/internal/generatedresumes"
	"resume-generator/resume/variant"
)

// ResumeResponse is the API view of a generated resume.
type ResumeResponse struct {
	ID          string    `json:"id"`
	VariantID   string    `json:"variantId"`
	FileName    string    `json:"fileName"`
	MimeType    string    `json:"mimeType"`
	SizeBytes   int64     `json:"sizeBytes"`
	CreatedAt   time.Time `json:"createdAt"`
	DownloadURL string    `json:"downloadUrl"`
}

// VariantSummary is one entry of the variant listing.
type VariantSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Role    string `json:"role"`
	FormURL string `json:"formUrl"`
}

func toResumeResponse(resume generatedresumes.GeneratedResume) ResumeResponse {
	return ResumeResponse{
		ID:          resume.ID,
		VariantID:   resume.VariantID,
		FileName:    resume.FileName,
		MimeType:    resume.MimeType,
		SizeBytes:   resume.SizeBytes,
		CreatedAt:   resume.CreatedAt,
		DownloadURL: "/api/v1/resumes/" + resume.ID + "/download",
	}
}

func toVariantSummary(v variant.Variant) VariantSummary {
	return VariantSummary{
		ID:      v.ID,
		Title:   v.Title,
		Role:    v.Role,
		FormURL: "/forms/" + v.ID,
	}
}
