package generatedresumes

import "time"

// GeneratedResume is the stored metadata of one generated document.
type GeneratedResume struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	VariantID  string    `json:"variantId"`
	FileName   string    `json:"fileName"`
	StorageKey string    `json:"-"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	CreatedAt  time.Time `json:"createdAt"`
}
