package generatedresumes

import "context"

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Repo defines persistence operations for generated resumes.
type Repo interface {
	Create(ctx context.Context, resume GeneratedResume) error
	GetByID(ctx context.Context, userID, generatedResumeID string) (GeneratedResume, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]GeneratedResume, error)
}

// clampPage applies the listing defaults shared by every Repo.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
