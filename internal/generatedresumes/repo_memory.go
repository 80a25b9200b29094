package generatedresumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores generated resumes in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]GeneratedResume
	byUser map[string][]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]GeneratedResume),
		byUser: make(map[string][]string),
	}
}

// Create stores the generated resume.
func (r *MemoryRepo) Create(ctx context.Context, resume GeneratedResume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[resume.ID]; !exists {
		r.byUser[resume.UserID] = append(r.byUser[resume.UserID], resume.ID)
	}
	r.byID[resume.ID] = resume
	return nil
}

// GetByID returns a generated resume by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, generatedResumeID string) (GeneratedResume, error) {
	if err := ctx.Err(); err != nil {
		return GeneratedResume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.byID[generatedResumeID]
	if !ok {
		return GeneratedResume{}, ErrNotFound
	}
	if resume.UserID != userID {
		return GeneratedResume{}, ErrForbidden
	}
	return resume, nil
}

// ListByUser returns generated resumes for a user, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]GeneratedResume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)

	r.mu.RLock()
	ids := r.byUser[userID]
	resumes := make([]GeneratedResume, 0, len(ids))
	for _, id := range ids {
		resumes = append(resumes, r.byID[id])
	}
	r.mu.RUnlock()

	if offset >= len(resumes) {
		return []GeneratedResume{}, nil
	}
	sort.SliceStable(resumes, func(i, j int) bool {
		return resumes[i].CreatedAt.After(resumes[j].CreatedAt)
	})

	end := offset + limit
	if end > len(resumes) {
		end = len(resumes)
	}
	return resumes[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
