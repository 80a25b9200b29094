package generatedresumes

import "errors"

var (
	// ErrNotFound indicates the generated resume does not exist.
	ErrNotFound = errors.New("generated resume not found")

	// ErrForbidden indicates the resume belongs to another user.
	ErrForbidden = errors.New("forbidden")
)
