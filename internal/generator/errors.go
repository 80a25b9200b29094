package generator

import (
	"errors"
	"strings"

	"resume-generator/internal/generatedresumes"
	"resume-generator/resume/variant"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnknownVariant = variant.ErrUnknownVariant
	ErrNotFound       = generatedresumes.ErrNotFound
	ErrForbidden      = generatedresumes.ErrForbidden
)

// InputError lists the field problems of a rejected submission. It matches
// ErrInvalidInput with errors.Is.
type InputError struct {
	Messages []string
}

func (e *InputError) Error() string {
	return "invalid input: " + strings.Join(e.Messages, "; ")
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Messages returns the field problems carried by err, if any.
func Messages(err error) []string {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr.Messages
	}
	return nil
}
