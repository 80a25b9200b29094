package variant

import "errors"

var (
	ErrInvalidVariant = errors.New("invalid variant")
	ErrUnknownVariant = errors.New("unknown variant")
)
