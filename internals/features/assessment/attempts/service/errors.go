// file: internals/features/assessment/attempts/service/errors.go
package service

import "errors"

// Sentinel errors returned by the attempt lifecycle. Controllers translate
// them to the response envelope; wrap with fmt.Errorf("%w: ...") for detail.
var (
	ErrNotFound     = errors.New("attempt: not found")
	ErrInvalidState = errors.New("attempt: invalid state")
	ErrValidation   = errors.New("attempt: validation failed")
	ErrForbidden    = errors.New("attempt: forbidden")
)
