package apperror

import "errors"

// Sentinel errors shared by all services. Handlers map these to HTTP status
// codes; anything unmatched is a 500 with a generic body.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
)

// wrapped carries a user-facing message on top of a sentinel
type wrapped struct {
	sentinel error
	msg      string
}

func (w *wrapped) Error() string { return w.msg }
func (w *wrapped) Unwrap() error { return w.sentinel }

// NotFound returns an ErrNotFound with a specific message
func NotFound(msg string) error {
	return &wrapped{sentinel: ErrNotFound, msg: msg}
}

// Validation returns an ErrValidation with a specific message
func Validation(msg string) error {
	return &wrapped{sentinel: ErrValidation, msg: msg}
}

// Conflict returns an ErrConflict with a specific message
func Conflict(msg string) error {
	return &wrapped{sentinel: ErrConflict, msg: msg}
}

// Forbidden returns an ErrForbidden with a specific message
func Forbidden(msg string) error {
	return &wrapped{sentinel: ErrForbidden, msg: msg}
}
