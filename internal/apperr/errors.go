// Package apperr holds the sentinel errors shared across plantdesk layers.
package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrUnknownField      = errors.New("unknown field")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnsupported       = errors.New("action not supported by page")
	ErrFormClosed        = errors.New("form is not open")
	ErrInvalidArgument   = errors.New("invalid argument")
)
