package render

import "errors"

var (
	ErrUnknownRenderer   = errors.New("unknown renderer")
	ErrDuplicateRenderer = errors.New("renderer already registered")
	ErrRenderingFailed   = errors.New("rendering failed")
	ErrNoFilename        = errors.New("cannot derive a filename")
	ErrInvalidRenderer   = errors.New("renderer kind does not match its capabilities")
)
