package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrUnexpectedShape means the upstream document parsed fine but does not
	// contain the result/records/item path with scalar fields.
	ErrUnexpectedShape = errors.New("unexpected response shape")
	// ErrMalformedPayload means the upstream body could not be parsed at all.
	ErrMalformedPayload  = errors.New("malformed response payload")
	ErrUnsupportedFormat = errors.New("unsupported response format")
	ErrEmptyTable        = errors.New("table has no columns")
)

// NewShapeError reports which part of the expected document was missing or wrong.
func NewShapeError(path string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrUnexpectedShape, path, reason)
}

// NewMalformedError wraps a parser error.
func NewMalformedError(format string, err error) error {
	return fmt.Errorf("%w (%s): %v", ErrMalformedPayload, format, err)
}

// IsShapeError reports whether err is, or wraps, ErrUnexpectedShape.
func IsShapeError(err error) bool {
	return errors.Is(err, ErrUnexpectedShape)
}

// IsPayloadError reports whether err came from decoding the upstream body.
func IsPayloadError(err error) bool {
	return errors.Is(err, ErrUnexpectedShape) || errors.Is(err, ErrMalformedPayload)
}
