package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	ErrEndpointNotConfigured = fmt.Errorf("AI endpoint not configured")
	ErrUpstreamStatus        = fmt.Errorf("AI endpoint returned non-success status")
	ErrEmptyCompletion       = fmt.Errorf("AI endpoint returned no choices")

	ErrInvalidImage = fmt.Errorf("invalid image format, expected base64 string")

	ErrPersistenceDisabled = fmt.Errorf("database not configured")
	ErrUnsupportedDatabase = fmt.Errorf("unsupported database url")
	ErrSessionNotFound     = fmt.Errorf("session not found")
	ErrDeviceNotFound      = fmt.Errorf("device not found")
)

// Is and As forward to the standard library so callers importing this
// package don't need to alias it.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }
