package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// ValidationError reports a malformed or incomplete payload. Field names the
// offending input so handlers can render a user-facing message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

func Validation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UploadError wraps a failed asset upload or storage write.
type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// TranscriptionError wraps a failed or timed-out run of the external
// speech script. Callers degrade: the message still persists untranslated.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }
