package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-Party API & LLM Specific Errors
var (
	ErrCompletionFailed   = errors.New("Failed to generate content with AI")
	ErrEmptyCompletion    = errors.New("no content generated")
	ErrInvalidFormat      = errors.New("invalid format generated")
	ErrHistoryNotRecorded = errors.New("generated, but the generation history could not be recorded")
	ErrSlugExhausted      = errors.New("could not find an unused slug")
)

// Configuration & Environment Errors
var (
	ErrConfigMissing = errors.New("configuration missing")
	ErrConfigInvalid = errors.New("configuration invalid")
)

// NewCompletionError wraps any failure of the completion service, including an empty reply.
func NewCompletionError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrCompletionFailed,
		Cause:      cause,
	}
}

// NewInvalidFormatError reports a completion reply that could not be shaped into the expected structure.
// The message reads e.g. "Invalid outline format generated".
func NewInvalidFormatError(shape string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnprocessableEntity,
		err:        formatError{shape: shape},
		Cause:      cause,
	}
}

type formatError struct {
	shape string
}

func (e formatError) Error() string {
	return fmt.Sprintf("Invalid %s format generated", e.shape)
}

func (e formatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

func NewHistoryNotRecordedError(kind string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        fmt.Errorf("%s %w", kind, ErrHistoryNotRecorded),
		Cause:      cause,
	}
}

func NewSlugExhaustedError(base string, attempts int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrSlugExhausted,
		Details:    fmt.Sprintf("%q is taken after %d attempts", base, attempts),
		Field:      "slug",
	}
}

func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		Details:    fmt.Sprintf("Configuration error for %s", configName),
		Cause:      cause,
		Field:      configName,
	}
}

func NewEnvironmentVariableError(varName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("Environment variable %s is not set", varName),
		Field:      varName,
	}
}

func IsInvalidFormat(err error) bool {
	return errors.Is(err, ErrInvalidFormat)
}

func IsCompletionFailed(err error) bool {
	return errors.Is(err, ErrCompletionFailed)
}

func IsHistoryNotRecorded(err error) bool {
	return errors.Is(err, ErrHistoryNotRecorded)
}
