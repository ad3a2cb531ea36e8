package services

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/priyanshu14077/NeuronPress/errs"
	"github.com/rs/zerolog"
)

// Result is the envelope every service operation returns. On failure Error holds a
// message safe to show and Fields lists each rejected input field.
type Result[T any] struct {
	Success bool              `json:"success"`
	Data    T                 `json:"data"`
	Error   string            `json:"error,omitempty"`
	Fields  []errs.FieldError `json:"fields,omitempty"`

	err error
}

// Err returns the failure behind the envelope, or nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// MarshalJSON always writes data on success, even when it is empty, and leaves it
// out of failures.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.Success {
		return json.Marshal(struct {
			Success bool `json:"success"`
			Data    T    `json:"data"`
		}{Success: true, Data: r.Data})
	}
	return json.Marshal(struct {
		Success bool              `json:"success"`
		Error   string            `json:"error,omitempty"`
		Fields  []errs.FieldError `json:"fields,omitempty"`
	}{Success: false, Error: r.Error, Fields: r.Fields})
}

func ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail builds a failure envelope. Errors outside the errs taxonomy are reported with fallback.
func Fail[T any](err error, fallback string) Result[T] {
	message := fallback
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		message = apiErr.Message()
	}
	return Result[T]{
		Success: false,
		Error:   message,
		Fields:  errs.FieldsOf(err),
		err:     err,
	}
}

// logFailure logs server-side failures at error level and caller mistakes at debug.
func logFailure(logger zerolog.Logger, operation string, err error) {
	if errs.StatusOf(err) >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("operation", operation).Msg("operation failed")
		return
	}
	logger.Debug().Err(err).Str("operation", operation).Msg("operation rejected")
}
