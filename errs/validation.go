package errs

import (
	"errors"
	"net/http"
	"strings"
)

var ErrValidation = errors.New("validation failed")

// FieldError names one violated input field by its JSON name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationError carries every violated field. The first field is also exposed as Field.
func NewValidationError(fields []FieldError) *ApiErr {
	messages := make([]string, 0, len(fields))
	for _, f := range fields {
		messages = append(messages, f.Message)
	}

	apiErr := &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrValidation,
		Details:    strings.Join(messages, "; "),
		Fields:     fields,
	}
	if len(fields) > 0 {
		apiErr.Field = fields[0].Field
	}
	return apiErr
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidField)
}

// FieldsOf returns the per-field detail of a validation error, or nil.
func FieldsOf(err error) []FieldError {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}
