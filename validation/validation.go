// Package validation holds the input schemas of every post and AI operation.
// Validate applies defaults and then reports every violated field at once.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/priyanshu14077/NeuronPress/errs"
)

// SlugPattern matches lowercase alphanumeric runs joined by single hyphens.
var SlugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var validate = newValidator()

// Input is implemented by every schema in this package.
type Input interface {
	applyDefaults()
}

// Validate fills unset fields with their defaults, then checks constraints.
// The returned error is an *errs.ApiErr carrying one FieldError per violation.
func Validate(in Input) error {
	if in == nil || reflect.ValueOf(in).IsNil() {
		return errs.NewValidationError([]errs.FieldError{{Field: "input", Message: "Input is required"}})
	}

	in.applyDefaults()

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errs.NewInternalErrorWithCause("validation could not run", err)
	}

	fields := make([]errs.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, errs.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return errs.NewValidationError(fields)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return SlugPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// messages are keyed "<jsonField>.<tag>"; {param} is replaced by the tag parameter.
var messages = map[string]string{
	"title.required":           "Title is required",
	"title.min":                "Title is required",
	"title.max":                "Title must be less than {param} characters",
	"slug.required":            "Slug is required",
	"slug.slug":                "Invalid slug format",
	"excerpt.max":              "Excerpt must be less than {param} characters",
	"content.required":         "Content is required",
	"content.min":              "Content is required",
	"metaTitle.max":            "Meta title must be less than {param} characters",
	"metaDescription.max":      "Meta description must be less than {param} characters",
	"keywords.max":             "Maximum {param} keywords allowed",
	"readTime.min":             "Read time cannot be negative",
	"id.required":              "Post ID is required",
	"prompt.required":          "Prompt is required",
	"prompt.max":               "Prompt must be less than {param} characters",
	"topic.required":           "Topic is required",
	"improvementType.required": "Improvement type is required",
	"name.required":            "Name is required",
	"name.max":                 "Name must be less than {param} characters",
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return strings.ReplaceAll(msg, "{param}", fe.Param())
	}

	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
