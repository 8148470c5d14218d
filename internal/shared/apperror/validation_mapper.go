package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// leave_type -> Leave Type
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(s)
}

// MapValidationError turns a binding failure into a 400. The message names
// the first failing field; details lists every failure keyed by json name.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return New(
			CodeValidationError,
			"Invalid request body",
			http.StatusBadRequest,
		)
	}

	details := make(map[string]string, len(errs))
	for _, e := range errs {
		details[e.Field()] = e.Tag()
	}

	appErr := fieldError(errs[0])
	appErr.Details = details
	return appErr
}

func fieldError(e validator.FieldError) *AppError {
	field := formatFieldName(e.Field())

	switch e.Tag() {
	case "required", "notblank", "required_without":
		return RequiredField(field)
	case "email":
		return New(CodeValidationError, field+" must be a valid email address", http.StatusBadRequest)
	case "min":
		return New(CodeValidationError, field+" must be at least "+e.Param(), http.StatusBadRequest)
	case "max":
		return New(CodeValidationError, field+" must be at most "+e.Param(), http.StatusBadRequest)
	case "oneof":
		return New(CodeValidationError, field+" must be one of "+strings.ReplaceAll(e.Param(), " ", ", "), http.StatusBadRequest)
	case "nefield":
		return New(CodeValidationError, field+" must differ from "+formatFieldName(toSnake(e.Param())), http.StatusBadRequest)
	default:
		return InvalidField(field)
	}
}

// CurrentPassword -> current_password
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
