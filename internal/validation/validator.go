// Package validation checks request structs using struct tags.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Global validator instance
var validate = validator.New()

// Error wraps the readable messages of a failed validation.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return strings.Join(e.Fields, ", ")
}

// ValidateStruct validates a struct based on its tags.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, formatFieldError(fe))
	}
	return out
}

// formatFieldError converts validator errors to human-readable messages.
func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
