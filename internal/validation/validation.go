// Package validation runs the form checks that must pass before any call to
// the marketplace API is made.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one field-level message shown inline next to the input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidationError blocks a submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	for tag, fn := range map[string]validator.Func{
		"au_phone":    validateAUPhone,
		"tfn":         validateTFN,
		"abn":         validateABN,
		"min_age":     validateMinAge,
		"person_name": validatePersonName,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s: %v", tag, err))
		}
	}
	return v
}

// Struct validates s against its `validate` tags. It returns nil or a
// *ValidationError; any other failure means s is not a struct.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(ves))}
	for _, fe := range ves {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: message(fe),
			Code:    "validation_" + fe.Tag(),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must not exceed %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "gtfield":
		return "Must be after the start time"
	case "oneof":
		return fmt.Sprintf("Must be one of [%s]", fe.Param())
	case "au_phone":
		return "Enter a valid Australian phone number"
	case "tfn":
		return "Enter a valid Tax File Number"
	case "abn":
		return "Enter a valid ABN"
	case "min_age":
		return fmt.Sprintf("You must be at least %s years old", fe.Param())
	case "person_name":
		return "Names may only contain letters, spaces, hyphens and apostrophes"
	default:
		return fmt.Sprintf("Validation failed on the '%s' rule", fe.Tag())
	}
}
