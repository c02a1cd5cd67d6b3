// Package validation provides request validation using the validator/v10 library.
package validation

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/postdeskapp/postdesk-server/internal/errors"
)

// Validator wraps go-playground/validator with field-error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for our domain.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		// Remove options like omitempty, -
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})

	return &Validator{v: v}
}

// Validate checks a struct against its validate tags and returns the failures
// keyed by JSON field name, or nil when the struct is valid.
func (v *Validator) Validate(s any) domainerrors.FieldErrors {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Invalid use of the validator itself, not a user error.
		panic(fmt.Sprintf("validation: %v", err))
	}

	fieldErrors := domainerrors.FieldErrors{}
	for _, e := range validationErrs {
		fieldErrors.Add(e.Field(), friendlyMessage(e))
	}
	return fieldErrors
}

// friendlyMessage converts a validator tag failure to a client-facing message.
func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	default:
		return "is invalid"
	}
}
