package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "sensemaker-backend/pkg/errors"
)

var validate = validator.New()

// ValidateStruct validates a struct based on its validation tags and returns
// a RequestValidationError carrying one violation per failed field.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			violations := make([]pkgerrors.Violation, 0, len(validationErrors))
			for _, e := range validationErrors {
				violations = append(violations, pkgerrors.Violation{
					Field:  fieldName(e),
					Reason: reasonFor(e),
				})
			}
			return pkgerrors.NewRequestValidationError(violations...)
		}
		return err
	}
	return nil
}

// fieldName strips the struct prefix and lowers the field for messages
// that match the wire-level JSON names.
func fieldName(e validator.FieldError) string {
	ns := e.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		ns = ns[idx+1:]
	}
	return strings.ToLower(ns)
}

// reasonFor formats a single field validation error
func reasonFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("must contain at least %s entries", e.Param())
		}
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("must contain at most %s entries", e.Param())
		}
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "len":
		return fmt.Sprintf("must contain exactly %s entries", e.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", e.Param())
	default:
		return "is invalid"
	}
}
