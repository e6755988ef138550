// Package validator bridges struct tag validation into the echo server.
package validator

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "wanderly/internal/domain/errors"
)

// RequestValidator implements echo.Validator on top of go-playground's
// struct tag validation.
type RequestValidator struct {
	validate *validator.Validate
}

// New builds the validator used for every bound request body.
func New() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate checks the bound input and reports all failing fields in one
// user-safe message.
func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return domainerrors.ErrValidation
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, describe(fieldErr))
	}

	return domainerrors.ErrValidation.WithMessage("invalid input data: " + strings.Join(fields, "; "))
}

func describe(fieldErr validator.FieldError) string {
	field := fieldErr.Field()

	switch fieldErr.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return field + " must be at least " + fieldErr.Param() + " characters"
	case "max":
		return field + " must be at most " + fieldErr.Param() + " characters"
	case "eqfield":
		return field + " must match " + fieldErr.Param()
	case "oneof":
		return field + " must be one of: " + fieldErr.Param()
	case "gte":
		return field + " must be at least " + fieldErr.Param()
	case "lte":
		return field + " must be at most " + fieldErr.Param()
	case "gt":
		return field + " must be greater than " + fieldErr.Param()
	case "ltfield":
		return field + " must be below " + fieldErr.Param()
	default:
		return field + " is invalid"
	}
}
