// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/ecdc/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// ContainsDigit validates that an identifier string holds at least one ASCII digit.
var ContainsDigit = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.ContainsAny(s, "0123456789")
	},
	validation.NewError("validation_contains_digit", "must contain at least one digit"),
)

// MaxLength bounds identifier strings before any parsing happens.
func MaxLength(n int) validation.Rule {
	return validation.RuneLength(0, n).Error("must be at most {{.max}} characters")
}
