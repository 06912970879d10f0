package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

const (
	ErrRequired     = "is required"
	ErrEmail        = "must be a valid email address"
	ErrDate         = "must be a date formatted as YYYY-MM-DD"
	ErrTime         = "must be a time formatted as HH:MM"
	ErrDateOrder    = "must not be before %s"
	ErrMinValue     = "must be at least %s"
	ErrMaxValue     = "must be at most %s"
	ErrInvalidValue = "is invalid"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("date_gtefield", validateDateGteField)

	return validator
}

// validateDateGteField compares two YYYY-MM-DD fields. Malformed values are
// left to the datetime tag.
func validateDateGteField(fl validator.FieldLevel) bool {
	other := fl.Parent().FieldByName(fl.Param())
	if !other.IsValid() {
		return false
	}

	value, otherValue := fl.Field().String(), other.String()
	if len(value) != len(dateLayout) || len(otherValue) != len(dateLayout) {
		return true
	}

	// fixed-width ISO dates order lexically
	return value >= otherValue
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "email":
		return ErrEmail
	case "datetime":
		if err.Param() == dateLayout {
			return ErrDate
		}
		return ErrTime
	case "date_gtefield":
		return fmt.Sprintf(ErrDateOrder, fieldName(err.Param()))
	case "min":
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxValue, err.Param())
	default:
		return ErrInvalidValue
	}
}

// Messages maps each failing field to its readable message. Errors that are
// not validation errors yield nil.
func Messages(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	messages := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		messages[fieldName(fe.Field())] = ValidationMessage(fe)
	}

	return messages
}

func fieldName(name string) string {
	if name == "" {
		return name
	}

	return strings.ToLower(name[:1]) + name[1:]
}
