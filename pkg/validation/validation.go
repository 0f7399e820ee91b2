package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FormatValidationError flattens validator.ValidationErrors into the
// per-field message list returned by the API.
func FormatValidationError(err error) []string {
	var errs []string

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errs = append(errs, fmt.Sprintf("%s is required", field))
			case "email":
				errs = append(errs, fmt.Sprintf("%s must be a valid email", field))
			case "alphanum":
				errs = append(errs, fmt.Sprintf("%s must contain only letters and numbers", field))
			case "min":
				errs = append(errs, fmt.Sprintf("%s must be at least %s characters long", field, e.Param()))
			case "max":
				errs = append(errs, fmt.Sprintf("%s must be at most %s characters long", field, e.Param()))
			case "eqfield":
				errs = append(errs, fmt.Sprintf("%s must match %s", field, e.Param()))
			default:
				errs = append(errs, fmt.Sprintf("%s is invalid (%s)", field, e.Tag()))
			}
		}
		return errs
	}

	return []string{"invalid request body"}
}
