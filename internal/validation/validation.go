package validation

import (
	"github.com/go-playground/validator/v10"

	"github.com/clmarcel/pokedex-api/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct runs the request struct's validate tags and converts any failure
// into a domain validation error.
func Struct(v any) error {
	if err := validate.Struct(v); err != nil {
		return domain.Validation(err.Error())
	}
	return nil
}
