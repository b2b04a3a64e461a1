package api

import (
	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate lets echo's c.Validate run struct tags; errors are rendered by response.Error.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
