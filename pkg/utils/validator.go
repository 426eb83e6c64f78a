package utils

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// RequestValidator wraps a single validator instance shared by all handlers.
type RequestValidator struct {
	validate *validator.Validate
}

var (
	validatorOnce sync.Once
	requestValid  *RequestValidator
)

// GetValidator returns the process-wide request validator.
func GetValidator() *RequestValidator {
	validatorOnce.Do(func() {
		requestValid = &RequestValidator{validate: validator.New()}
	})
	return requestValid
}

// Validate checks a bound request struct against its `validate` tags.
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
