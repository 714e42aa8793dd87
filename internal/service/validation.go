package service

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var slugRegexp = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// NewValidator returns a validator that also knows the "slug" tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRegexp.MatchString(fl.Field().String())
	})
	return v
}
