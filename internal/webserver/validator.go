package webserver

import (
	"github.com/go-playground/validator/v10"
)

// PayloadValidator wires go-playground/validator behind echo's Validator
// interface so handlers can c.Validate payload structs with validate tags.
type PayloadValidator struct {
	validate *validator.Validate
}

func NewPayloadValidator() *PayloadValidator {
	return &PayloadValidator{validate: validator.New()}
}

func (v *PayloadValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
