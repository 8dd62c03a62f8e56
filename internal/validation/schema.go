// Package validation checks contact-form candidates before they reach the store.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field names as they appear in forms and JSON bodies.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

var messages = map[string]string{
	FieldName:    "Name must be at least 2 characters",
	FieldEmail:   "Invalid email address",
	FieldMessage: "Message must be at least 10 characters",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Candidate is an untrusted submission as entered by the visitor.
type Candidate struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=10"`
}

// Normalize returns c with surrounding whitespace removed from every field.
func (c Candidate) Normalize() Candidate {
	return Candidate{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Message: strings.TrimSpace(c.Message),
	}
}

// Check normalizes c and validates every field independently. It returns the
// normalized candidate, or Errors naming each failing field.
func Check(c Candidate) (Candidate, error) {
	n := c.Normalize()
	err := validate.Struct(n)
	if err == nil {
		return n, nil
	}

	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return Candidate{}, err
	}
	errs := make(Errors, 0, len(ves))
	for _, fe := range ves {
		errs = append(errs, FieldError{Field: fe.Field(), Message: messages[fe.Field()]})
	}
	return n, errs
}
