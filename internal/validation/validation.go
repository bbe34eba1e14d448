// Package validation wires go-playground/validator into Echo and converts
// its field errors into the structured violations shape the API exposes.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Violation describes one failed constraint on one field.
type Violation struct {
	PropertyPath string            `json:"propertyPath"`
	Title        string            `json:"title"`
	Template     string            `json:"template"`
	Parameters   map[string]string `json:"parameters"`
	Type         string            `json:"type"`
}

// ErrorResponse is the body of every 422 response. Violations are listed
// in struct field order, so for notes the title always precedes the content.
type ErrorResponse struct {
	Violations []Violation `json:"violations"`
}

// New builds a validator with the notblank rule registered and field names
// taken from json tags.
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Translate converts a validator error into the violations response.
// The second return is false when the error is not a field validation error.
func Translate(err error) (*ErrorResponse, bool) {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return nil, false
	}

	resp := &ErrorResponse{Violations: make([]Violation, 0, len(fieldErrors))}
	for _, fe := range fieldErrors {
		resp.Violations = append(resp.Violations, toViolation(fe))
	}
	return resp, true
}

func toViolation(fe validator.FieldError) Violation {
	field := fe.Field()
	switch fe.Tag() {
	case "notblank", "required":
		return Violation{
			PropertyPath: field,
			Title:        fmt.Sprintf("The %s cannot be empty", field),
			Template:     fmt.Sprintf("The %s cannot be empty", field),
			Parameters:   map[string]string{},
			Type:         "blank",
		}
	case "min":
		return Violation{
			PropertyPath: field,
			Title:        fmt.Sprintf("Your %s must be at least %s characters long", field, fe.Param()),
			Template:     fmt.Sprintf("Your %s must be at least {{ limit }} characters long", field),
			Parameters:   map[string]string{"{{ limit }}": fe.Param()},
			Type:         "too_short",
		}
	case "max":
		return Violation{
			PropertyPath: field,
			Title:        fmt.Sprintf("Your %s cannot be longer than %s characters", field, fe.Param()),
			Template:     fmt.Sprintf("Your %s cannot be longer than {{ limit }} characters", field),
			Parameters:   map[string]string{"{{ limit }}": fe.Param()},
			Type:         "too_long",
		}
	default:
		return Violation{
			PropertyPath: field,
			Title:        fmt.Sprintf("The %s is invalid", field),
			Template:     fmt.Sprintf("The %s is invalid", field),
			Parameters:   map[string]string{},
			Type:         fe.Tag(),
		}
	}
}
