// Package validation wraps go-playground/validator so every layer reports
// field errors under the JSON field names clients actually send
// ("firstName", not "FirstName").
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// New returns a validator whose FieldError.Field() is the json tag name.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})

	return v
}

// Messages converts each validator.FieldError into a plain English
// sentence, e.g. "field rollNo is required".
func Messages(errs validator.ValidationErrors) []string {
	msgs := make([]string, 0, len(errs))

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", e.Field()))
		case "eqfield":
			msgs = append(msgs, fmt.Sprintf("field %s must match %s", e.Field(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return msgs
}
