package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	RollNo  string `json:"rollNo" validate:"required"`
	Secret  string `json:"secret,omitempty" validate:"required"`
	Confirm string `json:"confirm" validate:"eqfield=Secret"`
}

func TestMessagesUseJSONNames(t *testing.T) {
	err := New().Struct(sample{Confirm: "x"})
	require.Error(t, err)

	var fieldErrs validator.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs))

	assert.Equal(t, []string{
		"field rollNo is required",
		"field secret is required",
		"field confirm must match Secret",
	}, Messages(fieldErrs))
}
