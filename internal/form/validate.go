package form

import (
	"errors"

	"github.com/aanand-mishra/student-registration/internal/utils/validation"
	"github.com/go-playground/validator/v10"
)

var validate = validation.New()

// messages maps a draft field to the text shown under its input.
var messages = map[string]string{
	FieldFirstName:       "First Name is required",
	FieldLastName:        "Last Name is required",
	FieldRollNo:          "Roll No is required",
	FieldPassword:        "Password is required",
	FieldConfirmPassword: "Passwords do not match",
	FieldContactNumber:   "Contact Number is required",
}

// Validate checks a draft and returns one message per failing field. An
// empty result means the draft may be submitted.
//
// The password confirmation is only compared once a password is present;
// a missing password is reported on its own.
func Validate(d Draft) Errors {
	errs := Errors{}

	var fieldErrs validator.ValidationErrors
	if !errors.As(validate.Struct(d), &fieldErrs) {
		return errs
	}

	for _, fe := range fieldErrs {
		errs[fe.Field()] = messages[fe.Field()]
	}

	if _, ok := errs[FieldPassword]; ok {
		delete(errs, FieldConfirmPassword)
	}

	return errs
}
