// Package form is the registration form client, independent of any UI
// runtime.
//
// All form state lives in an immutable State snapshot. Every change is an
// Action fed through Reduce, which returns a new snapshot and never
// modifies the old one. Controller performs the network effects (list,
// create, update, delete) against the API and dispatches the resulting
// actions; Render and Run provide a terminal front end.
package form

import "github.com/aanand-mishra/student-registration/internal/types"

// Field keys, identical to the JSON names the API uses.
const (
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldRollNo          = "rollNo"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldContactNumber   = "contactNumber"

	// FieldServer holds the single error line reported by the server.
	FieldServer = "server"
)

// Fields lists the draft fields in display order.
var Fields = []string{
	FieldFirstName,
	FieldLastName,
	FieldRollNo,
	FieldPassword,
	FieldConfirmPassword,
	FieldContactNumber,
}

// Draft is the in-progress, unsaved form.
type Draft struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	RollNo          string `json:"rollNo" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
	ContactNumber   string `json:"contactNumber" validate:"required"`
}

// Get returns the value of a field by key.
func (d Draft) Get(field string) string {
	switch field {
	case FieldFirstName:
		return d.FirstName
	case FieldLastName:
		return d.LastName
	case FieldRollNo:
		return d.RollNo
	case FieldPassword:
		return d.Password
	case FieldConfirmPassword:
		return d.ConfirmPassword
	case FieldContactNumber:
		return d.ContactNumber
	}
	return ""
}

// With returns a copy of d with field set to value. ok is false for an
// unknown field.
func (d Draft) With(field, value string) (next Draft, ok bool) {
	switch field {
	case FieldFirstName:
		d.FirstName = value
	case FieldLastName:
		d.LastName = value
	case FieldRollNo:
		d.RollNo = value
	case FieldPassword:
		d.Password = value
	case FieldConfirmPassword:
		d.ConfirmPassword = value
	case FieldContactNumber:
		d.ContactNumber = value
	default:
		return d, false
	}
	return d, true
}

// Student is the record the draft registers.
func (d Draft) Student() types.Student {
	return types.Student{
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		RollNo:        d.RollNo,
		Password:      d.Password,
		ContactNumber: d.ContactNumber,
	}
}

// Errors maps a field key to its message.
type Errors map[string]string

func (e Errors) clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// State is one snapshot of the form.
type State struct {
	Draft   Draft
	Errors  Errors
	Success string

	// Students is the cached copy of the full list as of the last refresh.
	Students []types.Student

	IsEditing  bool
	EditRollNo string
}

// Initial is the state of a freshly opened form.
func Initial() State {
	return State{Errors: Errors{}, Students: []types.Student{}}
}

// Locked reports whether field's input is disabled. Names and roll number
// cannot change while a record is being edited.
func (s State) Locked(field string) bool {
	if !s.IsEditing {
		return false
	}
	switch field {
	case FieldFirstName, FieldLastName, FieldRollNo:
		return true
	}
	return false
}

func (s State) clone() State {
	next := s
	next.Errors = s.Errors.clone()
	next.Students = append([]types.Student(nil), s.Students...)
	return next
}
