// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, the API client and the form client can all import
// types without depending on each other.
package types

// Student represents a student record in our system.
//
// Struct tags serve three purposes:
//
//  1. json:"..."  — controls how the field appears when encoded to JSON
//     (camelCase names match what the browser form sends).
//
//  2. bson:"..."  — the field name inside a MongoDB document.
//
//  3. validate:"..." — rules checked by the go-playground/validator
//     package. "required" means the field must be non-empty.
//
// NOTE: the password is stored and returned exactly as given. That is the
// observed behaviour of the registration form and is NOT suitable for a
// real deployment.
type Student struct {
	FirstName     string `json:"firstName"     bson:"firstName"     validate:"required"`
	LastName      string `json:"lastName"      bson:"lastName"      validate:"required"`
	RollNo        string `json:"rollNo"        bson:"rollNo"        validate:"required"`
	Password      string `json:"password"      bson:"password"      validate:"required"`
	ContactNumber string `json:"contactNumber" bson:"contactNumber" validate:"required"`
}

// UpdateRequest is the body of PUT /students/{rollNo}.
// Only the contact number may change after a student is registered.
type UpdateRequest struct {
	ContactNumber string `json:"contactNumber" validate:"required"`
}

// Message is the body of every error response and of the delete
// confirmation, e.g. { "message": "Student deleted" }.
type Message struct {
	Message string `json:"message"`
}
