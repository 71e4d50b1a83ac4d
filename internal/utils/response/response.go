// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
//
// Error responses always have the same shape, which is also what the form
// client reads to show a server error:
//
//	{ "message": "Student not found" }
package response

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aanand-mishra/student-registration/internal/types"
	"github.com/aanand-mishra/student-registration/internal/utils/validation"
	"github.com/go-playground/validator/v10"
)

// ─────────────────────────────────────────────────────────────────────────────
// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
// ─────────────────────────────────────────────────────────────────────────────
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode() appends a newline after the JSON — handy for curl.
	return json.NewEncoder(w).Encode(data)
}

// Message builds a { "message": ... } body.
func Message(msg string) types.Message {
	return types.Message{Message: msg}
}

// GeneralError wraps any Go error into the standard error body.
//
//	response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
func GeneralError(err error) types.Message {
	return Message(err.Error())
}

// ValidationError joins every field error into one human-readable message:
//
//	{ "message": "field firstName is required, field rollNo is required" }
func ValidationError(errs validator.ValidationErrors) types.Message {
	return Message(strings.Join(validation.Messages(errs), ", "))
}
