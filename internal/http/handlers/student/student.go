// Package student contains all HTTP handlers related to the Student resource.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like the record service.
// A factory function accepts the dependency and returns a function with
// the exact signature the router needs:
//
//	router.HandleFunc("POST /students", student.New(svc))
//	//                                          ^^^^^^^^
//	//                New(svc) is called ONCE at startup; the returned
//	//                handler runs on EVERY incoming request.
//
// Every handler performs exactly one Service call and maps its outcome to a
// status code. No state is kept between requests.
package student

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-registration/internal/service"
	"github.com/aanand-mishra/student-registration/internal/types"
	"github.com/aanand-mishra/student-registration/internal/utils/response"
)

// Service is what the handlers need from the record service.
// *service.StudentService satisfies it.
type Service interface {
	Create(ctx context.Context, student types.Student) (types.Student, error)
	List(ctx context.Context) ([]types.Student, error)
	Get(ctx context.Context, rollNo string) (types.Student, error)
	Update(ctx context.Context, rollNo, contactNumber string) (types.Student, error)
	Delete(ctx context.Context, rollNo string) error
}

// Messages the form client shows verbatim.
const (
	msgNotFound = "Student not found"
	msgDeleted  = "Student deleted"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /students
// Registers a new student from the JSON request body.
//
// Request body (JSON):
//
//	{ "firstName": "Ann", "lastName": "Lee", "rollNo": "101",
//	  "password": "p1", "contactNumber": "555-0101" }
//
// Success response (201 Created): the stored student.
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, missing field,
//	                   duplicate roll number, or a write the store refused
//
// ─────────────────────────────────────────────────────────────────────────────
func New(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		var student types.Student
		if !decode(w, r, &student) {
			return
		}

		created, err := svc.Create(r.Context(), student)
		if err != nil {
			slog.Warn("student not created",
				slog.String("rollNo", student.RollNo),
				slog.String("error", err.Error()))

			var vErr *service.ValidationError
			if errors.As(err, &vErr) && len(vErr.Fields) > 0 {
				response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(vErr.Fields))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		slog.Info("student created", slog.String("rollNo", created.RollNo))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /students
// Returns a JSON array of all students, [] (not null) when there are none.
//
// Error responses:
//
//	500 Internal     — the store could not be read
//
// ─────────────────────────────────────────────────────────────────────────────
func GetList(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := svc.List(r.Context())
		if err != nil {
			slog.Error("error getting students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByRollNo handles GET /students/{rollNo}
//
// Error responses:
//
//	404 Not Found    — no student with that roll number
//	500 Internal     — the store could not be read
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByRollNo(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// r.PathValue extracts the {rollNo} segment matched by the
		// "GET /students/{rollNo}" pattern (Go 1.22+ ServeMux).
		rollNo := r.PathValue("rollNo")
		slog.Info("getting a student", slog.String("rollNo", rollNo))

		student, err := svc.Get(r.Context(), rollNo)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.Message(msgNotFound))
				return
			}
			slog.Error("error getting student",
				slog.String("rollNo", rollNo),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /students/{rollNo}
// Changes the contact number of an existing student. Any other field in
// the body is ignored: names, roll number and password are fixed once a
// student is registered.
//
// Request body (JSON):
//
//	{ "contactNumber": "555-9999" }
//
// Success response (200 OK): the updated student.
//
// Error responses:
//
//	404 Not Found    — no student with that roll number
//	400 Bad Request  — anything else (bad body, missing contactNumber, store error)
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rollNo := r.PathValue("rollNo")
		slog.Info("updating a student", slog.String("rollNo", rollNo))

		var req types.UpdateRequest
		if !decode(w, r, &req) {
			return
		}

		updated, err := svc.Update(r.Context(), rollNo, req.ContactNumber)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.Message(msgNotFound))
				return
			}
			slog.Error("error updating student",
				slog.String("rollNo", rollNo),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		slog.Info("student updated", slog.String("rollNo", rollNo))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /students/{rollNo}
// Permanently removes a student record.
//
// Success response (200 OK):
//
//	{ "message": "Student deleted" }
//
// Error responses:
//
//	404 Not Found    — no student with that roll number
//	400 Bad Request  — store error
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rollNo := r.PathValue("rollNo")
		slog.Info("deleting a student", slog.String("rollNo", rollNo))

		if err := svc.Delete(r.Context(), rollNo); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.Message(msgNotFound))
				return
			}
			slog.Error("error deleting student",
				slog.String("rollNo", rollNo),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		slog.Info("student deleted", slog.String("rollNo", rollNo))
		response.WriteJSON(w, http.StatusOK, response.Message(msgDeleted))
	}
}

// decode reads the JSON body into v. On failure it writes a 400 and
// returns false, so the caller only has to return.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)

	// io.EOF means the body was completely empty.
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return false
	}

	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return false
	}

	return true
}
