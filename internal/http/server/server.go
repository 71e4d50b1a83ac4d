// Package server wires the student handlers, the health check and the
// middleware chain into a single http.Handler.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-registration/internal/http/handlers/student"
	"github.com/aanand-mishra/student-registration/internal/http/middleware"
)

// NewRouter returns the full API handler.
//
// Route table:
//
//	POST   /students            → register a new student
//	GET    /students            → list all students
//	GET    /students/{rollNo}   → get one student
//	PUT    /students/{rollNo}   → change a student's contact number
//	DELETE /students/{rollNo}   → delete a student
//	GET    /health              → liveness probe
func NewRouter(svc student.Service, log *slog.Logger, allowedOrigins []string) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("POST /students", student.New(svc))
	router.HandleFunc("GET /students", student.GetList(svc))
	router.HandleFunc("GET /students/{rollNo}", student.GetByRollNo(svc))
	router.HandleFunc("PUT /students/{rollNo}", student.Update(svc))
	router.HandleFunc("DELETE /students/{rollNo}", student.Delete(svc))

	router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
	})

	return middleware.Chain(router,
		middleware.Recover(log),
		middleware.Logger(log),
		middleware.CORS(allowedOrigins),
	)
}
