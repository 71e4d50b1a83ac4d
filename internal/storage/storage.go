// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// The service layer should not know or care which database it is talking
// to. The registration form was originally backed by a MongoDB collection,
// but the same contract is satisfied by SQLite, PostgreSQL and an
// in-memory store. Switching is a config change (storage.driver).
//
// Every backend reports the two domain failures through the sentinel
// errors below, so callers can use errors.Is without importing a driver.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/student-registration/internal/types"
)

var (
	// ErrNotFound is returned when no student has the requested roll number.
	ErrNotFound = errors.New("student not found")

	// ErrDuplicateRollNo is returned when the store's unique index on the
	// roll number rejects an insert.
	ErrDuplicateRollNo = errors.New("roll number already exists")
)

// Storage is the database contract.
// Any concrete type that implements ALL of these methods automatically
// satisfies this interface.
type Storage interface {
	// CreateStudent inserts a new student and returns the stored record.
	CreateStudent(ctx context.Context, student types.Student) (types.Student, error)

	// GetStudents returns every student in the store's natural order
	// (insertion order for all backends). Returns an empty slice, not nil.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// GetStudentByRollNo fetches a single student by roll number.
	GetStudentByRollNo(ctx context.Context, rollNo string) (types.Student, error)

	// UpdateContactNumber overwrites the contact number of one student in a
	// single find-and-update and returns the updated record.
	UpdateContactNumber(ctx context.Context, rollNo, contactNumber string) (types.Student, error)

	// DeleteStudentByRollNo removes a student record permanently.
	DeleteStudentByRollNo(ctx context.Context, rollNo string) error

	// Close releases the underlying connection(s).
	Close(ctx context.Context) error
}
