// Package service is the Record Service: it sits between the HTTP handlers
// and the storage backends, validates input, and turns store failures into
// the two outcomes the API cares about, ValidationError and ErrNotFound.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/types"
	"github.com/aanand-mishra/student-registration/internal/utils/validation"
	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned by Get, Update and Delete when no student has
// the requested roll number.
var ErrNotFound = storage.ErrNotFound

// ValidationError means the request was rejected as a client error: a
// missing field, a duplicate roll number, or a write the store refused.
type ValidationError struct {
	// Fields is set when the failure came from struct validation.
	Fields validator.ValidationErrors
	Err    error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return strings.Join(validation.Messages(e.Fields), ", ")
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Fields
}

// StudentService exposes create, list, get, update and delete over a store.
type StudentService struct {
	store    storage.Storage
	validate *validator.Validate
}

func NewStudentService(store storage.Storage) *StudentService {
	return &StudentService{
		store:    store,
		validate: validation.New(),
	}
}

// Create validates all five fields, enforces roll number uniqueness, and
// stores the record. Every failure is a *ValidationError.
func (s *StudentService) Create(ctx context.Context, student types.Student) (types.Student, error) {
	if err := s.check(student); err != nil {
		return types.Student{}, err
	}

	// Uniqueness is checked here rather than left to whatever the backend
	// happens to enforce. The store's unique index still catches the race
	// between this lookup and the insert.
	_, err := s.store.GetStudentByRollNo(ctx, student.RollNo)
	switch {
	case err == nil:
		slog.Debug("rejecting duplicate roll number", slog.String("rollNo", student.RollNo))
		return types.Student{}, &ValidationError{
			Err: fmt.Errorf("%w: %s", storage.ErrDuplicateRollNo, student.RollNo),
		}
	case !errors.Is(err, storage.ErrNotFound):
		return types.Student{}, &ValidationError{Err: err}
	}

	created, err := s.store.CreateStudent(ctx, student)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateRollNo) {
			err = fmt.Errorf("%w: %s", storage.ErrDuplicateRollNo, student.RollNo)
		}
		return types.Student{}, &ValidationError{Err: err}
	}

	return created, nil
}

// List returns every stored student in the store's natural order.
func (s *StudentService) List(ctx context.Context) ([]types.Student, error) {
	students, err := s.store.GetStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// Get returns one student by roll number.
func (s *StudentService) Get(ctx context.Context, rollNo string) (types.Student, error) {
	student, err := s.store.GetStudentByRollNo(ctx, rollNo)
	if err != nil {
		return types.Student{}, fmt.Errorf("get student %s: %w", rollNo, err)
	}
	return student, nil
}

// Update overwrites the contact number of an existing student. Nothing
// else about a student can change once registered.
func (s *StudentService) Update(ctx context.Context, rollNo, contactNumber string) (types.Student, error) {
	if err := s.check(types.UpdateRequest{ContactNumber: contactNumber}); err != nil {
		return types.Student{}, err
	}

	student, err := s.store.UpdateContactNumber(ctx, rollNo, contactNumber)
	if err != nil {
		return types.Student{}, fmt.Errorf("update student %s: %w", rollNo, err)
	}
	return student, nil
}

// Delete removes a student by roll number.
func (s *StudentService) Delete(ctx context.Context, rollNo string) error {
	if err := s.store.DeleteStudentByRollNo(ctx, rollNo); err != nil {
		return fmt.Errorf("delete student %s: %w", rollNo, err)
	}
	return nil
}

func (s *StudentService) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return &ValidationError{Fields: fieldErrs}
	}
	return &ValidationError{Err: err}
}
