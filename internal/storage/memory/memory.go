// Package memory provides an ephemeral, thread-safe, in-memory
// implementation of the storage.Storage interface.
//
// Records are kept in insertion order so GetStudents matches the natural
// order of the persistent backends. An index from roll number to slice
// position plays the part of the unique index. Nothing survives a restart;
// use it for tests and throwaway local runs (storage.driver: memory).
package memory

import (
	"context"
	"sync"

	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/types"
)

// Memory is an in-memory implementation of storage.Storage.
type Memory struct {
	mu       sync.RWMutex
	students []types.Student
	index    map[string]int // rollNo -> position in students
}

// New creates a new, empty in-memory store.
func New() *Memory {
	return &Memory{index: make(map[string]int)}
}

func (m *Memory) CreateStudent(_ context.Context, student types.Student) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.index[student.RollNo]; ok {
		return types.Student{}, storage.ErrDuplicateRollNo
	}

	m.index[student.RollNo] = len(m.students)
	m.students = append(m.students, student)

	return student, nil
}

func (m *Memory) GetStudents(_ context.Context) ([]types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Hand out a copy so callers never alias the internal slice.
	students := make([]types.Student, len(m.students))
	copy(students, m.students)

	return students, nil
}

func (m *Memory) GetStudentByRollNo(_ context.Context, rollNo string) (types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.index[rollNo]
	if !ok {
		return types.Student{}, storage.ErrNotFound
	}

	return m.students[i], nil
}

func (m *Memory) UpdateContactNumber(_ context.Context, rollNo, contactNumber string) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[rollNo]
	if !ok {
		return types.Student{}, storage.ErrNotFound
	}

	m.students[i].ContactNumber = contactNumber

	return m.students[i], nil
}

func (m *Memory) DeleteStudentByRollNo(_ context.Context, rollNo string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[rollNo]
	if !ok {
		return storage.ErrNotFound
	}

	m.students = append(m.students[:i], m.students[i+1:]...)
	delete(m.index, rollNo)

	// Everything after the removed record shifted left by one.
	for j := i; j < len(m.students); j++ {
		m.index[m.students[j].RollNo] = j
	}

	return nil
}

func (m *Memory) Close(context.Context) error {
	return nil
}
