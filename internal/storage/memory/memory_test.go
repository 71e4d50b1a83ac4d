package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func student(rollNo string) types.Student {
	return types.Student{
		FirstName:     "Ann",
		LastName:      "Lee",
		RollNo:        rollNo,
		Password:      "p1",
		ContactNumber: "555-0101",
	}
}

func TestCreateAndList(t *testing.T) {
	m := New()
	ctx := context.Background()

	for _, r := range []string{"103", "101", "102"} {
		_, err := m.CreateStudent(ctx, student(r))
		require.NoError(t, err)
	}

	students, err := m.GetStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 3)

	// Insertion order is preserved.
	assert.Equal(t, "103", students[0].RollNo)
	assert.Equal(t, "101", students[1].RollNo)
	assert.Equal(t, "102", students[2].RollNo)
}

func TestEmptyListIsNotNil(t *testing.T) {
	students, err := New().GetStudents(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestCreateDuplicate(t *testing.T) {
	m := New()
	ctx := context.Background()

	_, err := m.CreateStudent(ctx, student("101"))
	require.NoError(t, err)

	_, err = m.CreateStudent(ctx, student("101"))
	assert.ErrorIs(t, err, storage.ErrDuplicateRollNo)
}

func TestUpdateContactNumber(t *testing.T) {
	m := New()
	ctx := context.Background()

	_, err := m.CreateStudent(ctx, student("101"))
	require.NoError(t, err)

	updated, err := m.UpdateContactNumber(ctx, "101", "555-9999")
	require.NoError(t, err)
	assert.Equal(t, "555-9999", updated.ContactNumber)
	assert.Equal(t, "Ann", updated.FirstName)

	_, err = m.UpdateContactNumber(ctx, "999", "x")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteKeepsIndexConsistent(t *testing.T) {
	m := New()
	ctx := context.Background()

	for _, r := range []string{"1", "2", "3"} {
		_, err := m.CreateStudent(ctx, student(r))
		require.NoError(t, err)
	}

	require.NoError(t, m.DeleteStudentByRollNo(ctx, "1"))
	assert.ErrorIs(t, m.DeleteStudentByRollNo(ctx, "1"), storage.ErrNotFound)

	got, err := m.GetStudentByRollNo(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "3", got.RollNo)

	_, err = m.GetStudentByRollNo(ctx, "1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestConcurrentCreates(t *testing.T) {
	m := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = m.CreateStudent(ctx, student(fmt.Sprintf("%d", i%10)))
		}(i)
	}
	wg.Wait()

	students, err := m.GetStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 10)
}
