// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk. There is no network,
// no separate server process, and no installation beyond the driver, which
// makes it the easiest backend for running the registration API locally
// without MongoDB.
//
// Importing the driver registers "sqlite3" with database/sql in its init();
// the package is also used directly to inspect constraint errors.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/student-registration/internal/config"
	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/types"
	"github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.Storage.SQLitePath, creates the
// students table if it does not already exist, and returns a ready-to-use
// *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	path := cfg.Storage.SQLitePath

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
		}
	}

	// sql.Open does NOT open a real connection yet — it just validates
	// the driver name and data source name (DSN).
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every
	// startup.
	//
	// Schema:
	//   id             — rowid alias; gives the table its natural order
	//   roll_no        — the student's identifier, UNIQUE so the database
	//                    itself rejects a second record with the same value
	//   password       — stored as given (plaintext, see types.Student)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name     TEXT NOT NULL,
			last_name      TEXT NOT NULL,
			roll_no        TEXT NOT NULL UNIQUE,
			password       TEXT NOT NULL,
			contact_number TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateStudent inserts a new row into the students table.
//
// Prepared statements use placeholders (?). The driver sends the query and
// the values separately, so user input is never interpreted as SQL.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreateStudent(ctx context.Context, student types.Student) (types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx, `
		INSERT INTO students (first_name, last_name, roll_no, password, contact_number)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	// Order matters: arguments fill the ? placeholders left to right.
	_, err = stmt.ExecContext(ctx,
		student.FirstName,
		student.LastName,
		student.RollNo,
		student.Password,
		student.ContactNumber,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return types.Student{}, storage.ErrDuplicateRollNo
		}
		return types.Student{}, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	return student, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetStudentByRollNo fetches exactly one student row matched by roll number.
//
// QueryRow returns a single-row result. If nothing matches, the error only
// surfaces when Scan is called, as sql.ErrNoRows.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetStudentByRollNo(ctx context.Context, rollNo string) (types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx, `
		SELECT first_name, last_name, roll_no, password, contact_number
		FROM students WHERE roll_no = ? LIMIT 1
	`)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByRollNo: prepare: %w", err)
	}
	defer stmt.Close()

	student, err := scanStudent(stmt.QueryRowContext(ctx, rollNo))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, storage.ErrNotFound
		}
		return types.Student{}, fmt.Errorf("GetStudentByRollNo: scan: %w", err)
	}

	return student, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetStudents returns all student rows as a slice, oldest first.
//
// Query returns *sql.Rows — a cursor over multiple rows. rows.Next()
// advances it; rows.Close() must always be deferred to release the
// connection back to the pool.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetStudents(ctx context.Context) ([]types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx, `
		SELECT first_name, last_name, roll_no, password, contact_number
		FROM students ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	// Returning [] instead of null in JSON is better API behaviour.
	students := make([]types.Student, 0)

	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdateContactNumber changes one column and returns the updated row in the
// same statement (UPDATE ... RETURNING), so there is no window between the
// write and the read.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) UpdateContactNumber(ctx context.Context, rollNo, contactNumber string) (types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx, `
		UPDATE students SET contact_number = ? WHERE roll_no = ?
		RETURNING first_name, last_name, roll_no, password, contact_number
	`)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateContactNumber: prepare: %w", err)
	}
	defer stmt.Close()

	student, err := scanStudent(stmt.QueryRowContext(ctx, contactNumber, rollNo))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, storage.ErrNotFound
		}
		return types.Student{}, fmt.Errorf("UpdateContactNumber: scan: %w", err)
	}

	return student, nil
}

// DeleteStudentByRollNo removes a student row by roll number.
func (s *SQLite) DeleteStudentByRollNo(ctx context.Context, rollNo string) error {
	stmt, err := s.Db.PrepareContext(ctx, "DELETE FROM students WHERE roll_no = ?")
	if err != nil {
		return fmt.Errorf("DeleteStudentByRollNo: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, rollNo)
	if err != nil {
		return fmt.Errorf("DeleteStudentByRollNo: exec: %w", err)
	}

	// RowsAffected tells us whether the WHERE clause matched anything.
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteStudentByRollNo: rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// Close closes the connection pool.
func (s *SQLite) Close(context.Context) error {
	return s.Db.Close()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanStudent reads the five student columns IN ORDER.
func scanStudent(row scanner) (types.Student, error) {
	var student types.Student
	err := row.Scan(
		&student.FirstName,
		&student.LastName,
		&student.RollNo,
		&student.Password,
		&student.ContactNumber,
	)
	return student, err
}
