// Package postgres provides a PostgreSQL-backed implementation of the
// storage.Storage interface on top of a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aanand-mishra/student-registration/internal/config"
	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

const studentColumns = "first_name, last_name, roll_no, password, contact_number"

// Postgres is the concrete implementation of storage.Storage.
type Postgres struct {
	pool *pgxpool.Pool
}

// New creates the pool, pings the server and creates the students table
// if needed.
func New(ctx context.Context, cfg *config.Config) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Storage.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse url: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 5 * time.Minute
	poolCfg.MaxConnIdleTime = 2 * time.Minute
	poolCfg.ConnConfig.ConnectTimeout = 3 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS students (
			id             BIGSERIAL PRIMARY KEY,
			first_name     TEXT NOT NULL,
			last_name      TEXT NOT NULL,
			roll_no        TEXT NOT NULL UNIQUE,
			password       TEXT NOT NULL,
			contact_number TEXT NOT NULL
		)
	`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: create table: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

func (p *Postgres) CreateStudent(ctx context.Context, student types.Student) (types.Student, error) {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO students (`+studentColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		student.FirstName, student.LastName, student.RollNo, student.Password, student.ContactNumber,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return types.Student{}, storage.ErrDuplicateRollNo
		}
		return types.Student{}, fmt.Errorf("CreateStudent: %w", err)
	}

	return student, nil
}

func (p *Postgres) GetStudents(ctx context.Context) ([]types.Student, error) {
	rows, err := p.pool.Query(ctx, `SELECT `+studentColumns+` FROM students ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

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

func (p *Postgres) GetStudentByRollNo(ctx context.Context, rollNo string) (types.Student, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE roll_no = $1`, rollNo)
	return one("GetStudentByRollNo", row)
}

func (p *Postgres) UpdateContactNumber(ctx context.Context, rollNo, contactNumber string) (types.Student, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE students SET contact_number = $1 WHERE roll_no = $2 RETURNING `+studentColumns,
		contactNumber, rollNo,
	)
	return one("UpdateContactNumber", row)
}

func (p *Postgres) DeleteStudentByRollNo(ctx context.Context, rollNo string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM students WHERE roll_no = $1`, rollNo)
	if err != nil {
		return fmt.Errorf("DeleteStudentByRollNo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (p *Postgres) Close(context.Context) error {
	p.pool.Close()
	return nil
}

func one(op string, row pgx.Row) (types.Student, error) {
	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Student{}, storage.ErrNotFound
		}
		return types.Student{}, fmt.Errorf("%s: %w", op, err)
	}
	return student, nil
}

func scanStudent(row pgx.Row) (types.Student, error) {
	var s types.Student
	err := row.Scan(&s.FirstName, &s.LastName, &s.RollNo, &s.Password, &s.ContactNumber)
	return s, err
}
