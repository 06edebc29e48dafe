package repository

import (
	"context"

	"skill-matrix/internal/database"
	"skill-matrix/internal/database/postgres"
	"skill-matrix/internal/domain/course"

	"github.com/google/uuid"
)

type CourseAssignmentRepository interface {
	FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]course.Assignment, error)
	FindByID(ctx context.Context, id uuid.UUID) (course.Assignment, error)
	// InsertMissing inserts assignments whose (employee, course) pair does not
	// exist yet and returns the ones actually created. Concurrent callers can
	// race freely; the unique constraint decides who wins.
	InsertMissing(ctx context.Context, items []course.Assignment) ([]course.Assignment, error)
	// UpdateStatus persists a transition only if the stored status still
	// equals from; otherwise it returns ErrConflict.
	UpdateStatus(ctx context.Context, a course.Assignment, from course.Status) error
}

type PostgresCourseAssignmentRepository struct {
	db database.DB
}

func NewPostgresCourseAssignmentRepository(db database.DB) *PostgresCourseAssignmentRepository {
	return &PostgresCourseAssignmentRepository{db: db}
}

const assignmentColumns = `id, employee_id, course_id, status, assigned_at, due_date, completed_at, certificate_ref`

func scanAssignment(row database.Row) (course.Assignment, error) {
	var a course.Assignment
	var status string
	if err := row.Scan(&a.ID, &a.EmployeeID, &a.CourseID, &status, &a.AssignedAt, &a.DueDate, &a.CompletedAt, &a.CertificateRef); err != nil {
		return course.Assignment{}, err
	}
	st, err := course.ParseStatus(status)
	if err != nil {
		return course.Assignment{}, err
	}
	a.Status = st
	return a, nil
}

func (r *PostgresCourseAssignmentRepository) FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]course.Assignment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+assignmentColumns+` FROM course_assignments WHERE employee_id = $1 ORDER BY assigned_at ASC, id ASC`,
		employeeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]course.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCourseAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (course.Assignment, error) {
	a, err := scanAssignment(r.db.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM course_assignments WHERE id = $1`, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return course.Assignment{}, ErrNotFound
		}
		return course.Assignment{}, err
	}
	return a, nil
}

func (r *PostgresCourseAssignmentRepository) InsertMissing(ctx context.Context, items []course.Assignment) ([]course.Assignment, error) {
	if len(items) == 0 {
		return []course.Assignment{}, nil
	}

	created := make([]course.Assignment, 0, len(items))
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, a := range items {
			affected, err := tx.Exec(ctx,
				`INSERT INTO course_assignments (id, employee_id, course_id, status, assigned_at, due_date, certificate_ref)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)
				 ON CONFLICT (employee_id, course_id) DO NOTHING`,
				a.ID, a.EmployeeID, a.CourseID, string(a.Status), a.AssignedAt, a.DueDate, a.CertificateRef,
			)
			if err != nil {
				return err
			}
			if affected == 1 {
				created = append(created, a)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *PostgresCourseAssignmentRepository) UpdateStatus(ctx context.Context, a course.Assignment, from course.Status) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE course_assignments
		 SET status = $1, completed_at = $2, certificate_ref = $3
		 WHERE id = $4 AND status = $5`,
		string(a.Status), a.CompletedAt, a.CertificateRef, a.ID, string(from),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrConflict
	}
	return nil
}
