package repository

import (
	"context"

	"skill-matrix/internal/database"
	"skill-matrix/internal/database/postgres"
	"skill-matrix/internal/domain/employee"

	"github.com/google/uuid"
)

type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (employee.Employee, error)
	List(ctx context.Context) ([]employee.Employee, error)
}

type PostgresEmployeeRepository struct {
	db database.DB
}

func NewPostgresEmployeeRepository(db database.DB) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{db: db}
}

const employeeColumns = `id, name, email, department, band, created_at, updated_at`

func scanEmployee(row database.Row) (employee.Employee, error) {
	var e employee.Employee
	var band string
	if err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Department, &band, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return employee.Employee{}, err
	}
	b, err := employee.ParseBand(band)
	if err != nil {
		return employee.Employee{}, err
	}
	e.Band = b
	return e, nil
}

func (r *PostgresEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (employee.Employee, error) {
	e, err := scanEmployee(r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return employee.Employee{}, ErrNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *PostgresEmployeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	rows, err := r.db.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
