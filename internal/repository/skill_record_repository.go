package repository

import (
	"context"

	"skill-matrix/internal/database"
	"skill-matrix/internal/database/postgres"
	"skill-matrix/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRecordRepository interface {
	FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]skill.Record, error)
	// ListPossessed returns every non-interest record, grouped by the caller.
	ListPossessed(ctx context.Context) ([]skill.Record, error)
	FindByID(ctx context.Context, employeeID, id uuid.UUID) (skill.Record, error)
	Create(ctx context.Context, rec skill.Record) (skill.Record, error)
	Update(ctx context.Context, rec skill.Record) (skill.Record, error)
}

type PostgresSkillRecordRepository struct {
	db database.DB
}

func NewPostgresSkillRecordRepository(db database.DB) *PostgresSkillRecordRepository {
	return &PostgresSkillRecordRepository{db: db}
}

const skillRecordSelect = `SELECT sr.id, sr.employee_id, sr.skill_id, s.name, sr.rating, sr.years_experience::float8,
		sr.is_interest, sr.notes, sr.created_at, sr.updated_at
	 FROM skill_records sr
	 JOIN skills s ON s.id = sr.skill_id`

func scanSkillRecord(row database.Row) (skill.Record, error) {
	var rec skill.Record
	var level *int
	if err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.SkillID, &rec.SkillName, &level, &rec.YearsExperience,
		&rec.IsInterest, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return skill.Record{}, err
	}
	r, err := ratingFromLevel(level)
	if err != nil {
		return skill.Record{}, err
	}
	rec.Rating = r
	return rec, nil
}

func (r *PostgresSkillRecordRepository) queryRecords(ctx context.Context, query string, args ...any) ([]skill.Record, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Record, 0)
	for rows.Next() {
		rec, err := scanSkillRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRecordRepository) FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]skill.Record, error) {
	return r.queryRecords(ctx, skillRecordSelect+`
	 WHERE sr.employee_id = $1
	 ORDER BY lower(s.name) ASC, sr.is_interest ASC`, employeeID)
}

func (r *PostgresSkillRecordRepository) ListPossessed(ctx context.Context) ([]skill.Record, error) {
	return r.queryRecords(ctx, skillRecordSelect+`
	 WHERE sr.is_interest = false
	 ORDER BY sr.employee_id ASC, lower(s.name) ASC`)
}

func (r *PostgresSkillRecordRepository) FindByID(ctx context.Context, employeeID, id uuid.UUID) (skill.Record, error) {
	rec, err := scanSkillRecord(r.db.QueryRow(ctx, skillRecordSelect+`
	 WHERE sr.id = $1 AND sr.employee_id = $2`, id, employeeID))
	if err != nil {
		if postgres.IsNoRows(err) {
			return skill.Record{}, ErrNotFound
		}
		return skill.Record{}, err
	}
	return rec, nil
}

// Create relies on the (employee_id, skill_id, is_interest) unique
// constraint; a second record for the same key fails with
// domain.ErrDuplicateRecord.
func (r *PostgresSkillRecordRepository) Create(ctx context.Context, rec skill.Record) (skill.Record, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO skill_records (id, employee_id, skill_id, rating, years_experience, is_interest, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.EmployeeID, rec.SkillID, levelFromRating(rec.Rating), rec.YearsExperience, rec.IsInterest, rec.Notes,
	)
	if err != nil {
		return skill.Record{}, mapWriteErr(err)
	}
	return r.FindByID(ctx, rec.EmployeeID, rec.ID)
}

func (r *PostgresSkillRecordRepository) Update(ctx context.Context, rec skill.Record) (skill.Record, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE skill_records
		 SET rating = $1, years_experience = $2, notes = $3, updated_at = now()
		 WHERE id = $4 AND employee_id = $5`,
		levelFromRating(rec.Rating), rec.YearsExperience, rec.Notes, rec.ID, rec.EmployeeID,
	)
	if err != nil {
		return skill.Record{}, err
	}
	if affected == 0 {
		return skill.Record{}, ErrNotFound
	}
	return r.FindByID(ctx, rec.EmployeeID, rec.ID)
}
