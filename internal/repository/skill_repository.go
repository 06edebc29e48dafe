package repository

import (
	"context"
	"strings"

	"skill-matrix/internal/database"
	"skill-matrix/internal/database/postgres"
	"skill-matrix/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRepository interface {
	List(ctx context.Context) ([]skill.Skill, error)
	FindByID(ctx context.Context, id uuid.UUID) (skill.Skill, error)
	Create(ctx context.Context, s skill.Skill) (skill.Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

const skillColumns = `id, name, description, category, created_at`

func (r *PostgresSkillRepository) List(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT `+skillColumns+` FROM skills ORDER BY lower(name) ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Category, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) FindByID(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	var s skill.Skill
	err := r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Description, &s.Category, &s.CreatedAt)
	if err != nil {
		if postgres.IsNoRows(err) {
			return skill.Skill{}, ErrNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}

// Create inserts a skill; a case-insensitive name clash returns
// domain.ErrDuplicateRecord.
func (r *PostgresSkillRepository) Create(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.Name = strings.TrimSpace(s.Name)
	err := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, name, description, category)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		s.ID, s.Name, s.Description, s.Category,
	).Scan(&s.CreatedAt)
	if err != nil {
		return skill.Skill{}, mapWriteErr(err)
	}
	return s, nil
}
