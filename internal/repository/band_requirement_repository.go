package repository

import (
	"context"

	"skill-matrix/internal/database"
	"skill-matrix/internal/domain/employee"
	"skill-matrix/internal/domain/gap"
	"skill-matrix/internal/domain/rating"
)

type BandRequirementRepository interface {
	FindByBand(ctx context.Context, band employee.Band) ([]gap.Requirement, error)
}

type PostgresBandRequirementRepository struct {
	db database.DB
}

func NewPostgresBandRequirementRepository(db database.DB) *PostgresBandRequirementRepository {
	return &PostgresBandRequirementRepository{db: db}
}

func (r *PostgresBandRequirementRepository) FindByBand(ctx context.Context, band employee.Band) ([]gap.Requirement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT br.id, br.band, br.skill_id, s.name, br.required_rating, br.is_required
		 FROM band_requirements br
		 JOIN skills s ON s.id = br.skill_id
		 WHERE br.band = $1
		 ORDER BY lower(s.name) ASC`,
		string(band),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]gap.Requirement, 0)
	for rows.Next() {
		var req gap.Requirement
		var b string
		var level int
		if err := rows.Scan(&req.ID, &b, &req.SkillID, &req.SkillName, &level, &req.IsRequired); err != nil {
			return nil, err
		}
		req.Band = employee.Band(b)
		req.Required, err = rating.RatingOf(level)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
