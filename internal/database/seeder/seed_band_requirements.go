package seeder

import (
	"context"

	"skill-matrix/internal/database"
	"skill-matrix/internal/domain/employee"
	"skill-matrix/internal/domain/rating"
)

type BandRequirementsSeeder struct{}

func (BandRequirementsSeeder) Name() string { return "band_requirements" }

type bandRequirementSeed struct {
	Band     employee.Band
	Skill    string
	Required rating.Rating
}

// Engineering ladder: each band raises the floor of the previous one.
var starterRequirements = []bandRequirementSeed{
	{employee.BandB1, "SQL", rating.Beginner},
	{employee.BandB1, "Communication", rating.Developing},
	{employee.BandB2, "SQL", rating.Developing},
	{employee.BandB2, "Java", rating.Developing},
	{employee.BandB2, "Communication", rating.Developing},
	{employee.BandB3, "SQL", rating.Intermediate},
	{employee.BandB3, "Java", rating.Intermediate},
	{employee.BandB3, "Docker", rating.Intermediate},
	{employee.BandB3, "Communication", rating.Intermediate},
	{employee.BandB4, "SQL", rating.Advanced},
	{employee.BandB4, "Java", rating.Advanced},
	{employee.BandB4, "Docker", rating.Intermediate},
	{employee.BandB4, "Kubernetes", rating.Intermediate},
	{employee.BandB4, "Communication", rating.Advanced},
	{employee.BandB5, "SQL", rating.Advanced},
	{employee.BandB5, "Java", rating.Expert},
	{employee.BandB5, "Kubernetes", rating.Advanced},
	{employee.BandB5, "AWS", rating.Advanced},
	{employee.BandB5, "Communication", rating.Expert},
}

func (BandRequirementsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := requireColumns(ctx, db, "band_requirements", "id", "band", "skill_id", "required_rating", "is_required"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range starterRequirements {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO band_requirements (id, band, skill_id, required_rating, is_required)
SELECT gen_random_uuid(), $1, s.id, $2, true FROM skills s WHERE lower(s.name) = lower($3)
ON CONFLICT (band, skill_id) DO NOTHING`,
				string(it.Band),
				it.Required.Level(),
				it.Skill,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
