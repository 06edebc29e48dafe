package seeder

import (
	"context"

	"skill-matrix/internal/database"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

var starterSkills = []struct {
	Name     string
	Category string
}{
	{Name: "Go", Category: "Programming Language"},
	{Name: "Java", Category: "Programming Language"},
	{Name: "Python", Category: "Programming Language"},
	{Name: "JavaScript", Category: "Programming Language"},
	{Name: "TypeScript", Category: "Programming Language"},
	{Name: "SQL", Category: "Database"},
	{Name: "PostgreSQL", Category: "Database"},
	{Name: "Redis", Category: "Database"},
	{Name: "Docker", Category: "DevOps"},
	{Name: "Kubernetes", Category: "DevOps"},
	{Name: "AWS", Category: "Cloud"},
	{Name: "GCP", Category: "Cloud"},
	{Name: "Communication", Category: "Soft Skill"},
}

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := requireColumns(ctx, db, "skills", "id", "name", "category", "created_at"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range starterSkills {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO skills (id, name, category) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT ((lower(name))) DO NOTHING`,
				it.Name,
				it.Category,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
