package seeder

import (
	"context"

	"skill-matrix/internal/database"
)

type CoursesSeeder struct{}

func (CoursesSeeder) Name() string { return "courses" }

var starterCourses = []struct {
	Title     string
	Skill     string
	URL       string
	Mandatory bool
}{
	{Title: "SQL Fundamentals", Skill: "SQL", URL: "https://learn.example.com/sql-fundamentals", Mandatory: true},
	{Title: "Query Tuning in Practice", Skill: "SQL"},
	{Title: "Java Foundations", Skill: "Java", URL: "https://learn.example.com/java-foundations"},
	{Title: "Spring Boot Essentials", Skill: "Java"},
	{Title: "Docker for Developers", Skill: "Docker", Mandatory: true},
	{Title: "Kubernetes Operations", Skill: "Kubernetes"},
	{Title: "AWS Solutions Architect Prep", Skill: "AWS"},
	{Title: "Presenting with Confidence", Skill: "Communication"},
	{Title: "Company Onboarding"},
}

func (CoursesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := requireColumns(ctx, db, "courses", "id", "title", "skill_id", "url", "mandatory"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range starterCourses {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO courses (id, title, skill_id, url, mandatory)
SELECT gen_random_uuid(), $1, (SELECT id FROM skills WHERE lower(name) = lower($2)), $3, $4
WHERE NOT EXISTS (SELECT 1 FROM courses WHERE lower(title) = lower($1))`,
				it.Title,
				it.Skill,
				it.URL,
				it.Mandatory,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
