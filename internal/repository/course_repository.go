package repository

import (
	"context"

	"skill-matrix/internal/database"
	"skill-matrix/internal/domain/course"
)

type CourseRepository interface {
	List(ctx context.Context) ([]course.Course, error)
}

type PostgresCourseRepository struct {
	db database.DB
}

func NewPostgresCourseRepository(db database.DB) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db}
}

func (r *PostgresCourseRepository) List(ctx context.Context) ([]course.Course, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, skill_id, url, mandatory, created_at
		 FROM courses
		 ORDER BY lower(title) ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]course.Course, 0)
	for rows.Next() {
		var c course.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.SkillID, &c.URL, &c.Mandatory, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
