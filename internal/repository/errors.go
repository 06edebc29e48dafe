package repository

import (
	"errors"
	"fmt"

	"skill-matrix/internal/database/postgres"
	"skill-matrix/internal/domain"
	"skill-matrix/internal/domain/rating"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a compare-and-set update that lost the race.
	ErrConflict = errors.New("conflict")
)

// mapWriteErr turns unique violations into domain.ErrDuplicateRecord so the
// database constraint and the in-memory check surface the same error.
func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if name, ok := postgres.IsUniqueViolation(err); ok {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateRecord, name)
	}
	return err
}

func ratingFromLevel(level *int) (*rating.Rating, error) {
	if level == nil {
		return nil, nil
	}
	r, err := rating.RatingOf(*level)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func levelFromRating(r *rating.Rating) *int {
	if r == nil {
		return nil
	}
	l := r.Level()
	return &l
}
