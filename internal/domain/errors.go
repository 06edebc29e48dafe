package domain

import "errors"

var (
	ErrInvalidRating     = errors.New("invalid rating")
	ErrInvalidQuery      = errors.New("invalid query")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDuplicateRecord   = errors.New("duplicate record")
)
