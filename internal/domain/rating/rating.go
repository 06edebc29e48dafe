// Package rating holds the five-level ordinal skill scale.
package rating

import (
	"fmt"
	"strings"

	"skill-matrix/internal/domain"
)

type Rating int

const (
	Beginner Rating = iota + 1
	Developing
	Intermediate
	Advanced
	Expert
)

const (
	MinLevel = int(Beginner)
	MaxLevel = int(Expert)
)

var labels = map[Rating]string{
	Beginner:     "Beginner",
	Developing:   "Developing",
	Intermediate: "Intermediate",
	Advanced:     "Advanced",
	Expert:       "Expert",
}

var byLabel = map[string]Rating{
	"beginner":     Beginner,
	"developing":   Developing,
	"intermediate": Intermediate,
	"advanced":     Advanced,
	"expert":       Expert,
}

// All returns the scale in ascending order.
func All() []Rating {
	return []Rating{Beginner, Developing, Intermediate, Advanced, Expert}
}

func (r Rating) Valid() bool {
	return int(r) >= MinLevel && int(r) <= MaxLevel
}

func (r Rating) String() string {
	if l, ok := labels[r]; ok {
		return l
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// Level is the numeric level of a valid rating. Use LevelOf for unchecked input.
func (r Rating) Level() int {
	return int(r)
}

// AtLeast reports whether r meets the minimum rating.
func (r Rating) AtLeast(floor Rating) bool {
	return r.Level() >= floor.Level()
}

func LevelOf(r Rating) (int, error) {
	if !r.Valid() {
		return 0, fmt.Errorf("%w: level %d", domain.ErrInvalidRating, int(r))
	}
	return int(r), nil
}

func RatingOf(level int) (Rating, error) {
	r := Rating(level)
	if !r.Valid() {
		return 0, fmt.Errorf("%w: level %d", domain.ErrInvalidRating, level)
	}
	return r, nil
}

// Parse accepts one of the five labels, case-insensitively.
func Parse(label string) (Rating, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	if r, ok := byLabel[key]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("%w: %q", domain.ErrInvalidRating, label)
}

// ParsePtr parses an optional label; blank input yields nil.
func ParsePtr(label string) (*Rating, error) {
	if strings.TrimSpace(label) == "" {
		return nil, nil
	}
	r, err := Parse(label)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func Compare(a, b Rating) int {
	switch {
	case a.Level() < b.Level():
		return -1
	case a.Level() > b.Level():
		return 1
	default:
		return 0
	}
}

func (r Rating) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: level %d", domain.ErrInvalidRating, int(r))
	}
	return []byte(labels[r]), nil
}

func (r *Rating) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
