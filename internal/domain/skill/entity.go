package skill

import (
	"strings"
	"time"

	"skill-matrix/internal/domain/rating"

	"github.com/google/uuid"
)

type Skill struct {
	ID          uuid.UUID
	Name        string
	Description string
	Category    string
	CreatedAt   time.Time
}

// Record is one employee × skill entry. Rating is nil for interest records
// that have not been assessed yet.
type Record struct {
	ID              uuid.UUID
	EmployeeID      uuid.UUID
	SkillID         uuid.UUID
	SkillName       string
	Rating          *rating.Rating
	YearsExperience *float64
	IsInterest      bool
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type RecordKey struct {
	EmployeeID uuid.UUID
	SkillID    uuid.UUID
	IsInterest bool
}

func (r Record) Key() RecordKey {
	return RecordKey{EmployeeID: r.EmployeeID, SkillID: r.SkillID, IsInterest: r.IsInterest}
}

// Level returns the numeric rating, or 0 when the record is unrated.
func (r Record) Level() int {
	if r.Rating == nil {
		return 0
	}
	return r.Rating.Level()
}

func (r Record) Rated() bool {
	return r.Rating != nil
}

// NameKey folds a skill name for case-insensitive comparisons.
func NameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
