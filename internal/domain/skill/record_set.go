package skill

import (
	"fmt"

	"skill-matrix/internal/domain"
	"skill-matrix/internal/domain/rating"

	"github.com/google/uuid"
)

// RecordSet keeps at most one record per (employee, skill, is_interest).
type RecordSet struct {
	byKey map[RecordKey]Record
	order []RecordKey
}

func NewRecordSet(records ...Record) (*RecordSet, error) {
	s := &RecordSet{byKey: make(map[RecordKey]Record, len(records))}
	for _, r := range records {
		if err := s.Add(r); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *RecordSet) Add(r Record) error {
	if r.SkillID == uuid.Nil {
		return fmt.Errorf("%w: record without skill", domain.ErrInvalidQuery)
	}
	if r.Rating != nil {
		if _, err := rating.LevelOf(*r.Rating); err != nil {
			return err
		}
	}
	k := r.Key()
	if _, ok := s.byKey[k]; ok {
		return fmt.Errorf("%w: skill record employee=%s skill=%s interest=%t",
			domain.ErrDuplicateRecord, k.EmployeeID, k.SkillID, k.IsInterest)
	}
	s.byKey[k] = r
	s.order = append(s.order, k)
	return nil
}

func (s *RecordSet) Len() int {
	return len(s.order)
}

// Records returns the records in insertion order.
func (s *RecordSet) Records() []Record {
	out := make([]Record, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.byKey[k])
	}
	return out
}

// Current returns the employee's possessed (non-interest) record for a skill.
func (s *RecordSet) Current(employeeID, skillID uuid.UUID) (Record, bool) {
	r, ok := s.byKey[RecordKey{EmployeeID: employeeID, SkillID: skillID}]
	return r, ok
}

// CurrentBySkill indexes possessed records by skill, ignoring the employee
// dimension. Callers pass records of a single employee.
func (s *RecordSet) CurrentBySkill() map[uuid.UUID]Record {
	out := make(map[uuid.UUID]Record, len(s.order))
	for _, k := range s.order {
		if k.IsInterest {
			continue
		}
		out[k.SkillID] = s.byKey[k]
	}
	return out
}
