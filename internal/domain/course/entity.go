package course

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"skill-matrix/internal/domain"

	"github.com/google/uuid"
)

type Course struct {
	ID        uuid.UUID
	Title     string
	SkillID   *uuid.UUID
	URL       string
	Mandatory bool
	CreatedAt time.Time
}

// Mapped reports whether the course teaches a catalog skill.
func (c Course) Mapped() bool {
	return c.SkillID != nil && *c.SkillID != uuid.Nil
}

type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.TrimSpace(s))
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", domain.ErrInvalidQuery, s)
	}
	return st, nil
}

type Assignment struct {
	ID             uuid.UUID
	EmployeeID     uuid.UUID
	CourseID       uuid.UUID
	Status         Status
	AssignedAt     time.Time
	DueDate        *time.Time
	CompletedAt    *time.Time
	CertificateRef string
}

type AssignmentKey struct {
	EmployeeID uuid.UUID
	CourseID   uuid.UUID
}

func (a Assignment) Key() AssignmentKey {
	return AssignmentKey{EmployeeID: a.EmployeeID, CourseID: a.CourseID}
}

// NewAssignment returns a fresh Not Started assignment.
func NewAssignment(employeeID, courseID uuid.UUID, assignedAt time.Time, due *time.Time) Assignment {
	return Assignment{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		CourseID:   courseID,
		Status:     StatusNotStarted,
		AssignedAt: assignedAt.UTC(),
		DueDate:    due,
	}
}

// Start moves Not Started → In Progress.
func (a *Assignment) Start() error {
	if a.Status != StatusNotStarted {
		return fmt.Errorf("%w: start from %q", domain.ErrInvalidTransition, a.Status)
	}
	a.Status = StatusInProgress
	return nil
}

// Complete moves In Progress → Completed.
func (a *Assignment) Complete(at time.Time, certificateRef string) error {
	if a.Status != StatusInProgress {
		return fmt.Errorf("%w: complete from %q", domain.ErrInvalidTransition, a.Status)
	}
	done := at.UTC()
	a.Status = StatusCompleted
	a.CompletedAt = &done
	a.CertificateRef = strings.TrimSpace(certificateRef)
	return nil
}

// AssignmentSet keeps at most one assignment per (employee, course).
type AssignmentSet struct {
	byKey map[AssignmentKey]Assignment
}

func NewAssignmentSet(items ...Assignment) (*AssignmentSet, error) {
	s := &AssignmentSet{byKey: make(map[AssignmentKey]Assignment, len(items))}
	for _, a := range items {
		if err := s.Add(a); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *AssignmentSet) Add(a Assignment) error {
	k := a.Key()
	if _, ok := s.byKey[k]; ok {
		return fmt.Errorf("%w: assignment employee=%s course=%s", domain.ErrDuplicateRecord, k.EmployeeID, k.CourseID)
	}
	s.byKey[k] = a
	return nil
}

func (s *AssignmentSet) Has(employeeID, courseID uuid.UUID) bool {
	_, ok := s.byKey[AssignmentKey{EmployeeID: employeeID, CourseID: courseID}]
	return ok
}

func (s *AssignmentSet) Len() int {
	return len(s.byKey)
}

// Catalog groups mapped courses by skill, each list ordered by title then id.
type Catalog map[uuid.UUID][]Course

func NewCatalog(courses []Course) Catalog {
	out := Catalog{}
	for _, c := range courses {
		if !c.Mapped() {
			continue
		}
		out[*c.SkillID] = append(out[*c.SkillID], c)
	}
	for k := range out {
		list := out[k]
		sort.SliceStable(list, func(i, j int) bool {
			ti, tj := strings.ToLower(list[i].Title), strings.ToLower(list[j].Title)
			if ti != tj {
				return ti < tj
			}
			return list[i].ID.String() < list[j].ID.String()
		})
	}
	return out
}

func (c Catalog) ForSkill(skillID uuid.UUID) []Course {
	return c[skillID]
}
