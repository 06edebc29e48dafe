package assignment

import (
	"time"

	"skill-matrix/internal/domain/course"
	"skill-matrix/internal/domain/gap"

	"github.com/google/uuid"
)

// Item is one course to assign because of a below-requirement skill.
type Item struct {
	SkillID   uuid.UUID
	SkillName string
	Gap       int
	Course    course.Course
}

// UncoveredSkill is a below-requirement skill with no mapped course.
type UncoveredSkill struct {
	SkillID   uuid.UUID
	SkillName string
	Gap       int
}

type Plan struct {
	EmployeeID uuid.UUID
	ToCreate   []Item
	Uncovered  []UncoveredSkill
}

func (p Plan) Empty() bool {
	return len(p.ToCreate) == 0
}

// Assignments materializes the plan as Not Started assignments.
func (p Plan) Assignments(at time.Time, due *time.Time) []course.Assignment {
	out := make([]course.Assignment, 0, len(p.ToCreate))
	for _, it := range p.ToCreate {
		out = append(out, course.NewAssignment(p.EmployeeID, it.Course.ID, at, due))
	}
	return out
}

// Build plans the courses an employee still needs. Gaps are visited in the
// order given, so callers pass the analyzer's most-urgent-first ordering.
// Courses the employee already has an assignment for are skipped, which makes
// a second run over persisted results produce an empty plan.
func Build(employeeID uuid.UUID, gaps []gap.SkillGap, catalog course.Catalog, existing []course.Assignment) (Plan, error) {
	have, err := course.NewAssignmentSet(existing...)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{
		EmployeeID: employeeID,
		ToCreate:   make([]Item, 0),
		Uncovered:  make([]UncoveredSkill, 0),
	}
	planned := make(map[uuid.UUID]struct{})

	for _, g := range gaps {
		if !g.Below() {
			continue
		}
		courses := catalog.ForSkill(g.SkillID)
		if len(courses) == 0 {
			plan.Uncovered = append(plan.Uncovered, UncoveredSkill{SkillID: g.SkillID, SkillName: g.SkillName, Gap: g.Gap})
			continue
		}
		for _, c := range courses {
			if have.Has(employeeID, c.ID) {
				continue
			}
			if _, ok := planned[c.ID]; ok {
				continue
			}
			planned[c.ID] = struct{}{}
			plan.ToCreate = append(plan.ToCreate, Item{SkillID: g.SkillID, SkillName: g.SkillName, Gap: g.Gap, Course: c})
		}
	}
	return plan, nil
}

// Input is one employee's snapshot for bulk planning. Err carries a failure
// from loading the snapshot so it lands in the summary.
type Input struct {
	EmployeeID uuid.UUID
	Gaps       []gap.SkillGap
	Existing   []course.Assignment
	Err        error
}

type Failure struct {
	EmployeeID uuid.UUID
	Err        error
}

type BulkPlan struct {
	Plans    []Plan
	Failures []Failure
}

func (b BulkPlan) TotalToCreate() int {
	n := 0
	for _, p := range b.Plans {
		n += len(p.ToCreate)
	}
	return n
}

// BuildAll plans every employee independently; one failure never stops the
// batch.
func BuildAll(inputs []Input, catalog course.Catalog) BulkPlan {
	out := BulkPlan{
		Plans:    make([]Plan, 0, len(inputs)),
		Failures: make([]Failure, 0),
	}
	for _, in := range inputs {
		if in.Err != nil {
			out.Failures = append(out.Failures, Failure{EmployeeID: in.EmployeeID, Err: in.Err})
			continue
		}
		p, err := Build(in.EmployeeID, in.Gaps, catalog, in.Existing)
		if err != nil {
			out.Failures = append(out.Failures, Failure{EmployeeID: in.EmployeeID, Err: err})
			continue
		}
		out.Plans = append(out.Plans, p)
	}
	return out
}
