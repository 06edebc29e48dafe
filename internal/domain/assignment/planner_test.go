package assignment

import (
	"errors"
	"testing"
	"time"

	"skill-matrix/internal/domain"
	"skill-matrix/internal/domain/course"
	"skill-matrix/internal/domain/gap"
	"skill-matrix/internal/domain/rating"

	"github.com/google/uuid"
)

func skillGap(id uuid.UUID, name string, current int, required rating.Rating) gap.SkillGap {
	return gap.SkillGap{
		SkillID:       id,
		SkillName:     name,
		CurrentLevel:  current,
		Required:      required,
		RequiredLevel: required.Level(),
		Gap:           current - required.Level(),
	}
}

func mappedCourse(skillID uuid.UUID, title string) course.Course {
	id := skillID
	return course.Course{ID: uuid.New(), Title: title, SkillID: &id}
}

func TestBuild_SkipsExistingAssignment(t *testing.T) {
	emp, java := uuid.New(), uuid.New()
	a := mappedCourse(java, "Java A")
	b := mappedCourse(java, "Java B")
	catalog := course.NewCatalog([]course.Course{a, b})

	existing := []course.Assignment{course.NewAssignment(emp, a.ID, time.Now(), nil)}
	plan, err := Build(emp, []gap.SkillGap{skillGap(java, "Java", 1, rating.Advanced)}, catalog, existing)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(plan.ToCreate) != 1 || plan.ToCreate[0].Course.ID != b.ID {
		t.Fatalf("expected only Java B, got %+v", plan.ToCreate)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	emp, java, sql := uuid.New(), uuid.New(), uuid.New()
	catalog := course.NewCatalog([]course.Course{
		mappedCourse(java, "Java A"),
		mappedCourse(java, "Java B"),
		mappedCourse(sql, "SQL Basics"),
	})
	gaps := []gap.SkillGap{
		skillGap(sql, "SQL", 1, rating.Advanced),
		skillGap(java, "Java", 2, rating.Intermediate),
	}

	first, err := Build(emp, gaps, catalog, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(first.ToCreate) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(first.ToCreate))
	}
	if first.ToCreate[0].SkillName != "SQL" {
		t.Fatalf("expected most urgent gap first, got %s", first.ToCreate[0].SkillName)
	}

	persisted := first.Assignments(time.Now(), nil)
	for _, a := range persisted {
		if a.Status != course.StatusNotStarted || a.EmployeeID != emp {
			t.Fatalf("unexpected assignment: %+v", a)
		}
	}

	second, err := Build(emp, gaps, catalog, persisted)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !second.Empty() {
		t.Fatalf("expected empty plan on rerun, got %+v", second.ToCreate)
	}
}

func TestBuild_UncoveredAndNonNegativeGaps(t *testing.T) {
	emp, docker, goID := uuid.New(), uuid.New(), uuid.New()
	catalog := course.NewCatalog([]course.Course{mappedCourse(goID, "Go Tour")})

	plan, err := Build(emp, []gap.SkillGap{
		skillGap(docker, "Docker", 0, rating.Intermediate),
		skillGap(goID, "Go", 3, rating.Intermediate),
	}, catalog, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !plan.Empty() {
		t.Fatalf("met requirement must not produce assignments, got %+v", plan.ToCreate)
	}
	if len(plan.Uncovered) != 1 || plan.Uncovered[0].SkillName != "Docker" || plan.Uncovered[0].Gap != -3 {
		t.Fatalf("expected Docker uncovered, got %+v", plan.Uncovered)
	}
}

func TestBuild_RejectsDuplicateExisting(t *testing.T) {
	emp, c := uuid.New(), uuid.New()
	existing := []course.Assignment{
		course.NewAssignment(emp, c, time.Now(), nil),
		course.NewAssignment(emp, c, time.Now(), nil),
	}
	if _, err := Build(emp, nil, course.Catalog{}, existing); !errors.Is(err, domain.ErrDuplicateRecord) {
		t.Fatalf("expected ErrDuplicateRecord, got %v", err)
	}
}

func TestBuildAll_ContinuesPastFailures(t *testing.T) {
	java := uuid.New()
	catalog := course.NewCatalog([]course.Course{mappedCourse(java, "Java A")})
	gaps := []gap.SkillGap{skillGap(java, "Java", 1, rating.Advanced)}

	okEmp, dupEmp, loadEmp := uuid.New(), uuid.New(), uuid.New()
	c := uuid.New()
	loadErr := errors.New("load failed")

	res := BuildAll([]Input{
		{EmployeeID: dupEmp, Existing: []course.Assignment{
			course.NewAssignment(dupEmp, c, time.Now(), nil),
			course.NewAssignment(dupEmp, c, time.Now(), nil),
		}},
		{EmployeeID: loadEmp, Err: loadErr},
		{EmployeeID: okEmp, Gaps: gaps},
	}, catalog)

	if len(res.Plans) != 1 || res.Plans[0].EmployeeID != okEmp {
		t.Fatalf("expected one successful plan, got %+v", res.Plans)
	}
	if res.TotalToCreate() != 1 {
		t.Fatalf("expected 1 assignment to create, got %d", res.TotalToCreate())
	}
	if len(res.Failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(res.Failures))
	}
	if !errors.Is(res.Failures[0].Err, domain.ErrDuplicateRecord) || res.Failures[1].Err != loadErr {
		t.Fatalf("unexpected failures: %+v", res.Failures)
	}
}
