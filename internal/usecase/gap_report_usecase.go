package usecase

import (
	"context"
	"errors"

	"skill-matrix/internal/domain/course"
	"skill-matrix/internal/domain/employee"
	"skill-matrix/internal/domain/gap"
	"skill-matrix/internal/domain/skill"
	"skill-matrix/internal/pkg/tracing"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GapItem is a skill gap plus how many mapped courses could close it.
// Uncovered is set for below-requirement skills without any course.
type GapItem struct {
	gap.SkillGap
	CourseCount int
	Uncovered   bool
}

type GapReport struct {
	Employee employee.Employee
	Band     employee.Band
	Items    []GapItem
	Summary  gap.Summary
}

func (r GapReport) Gaps() []gap.SkillGap {
	out := make([]gap.SkillGap, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, it.SkillGap)
	}
	return out
}

type GapReportUsecase interface {
	ComputeGapReport(ctx context.Context, employeeID uuid.UUID, band *employee.Band) (GapReport, error)
}

type GapReporter struct {
	employees    repository.EmployeeRepository
	records      repository.SkillRecordRepository
	requirements repository.BandRequirementRepository
	courses      repository.CourseRepository
	log          *zap.Logger
}

func NewGapReportUsecase(
	employees repository.EmployeeRepository,
	records repository.SkillRecordRepository,
	requirements repository.BandRequirementRepository,
	courses repository.CourseRepository,
	log *zap.Logger,
) *GapReporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &GapReporter{employees: employees, records: records, requirements: requirements, courses: courses, log: log}
}

func (u *GapReporter) loadEmployee(ctx context.Context, id uuid.UUID) (employee.Employee, error) {
	e, err := u.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return employee.Employee{}, ErrEmployeeNotFound
		}
		u.log.Error("load employee failed", zap.String("employee_id", id.String()), zap.Error(err))
		return employee.Employee{}, ErrInternal
	}
	return e, nil
}

// ComputeGapReport compares the employee's ratings with the requirements of
// band, or of the employee's own band when band is nil.
func (u *GapReporter) ComputeGapReport(ctx context.Context, employeeID uuid.UUID, band *employee.Band) (GapReport, error) {
	ctx, span := tracing.Start(ctx, "usecase.ComputeGapReport")
	defer span.End()

	if band != nil && !band.Valid() {
		return GapReport{}, employee.ErrInvalidBand
	}

	emp, err := u.loadEmployee(ctx, employeeID)
	if err != nil {
		return GapReport{}, err
	}
	b := emp.Band
	if band != nil {
		b = *band
	}
	span.SetAttributes(attribute.String("employee_id", employeeID.String()), attribute.String("band", string(b)))

	var (
		records []skill.Record
		reqs    []gap.Requirement
		courses []course.Course
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = u.records.FindByEmployeeID(gctx, employeeID)
		return err
	})
	g.Go(func() error {
		var err error
		reqs, err = u.requirements.FindByBand(gctx, b)
		return err
	})
	g.Go(func() error {
		var err error
		courses, err = u.courses.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Error("load gap report inputs failed", zap.String("employee_id", employeeID.String()), zap.Error(err))
		return GapReport{}, ErrInternal
	}

	gaps, err := gap.Analyze(records, reqs)
	if err != nil {
		return GapReport{}, err
	}
	return buildGapReport(emp, b, gaps, course.NewCatalog(courses)), nil
}

func buildGapReport(emp employee.Employee, band employee.Band, gaps []gap.SkillGap, catalog course.Catalog) GapReport {
	items := make([]GapItem, 0, len(gaps))
	for _, g := range gaps {
		n := len(catalog.ForSkill(g.SkillID))
		items = append(items, GapItem{SkillGap: g, CourseCount: n, Uncovered: g.Below() && n == 0})
	}
	return GapReport{Employee: emp, Band: band, Items: items, Summary: gap.Summarize(gaps)}
}
