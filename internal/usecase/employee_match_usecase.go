package usecase

import (
	"context"

	"skill-matrix/internal/config"
	"skill-matrix/internal/domain/employee"
	"skill-matrix/internal/domain/matching"
	"skill-matrix/internal/domain/skill"
	"skill-matrix/internal/pkg/metrics"
	"skill-matrix/internal/pkg/tracing"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type EmployeeMatchUsecase interface {
	MatchEmployees(ctx context.Context, criteria []matching.Criterion, threshold *float64) ([]matching.EmployeeMatch, error)
}

type EmployeeMatch struct {
	employees repository.EmployeeRepository
	records   repository.SkillRecordRepository
	metrics   *metrics.Metrics
	log       *zap.Logger
	matching  config.MatchingConfig
}

func NewEmployeeMatchUsecase(
	employees repository.EmployeeRepository,
	records repository.SkillRecordRepository,
	m *metrics.Metrics,
	log *zap.Logger,
	cfg config.MatchingConfig,
) *EmployeeMatch {
	if log == nil {
		log = zap.NewNop()
	}
	return &EmployeeMatch{employees: employees, records: records, metrics: m, log: log, matching: cfg}
}

// MatchEmployees loads a snapshot of every employee and their possessed
// skills, then ranks them against the criteria.
func (u *EmployeeMatch) MatchEmployees(ctx context.Context, criteria []matching.Criterion, threshold *float64) ([]matching.EmployeeMatch, error) {
	ctx, span := tracing.Start(ctx, "usecase.MatchEmployees")
	defer span.End()

	t := u.matching.DefaultThreshold
	if threshold != nil {
		t = *threshold
	}
	if err := matching.Validate(criteria, t); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("criteria", len(criteria)), attribute.Float64("threshold", t))
	u.metrics.ObserveMatch()

	var (
		emps    []employee.Employee
		records []skill.Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		emps, err = u.employees.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = u.records.ListPossessed(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Error("load match population failed", zap.Error(err))
		return nil, ErrInternal
	}

	out, err := matching.MatchEmployees(criteria, buildProfiles(emps, records), t)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("matches", len(out)))
	return out, nil
}

func buildProfiles(emps []employee.Employee, records []skill.Record) []matching.Profile {
	byEmployee := make(map[uuid.UUID][]skill.Record, len(emps))
	for _, r := range records {
		byEmployee[r.EmployeeID] = append(byEmployee[r.EmployeeID], r)
	}
	out := make([]matching.Profile, 0, len(emps))
	for _, e := range emps {
		out = append(out, matching.Profile{Employee: e, Records: byEmployee[e.ID]})
	}
	return out
}
