package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"skill-matrix/internal/config"
	"skill-matrix/internal/domain/assignment"
	"skill-matrix/internal/domain/course"
	"skill-matrix/internal/domain/employee"
	"skill-matrix/internal/domain/gap"
	"skill-matrix/internal/domain/skill"
	"skill-matrix/internal/pkg/metrics"
	"skill-matrix/internal/pkg/tracing"
	"skill-matrix/internal/repository"
	"skill-matrix/internal/worker"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const autoAssignLockTTL = 10 * time.Minute

// AssignmentNotifier is told about bulk runs that created assignments.
type AssignmentNotifier interface {
	NotifyAssignmentsCreated(employeeIDs []string, created, failures int)
}

type AutoAssignResult struct {
	EmployeeID uuid.UUID
	Created    []course.Assignment
	Uncovered  []assignment.UncoveredSkill
}

type AutoAssignFailure struct {
	EmployeeID uuid.UUID
	Err        error
}

type AutoAssignSummary struct {
	Employees int
	Created   int
	Results   []AutoAssignResult
	Failures  []AutoAssignFailure
}

type AutoAssignUsecase interface {
	PlanAutoAssignment(ctx context.Context, employeeID uuid.UUID) (assignment.Plan, error)
	ApplyAutoAssignment(ctx context.Context, employeeID uuid.UUID) (AutoAssignResult, error)
	AutoAssignAll(ctx context.Context) (AutoAssignSummary, error)
}

type AutoAssignDeps struct {
	Employees    repository.EmployeeRepository
	Records      repository.SkillRecordRepository
	Requirements repository.BandRequirementRepository
	Courses      repository.CourseRepository
	Assignments  repository.CourseAssignmentRepository
	Lock         Locker
	Notifier     AssignmentNotifier
	Metrics      *metrics.Metrics
	Log          *zap.Logger
	Matching     config.MatchingConfig
}

type AutoAssigner struct {
	AutoAssignDeps
	now func() time.Time
}

func NewAutoAssignUsecase(deps AutoAssignDeps) *AutoAssigner {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &AutoAssigner{AutoAssignDeps: deps, now: time.Now}
}

// snapshot is everything the planner needs for one employee.
type snapshot struct {
	employee employee.Employee
	records  []skill.Record
	reqs     []gap.Requirement
	existing []course.Assignment
	courses  []course.Course
}

func (u *AutoAssigner) loadEmployee(ctx context.Context, id uuid.UUID) (employee.Employee, error) {
	e, err := u.Employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return employee.Employee{}, ErrEmployeeNotFound
		}
		u.Log.Error("load employee failed", zap.String("employee_id", id.String()), zap.Error(err))
		return employee.Employee{}, ErrInternal
	}
	return e, nil
}

func (u *AutoAssigner) loadSnapshot(ctx context.Context, employeeID uuid.UUID) (snapshot, error) {
	emp, err := u.loadEmployee(ctx, employeeID)
	if err != nil {
		return snapshot{}, err
	}
	s := snapshot{employee: emp}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		s.records, err = u.Records.FindByEmployeeID(gctx, employeeID)
		return err
	})
	g.Go(func() error {
		var err error
		s.reqs, err = u.Requirements.FindByBand(gctx, emp.Band)
		return err
	})
	g.Go(func() error {
		var err error
		s.existing, err = u.Assignments.FindByEmployeeID(gctx, employeeID)
		return err
	})
	g.Go(func() error {
		var err error
		s.courses, err = u.Courses.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		u.Log.Error("load auto-assign snapshot failed", zap.String("employee_id", employeeID.String()), zap.Error(err))
		return snapshot{}, ErrInternal
	}
	return s, nil
}

// PlanAutoAssignment is the dry run: it returns what ApplyAutoAssignment
// would create without writing anything.
func (u *AutoAssigner) PlanAutoAssignment(ctx context.Context, employeeID uuid.UUID) (assignment.Plan, error) {
	ctx, span := tracing.Start(ctx, "usecase.PlanAutoAssignment")
	defer span.End()
	span.SetAttributes(attribute.String("employee_id", employeeID.String()))

	s, err := u.loadSnapshot(ctx, employeeID)
	if err != nil {
		return assignment.Plan{}, err
	}
	gaps, err := gap.Analyze(s.records, s.reqs)
	if err != nil {
		return assignment.Plan{}, err
	}
	return assignment.Build(employeeID, gaps, course.NewCatalog(s.courses), s.existing)
}

func (u *AutoAssigner) ApplyAutoAssignment(ctx context.Context, employeeID uuid.UUID) (AutoAssignResult, error) {
	ctx, span := tracing.Start(ctx, "usecase.ApplyAutoAssignment")
	defer span.End()

	plan, err := u.PlanAutoAssignment(ctx, employeeID)
	if err != nil {
		return AutoAssignResult{}, err
	}
	res, err := u.persist(ctx, plan)
	if err != nil {
		return AutoAssignResult{}, err
	}
	u.Metrics.AddAssignmentsCreated(len(res.Created))
	span.SetAttributes(attribute.Int("created", len(res.Created)))
	return res, nil
}

func (u *AutoAssigner) dueDate(at time.Time) *time.Time {
	if u.Matching.AutoAssignDueDays <= 0 {
		return nil
	}
	d := at.UTC().AddDate(0, 0, u.Matching.AutoAssignDueDays)
	return &d
}

func (u *AutoAssigner) persist(ctx context.Context, plan assignment.Plan) (AutoAssignResult, error) {
	res := AutoAssignResult{EmployeeID: plan.EmployeeID, Created: []course.Assignment{}, Uncovered: plan.Uncovered}
	if plan.Empty() {
		return res, nil
	}
	at := u.now()
	created, err := u.Assignments.InsertMissing(ctx, plan.Assignments(at, u.dueDate(at)))
	if err != nil {
		u.Log.Error("insert course assignments failed", zap.String("employee_id", plan.EmployeeID.String()), zap.Error(err))
		return AutoAssignResult{}, ErrInternal
	}
	res.Created = created
	return res, nil
}

// AutoAssignAll plans and persists course assignments for every employee.
// One employee failing never stops the run; failures are listed in the
// summary. Concurrent runs are rejected with ErrAutoAssignInProgress.
func (u *AutoAssigner) AutoAssignAll(ctx context.Context) (AutoAssignSummary, error) {
	ctx, span := tracing.Start(ctx, "usecase.AutoAssignAll")
	defer span.End()

	release, err := u.acquireLock(ctx)
	if err != nil {
		return AutoAssignSummary{}, err
	}
	defer release()

	emps, courses, reqsByBand, err := u.loadPopulation(ctx)
	if err != nil {
		return AutoAssignSummary{}, err
	}
	span.SetAttributes(attribute.Int("employees", len(emps)))

	inputs := u.loadInputs(ctx, emps, reqsByBand)
	bulk := assignment.BuildAll(inputs, course.NewCatalog(courses))

	summary := AutoAssignSummary{
		Employees: len(emps),
		Results:   make([]AutoAssignResult, 0, len(bulk.Plans)),
		Failures:  make([]AutoAssignFailure, 0, len(bulk.Failures)),
	}
	for _, f := range bulk.Failures {
		summary.Failures = append(summary.Failures, AutoAssignFailure{EmployeeID: f.EmployeeID, Err: f.Err})
	}

	var mu sync.Mutex
	tasks := make([]worker.Task, 0, len(bulk.Plans))
	for _, p := range bulk.Plans {
		plan := p
		tasks = append(tasks, worker.Task{
			Key: plan.EmployeeID.String(),
			Run: func(ctx context.Context) error {
				res, err := u.persist(ctx, plan)
				if err != nil {
					return err
				}
				mu.Lock()
				summary.Results = append(summary.Results, res)
				mu.Unlock()
				return nil
			},
		})
	}
	for _, r := range worker.RunAll(ctx, u.Matching.AutoAssignWorkers, tasks) {
		if r.Err != nil {
			id, _ := uuid.Parse(r.Key)
			summary.Failures = append(summary.Failures, AutoAssignFailure{EmployeeID: id, Err: r.Err})
		}
	}
	if err := ctx.Err(); err != nil {
		return AutoAssignSummary{}, err
	}

	sort.Slice(summary.Results, func(i, j int) bool {
		return summary.Results[i].EmployeeID.String() < summary.Results[j].EmployeeID.String()
	})
	sort.Slice(summary.Failures, func(i, j int) bool {
		return summary.Failures[i].EmployeeID.String() < summary.Failures[j].EmployeeID.String()
	})

	touched := make([]string, 0)
	for _, r := range summary.Results {
		summary.Created += len(r.Created)
		if len(r.Created) > 0 {
			touched = append(touched, r.EmployeeID.String())
		}
	}

	u.Metrics.AddAssignmentsCreated(summary.Created)
	u.Metrics.AddAutoAssignErrors(len(summary.Failures))
	if u.Notifier != nil {
		u.Notifier.NotifyAssignmentsCreated(touched, summary.Created, len(summary.Failures))
	}

	u.Log.Info("auto-assignment finished",
		zap.Int("employees", summary.Employees),
		zap.Int("created", summary.Created),
		zap.Int("failures", len(summary.Failures)),
	)
	return summary, nil
}

func (u *AutoAssigner) acquireLock(ctx context.Context) (func(), error) {
	if u.Lock == nil {
		return func() {}, nil
	}
	token := uuid.NewString()
	ok, err := u.Lock.SetIfNotExists(ctx, autoAssignLockKey, token, autoAssignLockTTL)
	if err != nil {
		// the unique constraint still prevents duplicates without the lock
		u.Log.Warn("auto-assign lock unavailable", zap.Error(err))
		return func() {}, nil
	}
	if !ok {
		return nil, ErrAutoAssignInProgress
	}
	return func() {
		if err := u.Lock.Release(context.Background(), autoAssignLockKey, token); err != nil {
			u.Log.Warn("auto-assign lock release failed", zap.Error(err))
		}
	}, nil
}

func (u *AutoAssigner) loadPopulation(ctx context.Context) ([]employee.Employee, []course.Course, map[employee.Band][]gap.Requirement, error) {
	var (
		emps    []employee.Employee
		courses []course.Course
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		emps, err = u.Employees.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		courses, err = u.Courses.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		u.Log.Error("load auto-assign population failed", zap.Error(err))
		return nil, nil, nil, ErrInternal
	}

	bands := make(map[employee.Band]struct{})
	for _, e := range emps {
		bands[e.Band] = struct{}{}
	}
	reqsByBand := make(map[employee.Band][]gap.Requirement, len(bands))
	var mu sync.Mutex
	g, gctx = errgroup.WithContext(ctx)
	for b := range bands {
		band := b
		g.Go(func() error {
			reqs, err := u.Requirements.FindByBand(gctx, band)
			if err != nil {
				return fmt.Errorf("band %s: %w", band, err)
			}
			mu.Lock()
			reqsByBand[band] = reqs
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		u.Log.Error("load band requirements failed", zap.Error(err))
		return nil, nil, nil, ErrInternal
	}
	return emps, courses, reqsByBand, nil
}

// loadInputs reads each employee's ratings and existing assignments on the
// worker pool. Load failures are carried in Input.Err.
func (u *AutoAssigner) loadInputs(ctx context.Context, emps []employee.Employee, reqsByBand map[employee.Band][]gap.Requirement) []assignment.Input {
	inputs := make([]assignment.Input, len(emps))
	tasks := make([]worker.Task, 0, len(emps))
	for i := range emps {
		i, emp := i, emps[i]
		inputs[i] = assignment.Input{EmployeeID: emp.ID}
		tasks = append(tasks, worker.Task{
			Key: emp.ID.String(),
			Run: func(ctx context.Context) error {
				in := &inputs[i]
				records, err := u.Records.FindByEmployeeID(ctx, emp.ID)
				if err != nil {
					u.Log.Error("load skill records failed", zap.String("employee_id", emp.ID.String()), zap.Error(err))
					in.Err = ErrInternal
					return nil
				}
				existing, err := u.Assignments.FindByEmployeeID(ctx, emp.ID)
				if err != nil {
					u.Log.Error("load assignments failed", zap.String("employee_id", emp.ID.String()), zap.Error(err))
					in.Err = ErrInternal
					return nil
				}
				gaps, err := gap.Analyze(records, reqsByBand[emp.Band])
				if err != nil {
					in.Err = err
					return nil
				}
				in.Gaps = gaps
				in.Existing = existing
				return nil
			},
		})
	}
	done := make(map[string]struct{}, len(tasks))
	for _, r := range worker.RunAll(ctx, u.Matching.AutoAssignWorkers, tasks) {
		done[r.Key] = struct{}{}
	}
	for i := range inputs {
		if _, ok := done[inputs[i].EmployeeID.String()]; !ok && inputs[i].Err == nil {
			inputs[i].Err = fmt.Errorf("%w: not processed", ErrInternal)
		}
	}
	return inputs
}
