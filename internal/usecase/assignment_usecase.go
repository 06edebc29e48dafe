package usecase

import (
	"context"
	"errors"
	"time"

	"skill-matrix/internal/domain/course"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AssignmentUsecase interface {
	ListAssignments(ctx context.Context, employeeID uuid.UUID) ([]course.Assignment, error)
	StartAssignment(ctx context.Context, id uuid.UUID) (course.Assignment, error)
	CompleteAssignment(ctx context.Context, id uuid.UUID, certificateRef string) (course.Assignment, error)
}

type Assignments struct {
	employees   repository.EmployeeRepository
	assignments repository.CourseAssignmentRepository
	log         *zap.Logger
	now         func() time.Time
}

func NewAssignmentUsecase(employees repository.EmployeeRepository, assignments repository.CourseAssignmentRepository, log *zap.Logger) *Assignments {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assignments{employees: employees, assignments: assignments, log: log, now: time.Now}
}

func (u *Assignments) ListAssignments(ctx context.Context, employeeID uuid.UUID) ([]course.Assignment, error) {
	if _, err := u.employees.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		u.log.Error("load employee failed", zap.String("employee_id", employeeID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	items, err := u.assignments.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		u.log.Error("list assignments failed", zap.String("employee_id", employeeID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Assignments) StartAssignment(ctx context.Context, id uuid.UUID) (course.Assignment, error) {
	return u.transition(ctx, id, func(a *course.Assignment) error {
		return a.Start()
	})
}

func (u *Assignments) CompleteAssignment(ctx context.Context, id uuid.UUID, certificateRef string) (course.Assignment, error) {
	return u.transition(ctx, id, func(a *course.Assignment) error {
		return a.Complete(u.now(), certificateRef)
	})
}

// transition applies step to the stored assignment and persists it only if
// nobody changed the status in between.
func (u *Assignments) transition(ctx context.Context, id uuid.UUID, step func(*course.Assignment) error) (course.Assignment, error) {
	a, err := u.assignments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return course.Assignment{}, ErrAssignmentNotFound
		}
		u.log.Error("load assignment failed", zap.String("assignment_id", id.String()), zap.Error(err))
		return course.Assignment{}, ErrInternal
	}

	from := a.Status
	if err := step(&a); err != nil {
		return course.Assignment{}, err
	}

	if err := u.assignments.UpdateStatus(ctx, a, from); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return course.Assignment{}, ErrConcurrentUpdate
		}
		u.log.Error("update assignment status failed", zap.String("assignment_id", id.String()), zap.Error(err))
		return course.Assignment{}, ErrInternal
	}
	return a, nil
}
