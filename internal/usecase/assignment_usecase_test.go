package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skill-matrix/internal/domain"
	"skill-matrix/internal/domain/course"
	"skill-matrix/internal/domain/employee"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestAssignments_Lifecycle(t *testing.T) {
	emp := employee.Employee{ID: uuid.New(), Band: employee.BandB1}
	a := course.NewAssignment(emp.ID, uuid.New(), time.Now(), nil)
	repo := &fakeAssignmentRepo{items: []course.Assignment{a}}
	u := NewAssignmentUsecase(&fakeEmployeeRepo{items: []employee.Employee{emp}}, repo, zap.NewNop())
	done := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	u.now = func() time.Time { return done }
	ctx := context.Background()

	if _, err := u.CompleteAssignment(ctx, a.ID, "c-1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	started, err := u.StartAssignment(ctx, a.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Status != course.StatusInProgress {
		t.Fatalf("expected In Progress, got %s", started.Status)
	}

	completed, err := u.CompleteAssignment(ctx, a.ID, "c-1")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != course.StatusCompleted || completed.CompletedAt == nil || !completed.CompletedAt.Equal(done) {
		t.Fatalf("unexpected completion: %+v", completed)
	}

	items, err := u.ListAssignments(ctx, emp.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Status != course.StatusCompleted {
		t.Fatalf("expected stored assignment to be completed, got %+v", items)
	}
}

func TestAssignments_Errors(t *testing.T) {
	a := course.NewAssignment(uuid.New(), uuid.New(), time.Now(), nil)
	repo := &fakeAssignmentRepo{items: []course.Assignment{a}, conflict: true}
	u := NewAssignmentUsecase(&fakeEmployeeRepo{}, repo, zap.NewNop())
	ctx := context.Background()

	if _, err := u.StartAssignment(ctx, a.ID); !errors.Is(err, ErrConcurrentUpdate) {
		t.Fatalf("expected ErrConcurrentUpdate, got %v", err)
	}
	if _, err := u.StartAssignment(ctx, uuid.New()); !errors.Is(err, ErrAssignmentNotFound) {
		t.Fatalf("expected ErrAssignmentNotFound, got %v", err)
	}
	if _, err := u.ListAssignments(ctx, uuid.New()); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}
