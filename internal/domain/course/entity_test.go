package course

import (
	"errors"
	"testing"
	"time"

	"skill-matrix/internal/domain"

	"github.com/google/uuid"
)

func TestAssignment_Lifecycle(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a := NewAssignment(uuid.New(), uuid.New(), now, nil)
	if a.Status != StatusNotStarted {
		t.Fatalf("expected Not Started, got %s", a.Status)
	}

	if err := a.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if a.Status != StatusInProgress {
		t.Fatalf("expected In Progress, got %s", a.Status)
	}

	done := now.Add(72 * time.Hour)
	if err := a.Complete(done, " cert-42 "); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if a.Status != StatusCompleted {
		t.Fatalf("expected Completed, got %s", a.Status)
	}
	if a.CompletedAt == nil || !a.CompletedAt.Equal(done) {
		t.Fatalf("expected completed_at=%s, got %v", done, a.CompletedAt)
	}
	if a.CertificateRef != "cert-42" {
		t.Fatalf("expected trimmed certificate ref, got %q", a.CertificateRef)
	}
}

func TestAssignment_InvalidTransitionsLeaveStateUnchanged(t *testing.T) {
	now := time.Now()

	a := NewAssignment(uuid.New(), uuid.New(), now, nil)
	before := a
	if err := a.Complete(now, "x"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("complete from Not Started: expected ErrInvalidTransition, got %v", err)
	}
	if a != before {
		t.Fatalf("assignment mutated on failed complete: %+v", a)
	}

	if err := a.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	inProgress := a
	if err := a.Start(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("start from In Progress: expected ErrInvalidTransition, got %v", err)
	}
	if a != inProgress {
		t.Fatalf("assignment mutated on failed start")
	}

	if err := a.Complete(now, ""); err != nil {
		t.Fatalf("complete: %v", err)
	}
	completed := a
	if err := a.Start(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("start from Completed: expected ErrInvalidTransition, got %v", err)
	}
	if err := a.Complete(now.Add(time.Hour), "other"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("complete from Completed: expected ErrInvalidTransition, got %v", err)
	}
	if a != completed {
		t.Fatalf("assignment mutated after completion")
	}
}

func TestAssignmentSet_RejectsDuplicate(t *testing.T) {
	emp, c := uuid.New(), uuid.New()
	s, err := NewAssignmentSet(NewAssignment(emp, c, time.Now(), nil))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := s.Add(NewAssignment(emp, c, time.Now(), nil)); !errors.Is(err, domain.ErrDuplicateRecord) {
		t.Fatalf("expected ErrDuplicateRecord, got %v", err)
	}
	if !s.Has(emp, c) || s.Len() != 1 {
		t.Fatalf("unexpected set state")
	}
}

func TestNewCatalog_SkipsUnmappedAndOrdersByTitle(t *testing.T) {
	java := uuid.New()
	courses := []Course{
		{ID: uuid.New(), Title: "Spring Boot", SkillID: &java},
		{ID: uuid.New(), Title: "Unmapped Leadership"},
		{ID: uuid.New(), Title: "java fundamentals", SkillID: &java},
	}

	cat := NewCatalog(courses)
	if len(cat) != 1 {
		t.Fatalf("expected 1 mapped skill, got %d", len(cat))
	}
	got := cat.ForSkill(java)
	if len(got) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(got))
	}
	if got[0].Title != "java fundamentals" || got[1].Title != "Spring Boot" {
		t.Fatalf("unexpected order: %s, %s", got[0].Title, got[1].Title)
	}
}

func TestParseStatus(t *testing.T) {
	if st, err := ParseStatus("In Progress"); err != nil || st != StatusInProgress {
		t.Fatalf("unexpected: %v %v", st, err)
	}
	if _, err := ParseStatus("Paused"); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}
