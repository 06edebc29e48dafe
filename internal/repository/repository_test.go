package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"skill-matrix/internal/database"
	"skill-matrix/internal/domain"
	"skill-matrix/internal/domain/course"
	"skill-matrix/internal/domain/rating"
	"skill-matrix/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type execResult struct {
	affected int64
	err      error
}

type fakeDB struct {
	results   []execResult
	queries   []string
	commits   int
	rollbacks int
}

func (d *fakeDB) next(query string) (int64, error) {
	d.queries = append(d.queries, query)
	if len(d.results) == 0 {
		return 0, nil
	}
	r := d.results[0]
	d.results = d.results[1:]
	return r.affected, r.err
}

func (d *fakeDB) Ping(context.Context) error { return nil }
func (d *fakeDB) Close() error               { return nil }
func (d *fakeDB) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	return d.next(query)
}
func (d *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("not scripted")
}
func (d *fakeDB) QueryRow(context.Context, string, ...any) database.Row {
	return errRow{}
}
func (d *fakeDB) Begin(context.Context) (database.Tx, error) { return fakeTx{db: d}, nil }
func (d *fakeDB) SQLDB() *sql.DB                           { return nil }

type fakeTx struct {
	db *fakeDB
}

func (t fakeTx) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	return t.db.next(query)
}
func (t fakeTx) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (t fakeTx) QueryRow(context.Context, string, ...any) database.Row      { return errRow{} }
func (t fakeTx) Commit(context.Context) error {
	t.db.commits++
	return nil
}
func (t fakeTx) Rollback(context.Context) error {
	t.db.rollbacks++
	return nil
}

type errRow struct{}

func (errRow) Scan(...any) error { return errors.New("not scripted") }

func TestCourseAssignmentRepository_InsertMissing_ReturnsOnlyInserted(t *testing.T) {
	db := &fakeDB{results: []execResult{{affected: 1}, {affected: 0}, {affected: 1}}}
	repo := NewPostgresCourseAssignmentRepository(db)

	emp := uuid.New()
	now := time.Now()
	items := []course.Assignment{
		course.NewAssignment(emp, uuid.New(), now, nil),
		course.NewAssignment(emp, uuid.New(), now, nil),
		course.NewAssignment(emp, uuid.New(), now, nil),
	}

	created, err := repo.InsertMissing(context.Background(), items)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(created) != 2 || created[0].ID != items[0].ID || created[1].ID != items[2].ID {
		t.Fatalf("expected rows 1 and 3 to be reported as created, got %+v", created)
	}
	if db.commits != 1 {
		t.Fatalf("expected a single commit, got %d", db.commits)
	}
	for _, q := range db.queries {
		if !strings.Contains(q, "ON CONFLICT (employee_id, course_id) DO NOTHING") {
			t.Fatalf("insert must be conflict-safe: %s", q)
		}
	}
}

func TestCourseAssignmentRepository_InsertMissing_RollsBackOnError(t *testing.T) {
	db := &fakeDB{results: []execResult{{affected: 1}, {err: errors.New("boom")}}}
	repo := NewPostgresCourseAssignmentRepository(db)

	emp := uuid.New()
	items := []course.Assignment{
		course.NewAssignment(emp, uuid.New(), time.Now(), nil),
		course.NewAssignment(emp, uuid.New(), time.Now(), nil),
	}
	if _, err := repo.InsertMissing(context.Background(), items); err == nil {
		t.Fatalf("expected error")
	}
	if db.commits != 0 || db.rollbacks == 0 {
		t.Fatalf("expected rollback without commit, got commits=%d rollbacks=%d", db.commits, db.rollbacks)
	}
}

func TestCourseAssignmentRepository_InsertMissing_Empty(t *testing.T) {
	db := &fakeDB{}
	created, err := NewPostgresCourseAssignmentRepository(db).InsertMissing(context.Background(), nil)
	if err != nil || len(created) != 0 || len(db.queries) != 0 {
		t.Fatalf("expected no-op, got %v %v %d", created, err, len(db.queries))
	}
}

func TestCourseAssignmentRepository_UpdateStatus_CompareAndSet(t *testing.T) {
	db := &fakeDB{results: []execResult{{affected: 0}}}
	repo := NewPostgresCourseAssignmentRepository(db)

	a := course.NewAssignment(uuid.New(), uuid.New(), time.Now(), nil)
	if err := a.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	err := repo.UpdateStatus(context.Background(), a, course.StatusNotStarted)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if !strings.Contains(db.queries[0], "AND status = $5") {
		t.Fatalf("update must guard on the previous status: %s", db.queries[0])
	}
}

func TestSkillRecordRepository_Create_Duplicate(t *testing.T) {
	db := &fakeDB{results: []execResult{{err: &pgconn.PgError{Code: "23505", ConstraintName: "uq_skill_records_employee_skill_interest"}}}}
	repo := NewPostgresSkillRecordRepository(db)

	r := rating.Advanced
	_, err := repo.Create(context.Background(), skill.Record{EmployeeID: uuid.New(), SkillID: uuid.New(), Rating: &r})
	if !errors.Is(err, domain.ErrDuplicateRecord) {
		t.Fatalf("expected ErrDuplicateRecord, got %v", err)
	}
}

func TestSkillRecordRepository_Update_NotFound(t *testing.T) {
	db := &fakeDB{results: []execResult{{affected: 0}}}
	_, err := NewPostgresSkillRecordRepository(db).Update(context.Background(), skill.Record{ID: uuid.New(), EmployeeID: uuid.New()})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRatingFromLevel(t *testing.T) {
	if r, err := ratingFromLevel(nil); r != nil || err != nil {
		t.Fatalf("expected nil rating for NULL, got %v %v", r, err)
	}
	three := 3
	r, err := ratingFromLevel(&three)
	if err != nil || r == nil || *r != rating.Intermediate {
		t.Fatalf("expected Intermediate, got %v %v", r, err)
	}
	bad := 7
	if _, err := ratingFromLevel(&bad); !errors.Is(err, domain.ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
	if levelFromRating(nil) != nil {
		t.Fatalf("expected NULL level for nil rating")
	}
}
