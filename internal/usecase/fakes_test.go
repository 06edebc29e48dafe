package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"skill-matrix/internal/domain"
	"skill-matrix/internal/domain/course"
	"skill-matrix/internal/domain/employee"
	"skill-matrix/internal/domain/gap"
	"skill-matrix/internal/domain/rating"
	"skill-matrix/internal/domain/skill"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

var errBoom = errors.New("boom")

func ratingPtr(r rating.Rating) *rating.Rating { return &r }

type fakeSkillRepo struct {
	items   []skill.Skill
	listErr error
	lists   int
}

func (f *fakeSkillRepo) List(ctx context.Context) ([]skill.Skill, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]skill.Skill(nil), f.items...), nil
}

func (f *fakeSkillRepo) FindByID(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	for _, s := range f.items {
		if s.ID == id {
			return s, nil
		}
	}
	return skill.Skill{}, repository.ErrNotFound
}

func (f *fakeSkillRepo) Create(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	for _, existing := range f.items {
		if strings.EqualFold(existing.Name, s.Name) {
			return skill.Skill{}, domain.ErrDuplicateRecord
		}
	}
	s.ID = uuid.New()
	f.items = append(f.items, s)
	return s, nil
}

type fakeEmployeeRepo struct {
	items   []employee.Employee
	listErr error
}

func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id uuid.UUID) (employee.Employee, error) {
	for _, e := range f.items {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, repository.ErrNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]employee.Employee(nil), f.items...), nil
}

type fakeRecordRepo struct {
	mu      sync.Mutex
	items   []skill.Record
	failFor map[uuid.UUID]error
}

func (f *fakeRecordRepo) FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]skill.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[employeeID]; err != nil {
		return nil, err
	}
	out := make([]skill.Record, 0)
	for _, r := range f.items {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) ListPossessed(ctx context.Context) ([]skill.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]skill.Record, 0)
	for _, r := range f.items {
		if !r.IsInterest {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) FindByID(ctx context.Context, employeeID, id uuid.UUID) (skill.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.items {
		if r.ID == id && r.EmployeeID == employeeID {
			return r, nil
		}
	}
	return skill.Record{}, repository.ErrNotFound
}

func (f *fakeRecordRepo) Create(ctx context.Context, rec skill.Record) (skill.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.items {
		if r.Key() == rec.Key() {
			return skill.Record{}, domain.ErrDuplicateRecord
		}
	}
	rec.ID = uuid.New()
	f.items = append(f.items, rec)
	return rec, nil
}

func (f *fakeRecordRepo) Update(ctx context.Context, rec skill.Record) (skill.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.items {
		if r.ID == rec.ID && r.EmployeeID == rec.EmployeeID {
			f.items[i] = rec
			return rec, nil
		}
	}
	return skill.Record{}, repository.ErrNotFound
}

type fakeRequirementRepo struct {
	byBand map[employee.Band][]gap.Requirement
}

func (f *fakeRequirementRepo) FindByBand(ctx context.Context, band employee.Band) ([]gap.Requirement, error) {
	return append([]gap.Requirement(nil), f.byBand[band]...), nil
}

type fakeCourseRepo struct {
	items []course.Course
}

func (f *fakeCourseRepo) List(ctx context.Context) ([]course.Course, error) {
	return append([]course.Course(nil), f.items...), nil
}

type fakeAssignmentRepo struct {
	mu        sync.Mutex
	items     []course.Assignment
	insertErr map[uuid.UUID]error
	conflict  bool
}

func (f *fakeAssignmentRepo) FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]course.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]course.Assignment, 0)
	for _, a := range f.items {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) FindByID(ctx context.Context, id uuid.UUID) (course.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.items {
		if a.ID == id {
			return a, nil
		}
	}
	return course.Assignment{}, repository.ErrNotFound
}

func (f *fakeAssignmentRepo) InsertMissing(ctx context.Context, items []course.Assignment) ([]course.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	created := make([]course.Assignment, 0, len(items))
	for _, a := range items {
		if err := f.insertErr[a.EmployeeID]; err != nil {
			return nil, err
		}
		dup := false
		for _, existing := range f.items {
			if existing.Key() == a.Key() {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		f.items = append(f.items, a)
		created = append(created, a)
	}
	return created, nil
}

func (f *fakeAssignmentRepo) UpdateStatus(ctx context.Context, a course.Assignment, from course.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conflict {
		return repository.ErrConflict
	}
	for i, existing := range f.items {
		if existing.ID == a.ID {
			if existing.Status != from {
				return repository.ErrConflict
			}
			f.items[i] = a
			return nil
		}
	}
	return repository.ErrConflict
}

type fakeCache struct {
	mu       sync.Mutex
	data     map[string][]byte
	locks    map[string]string
	deleted  []string
	released int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}, locks: map[string]string{}}
}

func (c *fakeCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *fakeCache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	c.deleted = append(c.deleted, pattern)
	return nil
}

func (c *fakeCache) SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.locks[key]; ok {
		return false, nil
	}
	c.locks[key] = value
	return true, nil
}

func (c *fakeCache) Release(ctx context.Context, key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locks[key] == value {
		delete(c.locks, key)
		c.released++
	}
	return nil
}

type fakeNotifier struct {
	calls     int
	employees []string
	created   int
	failures  int
}

func (n *fakeNotifier) NotifyAssignmentsCreated(employeeIDs []string, created, failures int) {
	n.calls++
	n.employees = employeeIDs
	n.created = created
	n.failures = failures
}
