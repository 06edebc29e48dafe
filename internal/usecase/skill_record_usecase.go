package usecase

import (
	"context"
	"errors"
	"math"
	"strings"

	"skill-matrix/internal/domain"
	"skill-matrix/internal/domain/rating"
	"skill-matrix/internal/domain/skill"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateSkillRecordInput struct {
	SkillID         uuid.UUID
	Rating          *rating.Rating
	YearsExperience *float64
	IsInterest      bool
	Notes           string
}

type UpdateSkillRecordInput struct {
	Rating          *rating.Rating
	YearsExperience *float64
	Notes           *string
}

type SkillRecordUsecase interface {
	ListRecords(ctx context.Context, employeeID uuid.UUID) ([]skill.Record, error)
	CreateRecord(ctx context.Context, employeeID uuid.UUID, in CreateSkillRecordInput) (skill.Record, error)
	UpdateRecord(ctx context.Context, employeeID, recordID uuid.UUID, in UpdateSkillRecordInput) (skill.Record, error)
}

type SkillRecords struct {
	employees repository.EmployeeRepository
	skills    repository.SkillRepository
	records   repository.SkillRecordRepository
	log       *zap.Logger
}

func NewSkillRecordUsecase(
	employees repository.EmployeeRepository,
	skills repository.SkillRepository,
	records repository.SkillRecordRepository,
	log *zap.Logger,
) *SkillRecords {
	if log == nil {
		log = zap.NewNop()
	}
	return &SkillRecords{employees: employees, skills: skills, records: records, log: log}
}

func validateRecordFields(r *rating.Rating, years *float64) error {
	if r != nil {
		if _, err := rating.LevelOf(*r); err != nil {
			return err
		}
	}
	if years != nil && (math.IsNaN(*years) || *years < 0) {
		return ErrInvalidInput
	}
	return nil
}

func (u *SkillRecords) ensureEmployee(ctx context.Context, id uuid.UUID) error {
	if _, err := u.employees.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		u.log.Error("load employee failed", zap.String("employee_id", id.String()), zap.Error(err))
		return ErrInternal
	}
	return nil
}

func (u *SkillRecords) ListRecords(ctx context.Context, employeeID uuid.UUID) ([]skill.Record, error) {
	if err := u.ensureEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	items, err := u.records.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		u.log.Error("list skill records failed", zap.String("employee_id", employeeID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

// CreateRecord adds a possessed or interest record. A second record with the
// same (skill, is_interest) for the employee fails with
// domain.ErrDuplicateRecord.
func (u *SkillRecords) CreateRecord(ctx context.Context, employeeID uuid.UUID, in CreateSkillRecordInput) (skill.Record, error) {
	if in.SkillID == uuid.Nil {
		return skill.Record{}, ErrInvalidInput
	}
	if err := validateRecordFields(in.Rating, in.YearsExperience); err != nil {
		return skill.Record{}, err
	}
	if err := u.ensureEmployee(ctx, employeeID); err != nil {
		return skill.Record{}, err
	}
	if _, err := u.skills.FindByID(ctx, in.SkillID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return skill.Record{}, ErrSkillNotFound
		}
		u.log.Error("load skill failed", zap.String("skill_id", in.SkillID.String()), zap.Error(err))
		return skill.Record{}, ErrInternal
	}

	created, err := u.records.Create(ctx, skill.Record{
		EmployeeID:      employeeID,
		SkillID:         in.SkillID,
		Rating:          in.Rating,
		YearsExperience: in.YearsExperience,
		IsInterest:      in.IsInterest,
		Notes:           strings.TrimSpace(in.Notes),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateRecord) {
			return skill.Record{}, err
		}
		u.log.Error("create skill record failed", zap.String("employee_id", employeeID.String()), zap.Error(err))
		return skill.Record{}, ErrInternal
	}
	return created, nil
}

// UpdateRecord replaces the rating and years of experience. Notes are kept
// unless given.
func (u *SkillRecords) UpdateRecord(ctx context.Context, employeeID, recordID uuid.UUID, in UpdateSkillRecordInput) (skill.Record, error) {
	if err := validateRecordFields(in.Rating, in.YearsExperience); err != nil {
		return skill.Record{}, err
	}

	rec, err := u.records.FindByID(ctx, employeeID, recordID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return skill.Record{}, ErrSkillRecordNotFound
		}
		u.log.Error("load skill record failed", zap.String("record_id", recordID.String()), zap.Error(err))
		return skill.Record{}, ErrInternal
	}

	rec.Rating = in.Rating
	rec.YearsExperience = in.YearsExperience
	if in.Notes != nil {
		rec.Notes = strings.TrimSpace(*in.Notes)
	}

	updated, err := u.records.Update(ctx, rec)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return skill.Record{}, ErrSkillRecordNotFound
		}
		u.log.Error("update skill record failed", zap.String("record_id", recordID.String()), zap.Error(err))
		return skill.Record{}, ErrInternal
	}
	return updated, nil
}
