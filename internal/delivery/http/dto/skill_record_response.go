package dto

import (
	"time"

	"skill-matrix/internal/domain/rating"
	"skill-matrix/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRecordResponse struct {
	ID              uuid.UUID      `json:"id"`
	EmployeeID      uuid.UUID      `json:"employee_id"`
	SkillID         uuid.UUID      `json:"skill_id"`
	SkillName       string         `json:"skill_name"`
	Rating          *rating.Rating `json:"rating"`
	Level           int            `json:"level"`
	YearsExperience *float64       `json:"years_experience"`
	IsInterest      bool           `json:"is_interest"`
	Notes           string         `json:"notes"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Rating fields take the labels Beginner..Expert; an empty string clears the
// rating.
type CreateSkillRecordRequest struct {
	SkillID         uuid.UUID `json:"skill_id"`
	Rating          string    `json:"rating"`
	YearsExperience *float64  `json:"years_experience"`
	IsInterest      bool      `json:"is_interest"`
	Notes           string    `json:"notes"`
}

type UpdateSkillRecordRequest struct {
	Rating          string   `json:"rating"`
	YearsExperience *float64 `json:"years_experience"`
	Notes           *string  `json:"notes"`
}

func NewSkillRecordResponse(r skill.Record) SkillRecordResponse {
	return SkillRecordResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		SkillID:         r.SkillID,
		SkillName:       r.SkillName,
		Rating:          r.Rating,
		Level:           r.Level(),
		YearsExperience: r.YearsExperience,
		IsInterest:      r.IsInterest,
		Notes:           r.Notes,
		UpdatedAt:       r.UpdatedAt,
	}
}

func NewSkillRecordResponses(items []skill.Record) []SkillRecordResponse {
	out := make([]SkillRecordResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewSkillRecordResponse(it))
	}
	return out
}
