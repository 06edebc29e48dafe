package dto

import (
	"skill-matrix/internal/domain/skill"
	"skill-matrix/internal/search"

	"github.com/google/uuid"
)

type SkillResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
}

type SkillMatchResponse struct {
	Skill SkillResponse `json:"skill"`
	Score float64       `json:"score"`
}

type CreateSkillRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func NewSkillResponse(s skill.Skill) SkillResponse {
	return SkillResponse{ID: s.ID, Name: s.Name, Description: s.Description, Category: s.Category}
}

func NewSkillResponses(items []skill.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewSkillResponse(it))
	}
	return out
}

func NewSkillMatchResponses(items []search.SkillMatch) []SkillMatchResponse {
	out := make([]SkillMatchResponse, 0, len(items))
	for _, it := range items {
		out = append(out, SkillMatchResponse{Skill: NewSkillResponse(it.Skill), Score: it.Score})
	}
	return out
}
