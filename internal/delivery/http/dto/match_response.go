package dto

import (
	"skill-matrix/internal/domain/employee"
	"skill-matrix/internal/domain/matching"
	"skill-matrix/internal/domain/rating"

	"github.com/google/uuid"
)

type CriterionRequest struct {
	SkillName string `json:"skill_name"`
	MinRating string `json:"min_rating"`
}

type MatchEmployeesRequest struct {
	Criteria  []CriterionRequest `json:"criteria"`
	Threshold *float64           `json:"threshold"`
}

type EmployeeResponse struct {
	ID         uuid.UUID     `json:"id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Department string        `json:"department"`
	Band       employee.Band `json:"band"`
}

type CriterionResponse struct {
	SkillName string         `json:"skill_name"`
	MinRating *rating.Rating `json:"min_rating"`
}

type MatchedCriterionResponse struct {
	Criterion CriterionResponse   `json:"criterion"`
	Record    SkillRecordResponse `json:"record"`
	Score     float64             `json:"score"`
}

type EmployeeMatchResponse struct {
	Employee        EmployeeResponse           `json:"employee"`
	MatchPercentage float64                    `json:"match_percentage"`
	MeanScore       float64                    `json:"mean_score"`
	Matched         []MatchedCriterionResponse `json:"matched"`
	Unmatched       []CriterionResponse        `json:"unmatched"`
}

func NewEmployeeResponse(e employee.Employee) EmployeeResponse {
	return EmployeeResponse{ID: e.ID, Name: e.Name, Email: e.Email, Department: e.Department, Band: e.Band}
}

func newCriterionResponse(c matching.Criterion) CriterionResponse {
	return CriterionResponse{SkillName: c.SkillName, MinRating: c.MinRating}
}

func NewEmployeeMatchResponses(items []matching.EmployeeMatch) []EmployeeMatchResponse {
	out := make([]EmployeeMatchResponse, 0, len(items))
	for _, it := range items {
		matched := make([]MatchedCriterionResponse, 0, len(it.Matched))
		for _, m := range it.Matched {
			matched = append(matched, MatchedCriterionResponse{
				Criterion: newCriterionResponse(m.Criterion),
				Record:    NewSkillRecordResponse(m.Record),
				Score:     m.Score,
			})
		}
		unmatched := make([]CriterionResponse, 0, len(it.Unmatched))
		for _, c := range it.Unmatched {
			unmatched = append(unmatched, newCriterionResponse(c))
		}
		out = append(out, EmployeeMatchResponse{
			Employee:        NewEmployeeResponse(it.Employee),
			MatchPercentage: it.MatchPercentage,
			MeanScore:       it.MeanScore,
			Matched:         matched,
			Unmatched:       unmatched,
		})
	}
	return out
}
