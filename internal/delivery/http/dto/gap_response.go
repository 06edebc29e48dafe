package dto

import (
	"skill-matrix/internal/domain/employee"
	"skill-matrix/internal/domain/gap"
	"skill-matrix/internal/domain/rating"
	"skill-matrix/internal/usecase"

	"github.com/google/uuid"
)

type SkillGapResponse struct {
	SkillID       uuid.UUID      `json:"skill_id"`
	SkillName     string         `json:"skill_name"`
	CurrentRating *rating.Rating `json:"current_rating"`
	CurrentLevel  int            `json:"current_level"`
	Required      rating.Rating  `json:"required_rating"`
	RequiredLevel int            `json:"required_level"`
	Gap           int            `json:"gap"`
	IsRequired    bool           `json:"is_required"`
	CourseCount   int            `json:"course_count"`
	Uncovered     bool           `json:"uncovered"`
}

type GapSummaryResponse struct {
	Total    int `json:"total"`
	Below    int `json:"below"`
	Met      int `json:"met"`
	Exceeded int `json:"exceeded"`
	Unrated  int `json:"unrated"`
}

type GapReportResponse struct {
	Employee EmployeeResponse   `json:"employee"`
	Band     employee.Band      `json:"band"`
	Gaps     []SkillGapResponse `json:"gaps"`
	Summary  GapSummaryResponse `json:"summary"`
}

func newGapSummaryResponse(s gap.Summary) GapSummaryResponse {
	return GapSummaryResponse{Total: s.Total, Below: s.Below, Met: s.Met, Exceeded: s.Exceeded, Unrated: s.Unrated}
}

func NewGapReportResponse(r usecase.GapReport) GapReportResponse {
	gaps := make([]SkillGapResponse, 0, len(r.Items))
	for _, it := range r.Items {
		gaps = append(gaps, SkillGapResponse{
			SkillID:       it.SkillID,
			SkillName:     it.SkillName,
			CurrentRating: it.Current,
			CurrentLevel:  it.CurrentLevel,
			Required:      it.Required,
			RequiredLevel: it.RequiredLevel,
			Gap:           it.Gap,
			IsRequired:    it.IsRequired,
			CourseCount:   it.CourseCount,
			Uncovered:     it.Uncovered,
		})
	}
	return GapReportResponse{
		Employee: NewEmployeeResponse(r.Employee),
		Band:     r.Band,
		Gaps:     gaps,
		Summary:  newGapSummaryResponse(r.Summary),
	}
}
