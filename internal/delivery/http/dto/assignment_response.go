package dto

import (
	"time"

	"skill-matrix/internal/domain/assignment"
	"skill-matrix/internal/domain/course"
	"skill-matrix/internal/usecase"

	"github.com/google/uuid"
)

type CourseResponse struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	SkillID   *uuid.UUID `json:"skill_id"`
	URL       string     `json:"url,omitempty"`
	Mandatory bool       `json:"mandatory"`
}

type AssignmentResponse struct {
	ID             uuid.UUID     `json:"id"`
	EmployeeID     uuid.UUID     `json:"employee_id"`
	CourseID       uuid.UUID     `json:"course_id"`
	Status         course.Status `json:"status"`
	AssignedAt     time.Time     `json:"assigned_at"`
	DueDate        *time.Time    `json:"due_date"`
	CompletedAt    *time.Time    `json:"completed_at"`
	CertificateRef string        `json:"certificate_ref,omitempty"`
}

type CompleteAssignmentRequest struct {
	CertificateRef string `json:"certificate_ref"`
}

type PlannedCourseResponse struct {
	SkillID   uuid.UUID      `json:"skill_id"`
	SkillName string         `json:"skill_name"`
	Gap       int            `json:"gap"`
	Course    CourseResponse `json:"course"`
}

type UncoveredSkillResponse struct {
	SkillID   uuid.UUID `json:"skill_id"`
	SkillName string    `json:"skill_name"`
	Gap       int       `json:"gap"`
}

type AutoAssignPlanResponse struct {
	EmployeeID      uuid.UUID                `json:"employee_id"`
	ToCreate        []PlannedCourseResponse  `json:"to_create"`
	UncoveredSkills []UncoveredSkillResponse `json:"uncovered_skills"`
}

type AutoAssignResultResponse struct {
	EmployeeID      uuid.UUID                `json:"employee_id"`
	Created         []AssignmentResponse     `json:"created"`
	UncoveredSkills []UncoveredSkillResponse `json:"uncovered_skills"`
}

type AutoAssignFailureResponse struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	Error      string    `json:"error"`
}

type AutoAssignSummaryResponse struct {
	Employees int                         `json:"employees"`
	Created   int                         `json:"created"`
	Results   []AutoAssignResultResponse  `json:"results"`
	Failures  []AutoAssignFailureResponse `json:"failures"`
}

func NewCourseResponse(c course.Course) CourseResponse {
	return CourseResponse{ID: c.ID, Title: c.Title, SkillID: c.SkillID, URL: c.URL, Mandatory: c.Mandatory}
}

func NewAssignmentResponse(a course.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		CourseID:       a.CourseID,
		Status:         a.Status,
		AssignedAt:     a.AssignedAt,
		DueDate:        a.DueDate,
		CompletedAt:    a.CompletedAt,
		CertificateRef: a.CertificateRef,
	}
}

func NewAssignmentResponses(items []course.Assignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewAssignmentResponse(it))
	}
	return out
}

func newUncoveredResponses(items []assignment.UncoveredSkill) []UncoveredSkillResponse {
	out := make([]UncoveredSkillResponse, 0, len(items))
	for _, it := range items {
		out = append(out, UncoveredSkillResponse{SkillID: it.SkillID, SkillName: it.SkillName, Gap: it.Gap})
	}
	return out
}

func NewAutoAssignPlanResponse(p assignment.Plan) AutoAssignPlanResponse {
	items := make([]PlannedCourseResponse, 0, len(p.ToCreate))
	for _, it := range p.ToCreate {
		items = append(items, PlannedCourseResponse{
			SkillID:   it.SkillID,
			SkillName: it.SkillName,
			Gap:       it.Gap,
			Course:    NewCourseResponse(it.Course),
		})
	}
	return AutoAssignPlanResponse{EmployeeID: p.EmployeeID, ToCreate: items, UncoveredSkills: newUncoveredResponses(p.Uncovered)}
}

func NewAutoAssignResultResponse(r usecase.AutoAssignResult) AutoAssignResultResponse {
	return AutoAssignResultResponse{
		EmployeeID:      r.EmployeeID,
		Created:         NewAssignmentResponses(r.Created),
		UncoveredSkills: newUncoveredResponses(r.Uncovered),
	}
}

// NewAutoAssignSummaryResponse reports failures by their public message;
// causes were logged when they happened.
func NewAutoAssignSummaryResponse(s usecase.AutoAssignSummary) AutoAssignSummaryResponse {
	results := make([]AutoAssignResultResponse, 0, len(s.Results))
	for _, r := range s.Results {
		results = append(results, NewAutoAssignResultResponse(r))
	}
	failures := make([]AutoAssignFailureResponse, 0, len(s.Failures))
	for _, f := range s.Failures {
		failures = append(failures, AutoAssignFailureResponse{EmployeeID: f.EmployeeID, Error: f.Err.Error()})
	}
	return AutoAssignSummaryResponse{Employees: s.Employees, Created: s.Created, Results: results, Failures: failures}
}
