package handler

import (
	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/domain/matching"
	"skill-matrix/internal/domain/rating"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type EmployeeMatchHandler struct {
	uc usecase.EmployeeMatchUsecase
}

func NewEmployeeMatchHandler(uc usecase.EmployeeMatchUsecase) *EmployeeMatchHandler {
	return &EmployeeMatchHandler{uc: uc}
}

func (h *EmployeeMatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/employees/match", h.Match)
}

func (h *EmployeeMatchHandler) Match(c fiber.Ctx) error {
	var req dto.MatchEmployeesRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	criteria := make([]matching.Criterion, 0, len(req.Criteria))
	for _, cr := range req.Criteria {
		floor, err := rating.ParsePtr(cr.MinRating)
		if err != nil {
			return mapUsecaseError(err)
		}
		criteria = append(criteria, matching.Criterion{SkillName: cr.SkillName, MinRating: floor})
	}

	items, err := h.uc.MatchEmployees(c.Context(), criteria, req.Threshold)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEmployeeMatchResponses(items))
}
