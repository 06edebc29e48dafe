package handler

import (
	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AutoAssignHandler struct {
	uc usecase.AutoAssignUsecase
}

func NewAutoAssignHandler(uc usecase.AutoAssignUsecase) *AutoAssignHandler {
	return &AutoAssignHandler{uc: uc}
}

func (h *AutoAssignHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/employees/:id/auto-assign", h.Plan)
	r.Post("/employees/:id/auto-assign", h.Apply)
	r.Post("/auto-assign", h.ApplyAll)
}

func (h *AutoAssignHandler) Plan(c fiber.Ctx) error {
	employeeID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	plan, err := h.uc.PlanAutoAssignment(c.Context(), employeeID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAutoAssignPlanResponse(plan))
}

func (h *AutoAssignHandler) Apply(c fiber.Ctx) error {
	employeeID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	res, err := h.uc.ApplyAutoAssignment(c.Context(), employeeID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAutoAssignResultResponse(res))
}

func (h *AutoAssignHandler) ApplyAll(c fiber.Ctx) error {
	sum, err := h.uc.AutoAssignAll(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAutoAssignSummaryResponse(sum))
}
