package handler

import (
	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AssignmentHandler struct {
	uc usecase.AssignmentUsecase
}

func NewAssignmentHandler(uc usecase.AssignmentUsecase) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

func (h *AssignmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/employees/:id/assignments", h.List)
	grp := r.Group("/assignments/:id")
	grp.Post("/start", h.Start)
	grp.Post("/complete", h.Complete)
}

func (h *AssignmentHandler) List(c fiber.Ctx) error {
	employeeID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.uc.ListAssignments(c.Context(), employeeID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssignmentResponses(items))
}

func (h *AssignmentHandler) Start(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	a, err := h.uc.StartAssignment(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssignmentResponse(a))
}

func (h *AssignmentHandler) Complete(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.CompleteAssignmentRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}

	a, err := h.uc.CompleteAssignment(c.Context(), id, req.CertificateRef)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssignmentResponse(a))
}
