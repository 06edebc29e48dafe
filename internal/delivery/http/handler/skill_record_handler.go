package handler

import (
	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/domain/rating"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillRecordHandler struct {
	uc usecase.SkillRecordUsecase
}

func NewSkillRecordHandler(uc usecase.SkillRecordUsecase) *SkillRecordHandler {
	return &SkillRecordHandler{uc: uc}
}

func (h *SkillRecordHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/employees/:id/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Put("/:record_id", h.Update)
}

func (h *SkillRecordHandler) List(c fiber.Ctx) error {
	employeeID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.uc.ListRecords(c.Context(), employeeID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillRecordResponses(items))
}

func (h *SkillRecordHandler) Create(c fiber.Ctx) error {
	employeeID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.CreateSkillRecordRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	r, err := rating.ParsePtr(req.Rating)
	if err != nil {
		return mapUsecaseError(err)
	}

	created, err := h.uc.CreateRecord(c.Context(), employeeID, usecase.CreateSkillRecordInput{
		SkillID:         req.SkillID,
		Rating:          r,
		YearsExperience: req.YearsExperience,
		IsInterest:      req.IsInterest,
		Notes:           req.Notes,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Skill record created successfully", dto.NewSkillRecordResponse(created))
}

func (h *SkillRecordHandler) Update(c fiber.Ctx) error {
	employeeID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	recordID, err := parseUUIDParam(c, "record_id")
	if err != nil {
		return err
	}

	var req dto.UpdateSkillRecordRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	r, err := rating.ParsePtr(req.Rating)
	if err != nil {
		return mapUsecaseError(err)
	}

	updated, err := h.uc.UpdateRecord(c.Context(), employeeID, recordID, usecase.UpdateSkillRecordInput{
		Rating:          r,
		YearsExperience: req.YearsExperience,
		Notes:           req.Notes,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillRecordResponse(updated))
}
