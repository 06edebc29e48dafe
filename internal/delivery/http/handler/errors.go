package handler

import (
	"errors"

	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/domain"
	"skill-matrix/internal/domain/employee"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrInvalidRating):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid rating", nil, err)
	case errors.Is(err, domain.ErrInvalidQuery):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid query", nil, err)
	case errors.Is(err, employee.ErrInvalidBand):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid band", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrSkillRecordNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill record not found", nil, err)
	case errors.Is(err, usecase.ErrAssignmentNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Assignment not found", nil, err)
	case errors.Is(err, usecase.ErrSkillAlreadyExists):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already exists", nil, err)
	case errors.Is(err, domain.ErrDuplicateRecord):
		return middleware.NewAppError(fiber.StatusConflict, "Duplicate record", nil, err)
	case errors.Is(err, domain.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Invalid status transition", nil, err)
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return middleware.NewAppError(fiber.StatusConflict, "Assignment was changed concurrently", nil, err)
	case errors.Is(err, usecase.ErrAutoAssignInProgress):
		return middleware.NewAppError(fiber.StatusConflict, "Auto-assignment already in progress", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func parseUUIDParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

func parseBandQuery(c fiber.Ctx) (*employee.Band, error) {
	raw := c.Query("band")
	if raw == "" {
		return nil, nil
	}
	b, err := employee.ParseBand(raw)
	if err != nil {
		return nil, mapUsecaseError(err)
	}
	return &b, nil
}
