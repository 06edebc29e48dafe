package handler

import (
	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type GapHandler struct {
	reports usecase.GapReportUsecase
	export  usecase.GapExportUsecase
}

func NewGapHandler(reports usecase.GapReportUsecase, export usecase.GapExportUsecase) *GapHandler {
	return &GapHandler{reports: reports, export: export}
}

func (h *GapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/employees/:id/gaps")
	grp.Get("/", h.Report)
	grp.Get("/export", h.Export)
}

func (h *GapHandler) Report(c fiber.Ctx) error {
	employeeID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	band, err := parseBandQuery(c)
	if err != nil {
		return err
	}

	rep, err := h.reports.ComputeGapReport(c.Context(), employeeID, band)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewGapReportResponse(rep))
}

func (h *GapHandler) Export(c fiber.Ctx) error {
	employeeID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	band, err := parseBandQuery(c)
	if err != nil {
		return err
	}

	buf, filename, err := h.export.ExportGapReport(c.Context(), employeeID, band)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Attachment(c, xlsxContentType, filename, buf.Bytes())
}
