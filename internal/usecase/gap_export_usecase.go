package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"skill-matrix/internal/domain/employee"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var ErrExportFailed = errors.New("failed to generate gap report workbook")

const gapSheet = "Gap Report"

type GapExportUsecase interface {
	ExportGapReport(ctx context.Context, employeeID uuid.UUID, band *employee.Band) (*bytes.Buffer, string, error)
}

type GapExporter struct {
	reports GapReportUsecase
	log     *zap.Logger
}

func NewGapExportUsecase(reports GapReportUsecase, log *zap.Logger) *GapExporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &GapExporter{reports: reports, log: log}
}

// ExportGapReport renders the gap report as an .xlsx workbook and returns it
// with a suggested file name.
func (u *GapExporter) ExportGapReport(ctx context.Context, employeeID uuid.UUID, band *employee.Band) (*bytes.Buffer, string, error) {
	report, err := u.reports.ComputeGapReport(ctx, employeeID, band)
	if err != nil {
		return nil, "", err
	}

	buf, err := renderGapWorkbook(report)
	if err != nil {
		u.log.Error("render gap workbook failed", zap.String("employee_id", employeeID.String()), zap.Error(err))
		return nil, "", ErrExportFailed
	}
	return buf, fmt.Sprintf("gap-report_%s_%s.xlsx", employeeID, report.Band), nil
}

var gapHeaders = []string{"Skill", "Current", "Current Level", "Required", "Required Level", "Gap", "Required Skill", "Courses", "Uncovered"}

func renderGapWorkbook(report GapReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(gapSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	_ = f.SetColWidth(gapSheet, "A", "A", 28)
	_ = f.SetColWidth(gapSheet, "B", "I", 15)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	belowStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "#C00000", Bold: true},
	})
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("%s (%s) - band %s", report.Employee.Name, report.Employee.Email, report.Band)
	_ = f.SetCellValue(gapSheet, "A1", title)
	last := colName(len(gapHeaders) - 1)
	_ = f.MergeCell(gapSheet, "A1", last+"1")
	_ = f.SetCellStyle(gapSheet, "A1", "A1", headerStyle)

	for i, h := range gapHeaders {
		_ = f.SetCellValue(gapSheet, cell(colName(i), 2), h)
	}
	_ = f.SetCellStyle(gapSheet, "A2", last+"2", headerStyle)

	row := 3
	for _, it := range report.Items {
		current := "-"
		if it.Current != nil {
			current = it.Current.String()
		}
		values := []any{
			it.SkillName,
			current,
			it.CurrentLevel,
			it.Required.String(),
			it.RequiredLevel,
			it.Gap,
			yesNo(it.IsRequired),
			it.CourseCount,
			yesNo(it.Uncovered),
		}
		for i, v := range values {
			_ = f.SetCellValue(gapSheet, cell(colName(i), row), v)
		}
		if it.Below() {
			_ = f.SetCellStyle(gapSheet, cell("F", row), cell("F", row), belowStyle)
		}
		row++
	}

	row++
	s := report.Summary
	summary := [][2]any{
		{"Total", s.Total},
		{"Below", s.Below},
		{"Met", s.Met},
		{"Exceeded", s.Exceeded},
		{"Unrated", s.Unrated},
	}
	for _, kv := range summary {
		_ = f.SetCellValue(gapSheet, cell("A", row), kv[0])
		_ = f.SetCellValue(gapSheet, cell("B", row), kv[1])
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
