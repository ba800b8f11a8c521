package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"fraudatlas/internal/domain/models"
	"fraudatlas/pkg/logger"
)

const sheetName = "Fraud Cases"

// XLSXExporter writes the catalog as a spreadsheet for analysts
type XLSXExporter struct {
	path   string
	logger *logger.Logger
}

// NewXLSXExporter creates an XLSX exporter targeting the given path
func NewXLSXExporter(path string, log *logger.Logger) *XLSXExporter {
	return &XLSXExporter{
		path:   path,
		logger: log.WithComponent("xlsx-export"),
	}
}

// Name identifies this exporter in logs and errors
func (e *XLSXExporter) Name() string {
	return "xlsx"
}

// Export writes the workbook, atomically replacing any previous one
func (e *XLSXExporter) Export(records []models.FraudCaseRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return fmt.Errorf("failed to look up sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, h := range models.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}

	for r, row := range Rows(records) {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	// Widen the text-heavy columns.
	_ = f.SetColWidth(sheetName, "A", "A", 36) // company_name
	_ = f.SetColWidth(sheetName, "B", "B", 12) // case_date
	_ = f.SetColWidth(sheetName, "C", "C", 22) // fraud_type
	_ = f.SetColWidth(sheetName, "G", "G", 48) // source_url
	_ = f.SetColWidth(sheetName, "H", "H", 60) // description

	dir := filepath.Dir(e.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".fraud-cases-*.xlsx")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := f.SaveAs(tmpPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	if err := os.Rename(tmpPath, e.path); err != nil {
		return fmt.Errorf("failed to publish xlsx: %w", err)
	}

	e.logger.Info().
		Str("path", e.path).
		Int("records", len(records)).
		Msg("exported catalog xlsx")

	return nil
}
