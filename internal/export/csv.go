package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"fraudatlas/internal/domain/models"
	"fraudatlas/pkg/logger"
)

// CSVExporter writes the catalog as the canonical CSV artifact
type CSVExporter struct {
	path   string
	logger *logger.Logger
}

// NewCSVExporter creates a CSV exporter targeting the given path
func NewCSVExporter(path string, log *logger.Logger) *CSVExporter {
	return &CSVExporter{
		path:   path,
		logger: log.WithComponent("csv-export"),
	}
}

// Name identifies this exporter in logs and errors
func (e *CSVExporter) Name() string {
	return "csv"
}

// Export writes all records plus the header row, atomically replacing
// any previous artifact at the target path
func (e *CSVExporter) Export(records []models.FraudCaseRecord) error {
	dir := filepath.Dir(e.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".fraud-cases-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	w := csv.NewWriter(tmp)
	if err := w.Write(models.Columns); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range Rows(records) {
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, e.path); err != nil {
		return fmt.Errorf("failed to publish csv: %w", err)
	}

	e.logger.Info().
		Str("path", e.path).
		Int("records", len(records)).
		Msg("exported catalog csv")

	return nil
}
