package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fraudatlas/internal/domain/models"
	"fraudatlas/pkg/logger"
)

func sampleRecords() []models.FraudCaseRecord {
	penalty := 4_000_000.0
	return []models.FraudCaseRecord{
		{
			CompanyName: "Undated Ventures LLC",
			FraudType:   models.FraudTypeWireFraud,
			Source:      "Curated",
		},
		{
			CompanyName:   "Acme Capital LLC",
			CaseDate:      "2024-03-05",
			FraudType:     models.FraudTypePonziScheme,
			PenaltyAmount: &penalty,
			Jurisdiction:  "us_ny",
			Source:        "SEC Complaint",
			SourceURL:     "data/complaints/acme.txt",
			Description:   "Case 1:24-cv-00416: Violation: Ponzi Scheme",
			CaseNumber:    "1:24-cv-00416",
			Identifiers:   map[string]string{"cik": "0001234567", "ein": "12-3456789"},
		},
		{
			CompanyName: "Beta Partners Inc.",
			CaseDate:    "2025-01-10",
			FraudType:   models.FraudTypeSanctions,
			Source:      "OFAC SDN",
			IsSynthetic: false,
		},
	}
}

func TestRowsSortNewestFirstUndatedLast(t *testing.T) {
	rows := Rows(sampleRecords())
	require.Len(t, rows, 3)

	assert.Equal(t, "Beta Partners Inc.", rows[0][0])
	assert.Equal(t, "Acme Capital LLC", rows[1][0])
	assert.Equal(t, "Undated Ventures LLC", rows[2][0])
}

func TestRowsStableForEqualDates(t *testing.T) {
	records := []models.FraudCaseRecord{
		{CompanyName: "First Corp", CaseDate: "2024-06-01"},
		{CompanyName: "Second Corp", CaseDate: "2024-06-01"},
		{CompanyName: "Third Corp", CaseDate: "2024-06-01"},
	}

	rows := Rows(records)
	require.Len(t, rows, 3)
	assert.Equal(t, "First Corp", rows[0][0])
	assert.Equal(t, "Second Corp", rows[1][0])
	assert.Equal(t, "Third Corp", rows[2][0])
}

func TestFormatRecord(t *testing.T) {
	rows := Rows(sampleRecords())
	acme := rows[1]
	require.Len(t, acme, len(models.Columns))

	assert.Equal(t, "2024-03-05", acme[1])
	assert.Equal(t, "Ponzi Scheme", acme[2])
	assert.Equal(t, "4000000", acme[3])
	assert.Equal(t, "us_ny", acme[4])
	assert.Equal(t, "false", acme[8])
	assert.Equal(t, "1:24-cv-00416", acme[9])
	assert.JSONEq(t, `{"cik": "0001234567", "ein": "12-3456789"}`, acme[10])

	undated := rows[2]
	assert.Equal(t, "", undated[1])
	assert.Equal(t, "", undated[3])  // no penalty
	assert.Equal(t, "", undated[10]) // no identifiers
}

func TestCSVExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "fraud_cases.csv")
	exp := NewCSVExporter(path, logger.NewDefault())
	assert.Equal(t, "csv", exp.Name())

	require.NoError(t, exp.Export(sampleRecords()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, models.Columns, rows[0])
	assert.Equal(t, "Beta Partners Inc.", rows[1][0])
}

func TestCSVExportReplacesPreviousArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fraud_cases.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	exp := NewCSVExporter(path, logger.NewDefault())
	require.NoError(t, exp.Export(nil))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
	assert.Equal(t, models.Columns, rows[0])

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestXLSXExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fraud_cases.xlsx")
	exp := NewXLSXExporter(path, logger.NewDefault())
	assert.Equal(t, "xlsx", exp.Name())

	require.NoError(t, exp.Export(sampleRecords()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 4)
	assert.Equal(t, models.Columns, rows[0][:len(models.Columns)])
	assert.Equal(t, "Beta Partners Inc.", rows[1][0])
	assert.Equal(t, "Acme Capital LLC", rows[2][0])
}
