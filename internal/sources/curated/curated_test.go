package curated

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudatlas/internal/domain/models"
	"fraudatlas/internal/sources"
	"fraudatlas/pkg/logger"
)

func TestFetchEmbeddedDataset(t *testing.T) {
	conn := New(logger.NewDefault())

	batch, err := conn.Fetch(context.Background())
	require.NoError(t, err)

	assert.True(t, batch.Success)
	assert.Equal(t, "curated", batch.SourceSlug)
	assert.Equal(t, models.SourceCategoryCurated, batch.Category)
	assert.NotEmpty(t, batch.Records)
	assert.Equal(t, 0, batch.Skipped)

	byName := make(map[string]models.FraudCaseRecord)
	for _, rec := range batch.Records {
		byName[rec.CompanyName] = rec
	}

	ftx, ok := byName["FTX Trading Ltd."]
	require.True(t, ok, "embedded dataset should include FTX")
	assert.Equal(t, models.FraudTypeSecuritiesFraud, ftx.FraudType)
	assert.False(t, ftx.IsSynthetic)
	assert.NotEmpty(t, ftx.CaseDate)

	for _, rec := range batch.Records {
		assert.NotEmpty(t, rec.CompanyName)
		assert.NotEmpty(t, rec.Source)
	}
}

func TestFetchPathOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.json")
	content := `[
		{"company_name": "Test Corp", "case_date": "2024-01-01", "fraud_type": "Ponzi Scheme", "penalty_amount": 1000000, "jurisdiction": "us_ny", "source": "Unit Test"},
		{"company_name": "", "fraud_type": "Wire Fraud"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	conn := New(logger.NewDefault())
	require.NoError(t, conn.Configure(sources.ConnectorConfig{Enabled: true, Path: path}))

	batch, err := conn.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, batch.Records, 1)
	assert.Equal(t, 1, batch.Skipped)

	rec := batch.Records[0]
	assert.Equal(t, "Test Corp", rec.CompanyName)
	assert.Equal(t, models.FraudTypePonziScheme, rec.FraudType)
	require.NotNil(t, rec.PenaltyAmount)
	assert.Equal(t, 1_000_000.0, *rec.PenaltyAmount)
	assert.Equal(t, "Unit Test", rec.Source)
}

func TestFetchUnknownFraudTypeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.json")
	content := `[{"company_name": "Odd Corp", "fraud_type": "Quantum Fraud"}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	conn := New(logger.NewDefault())
	require.NoError(t, conn.Configure(sources.ConnectorConfig{Enabled: true, Path: path}))

	batch, err := conn.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, batch.Records, 1)
	assert.Equal(t, models.FraudTypeSecuritiesFraud, batch.Records[0].FraudType)
	// Source falls back to the connector name.
	assert.Equal(t, conn.Name(), batch.Records[0].Source)
}

func TestFetchMissingOverrideFileFails(t *testing.T) {
	conn := New(logger.NewDefault())
	require.NoError(t, conn.Configure(sources.ConnectorConfig{Enabled: true, Path: "/nonexistent/cases.json"}))

	_, err := conn.Fetch(context.Background())
	assert.Error(t, err)
}
