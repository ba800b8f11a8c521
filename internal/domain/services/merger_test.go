package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudatlas/internal/domain/models"
	"fraudatlas/pkg/logger"
)

func testRecord(company string) models.FraudCaseRecord {
	return models.FraudCaseRecord{
		ID:          uuid.New(),
		CompanyName: company,
		FraudType:   models.FraudTypeSecuritiesFraud,
		Source:      "test",
	}
}

func batchOf(slug string, companies ...string) *models.SourceBatch {
	batch := &models.SourceBatch{SourceSlug: slug, Success: true}
	for _, c := range companies {
		batch.Records = append(batch.Records, testRecord(c))
	}
	return batch
}

func TestMergeFirstSourceWins(t *testing.T) {
	merger := NewMerger(logger.NewDefault())
	dataset := models.NewCanonicalDataset()

	first := batchOf("curated", "Acme Corp")
	first.Records[0].Source = "A"
	stats, err := merger.Merge(dataset, first)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)

	second := batchOf("sanctions", "  ACME CORP ")
	second.Records[0].Source = "B"
	stats, err = merger.Merge(dataset, second)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Added)
	assert.Equal(t, 1, stats.Dropped)

	rec, ok := dataset.Get("Acme Corp")
	require.True(t, ok)
	assert.Equal(t, "A", rec.Source)
	assert.Equal(t, 1, dataset.Len())
}

func TestMergeDedupesWithinBatch(t *testing.T) {
	merger := NewMerger(logger.NewDefault())
	dataset := models.NewCanonicalDataset()

	stats, err := merger.Merge(dataset, batchOf("curated", "One LLC", "one llc", "Two Inc"))
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Incoming)
	assert.Equal(t, 2, stats.Added)
	assert.Equal(t, 1, stats.Dropped)
}

func TestMergeIsIdempotentPerKey(t *testing.T) {
	merger := NewMerger(logger.NewDefault())
	dataset := models.NewCanonicalDataset()

	_, err := merger.Merge(dataset, batchOf("curated", "Alpha", "Beta"))
	require.NoError(t, err)

	// Merging the same companies again changes nothing.
	stats, err := merger.Merge(dataset, batchOf("curated-again", "Alpha", "Beta"))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Added)
	assert.Equal(t, 2, stats.Dropped)
	assert.Equal(t, 2, dataset.Len())
}

func TestMergeIntoSealedDatasetFails(t *testing.T) {
	merger := NewMerger(logger.NewDefault())
	dataset := models.NewCanonicalDataset()
	dataset.Seal()

	_, err := merger.Merge(dataset, batchOf("curated", "Acme"))
	assert.ErrorIs(t, err, models.ErrDatasetSealed)
}

func TestMergePreservesInsertionOrder(t *testing.T) {
	merger := NewMerger(logger.NewDefault())
	dataset := models.NewCanonicalDataset()

	_, err := merger.Merge(dataset, batchOf("curated", "C", "A", "B"))
	require.NoError(t, err)

	records := dataset.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "C", records[0].CompanyName)
	assert.Equal(t, "A", records[1].CompanyName)
	assert.Equal(t, "B", records[2].CompanyName)
}
