package services

import (
	"errors"

	"fraudatlas/internal/domain/models"
	"fraudatlas/pkg/logger"
)

// MergeStats summarizes one source batch's merge into the dataset
type MergeStats struct {
	SourceSlug string `json:"source_slug"`
	Incoming   int    `json:"incoming"`
	Added      int    `json:"added"`
	Dropped    int    `json:"dropped"` // lost the dedup collision to an earlier source
}

// Merger folds ordered source batches into a canonical dataset.
// It is the dataset's single writer: batches must arrive in source
// priority order, and within a batch record order decides which of two
// colliding records survives (the first one).
type Merger struct {
	logger *logger.Logger
}

// NewMerger creates a new merger
func NewMerger(log *logger.Logger) *Merger {
	return &Merger{
		logger: log.WithComponent("merger"),
	}
}

// Merge appends a batch's records to the dataset in order, dropping
// and counting records whose company is already present. Merging into
// a sealed dataset is a programming error and fails outright.
func (m *Merger) Merge(dataset *models.CanonicalDataset, batch *models.SourceBatch) (MergeStats, error) {
	stats := MergeStats{
		SourceSlug: batch.SourceSlug,
		Incoming:   len(batch.Records),
	}

	log := m.logger.WithSource(batch.SourceSlug)

	for _, rec := range batch.Records {
		err := dataset.Append(rec)
		switch {
		case err == nil:
			stats.Added++
		case errors.Is(err, models.ErrDuplicateCompany):
			stats.Dropped++
			log.Debug().
				Str("company", rec.CompanyName).
				Msg("dropped duplicate company")
		default:
			return stats, err
		}
	}

	log.Info().
		Int("incoming", stats.Incoming).
		Int("added", stats.Added).
		Int("dropped", stats.Dropped).
		Msg("merged source batch")

	return stats, nil
}
