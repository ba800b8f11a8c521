package models

import "time"

// SourceCategory represents the category of a fraud-case data source
type SourceCategory string

const (
	SourceCategoryCurated   SourceCategory = "curated"
	SourceCategoryDocuments SourceCategory = "documents"
	SourceCategorySanctions SourceCategory = "sanctions"
	SourceCategorySynthetic SourceCategory = "synthetic"
)

// SourceBatch is the ordered set of records one source produced
// during a rebuild, plus fetch bookkeeping
type SourceBatch struct {
	SourceSlug string            `json:"source_slug"`
	SourceName string            `json:"source_name"`
	Category   SourceCategory    `json:"category"`
	Records    []FraudCaseRecord `json:"-"`
	TotalInput int               `json:"total_input"` // documents/lines seen
	Skipped    int               `json:"skipped"`     // unreadable or filtered inputs
	FetchedAt  time.Time         `json:"fetched_at"`
	Duration   time.Duration     `json:"duration"`
	Success    bool              `json:"success"`
	Error      error             `json:"-"`
}

// ErrorString returns the error as a string
func (b *SourceBatch) ErrorString() string {
	if b.Error == nil {
		return ""
	}
	return b.Error.Error()
}
