// Package curated loads the hand-maintained list of known enforcement
// cases. The default dataset is embedded; a config path can point at a
// replacement file with the same shape.
package curated

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"fraudatlas/internal/domain/models"
	"fraudatlas/internal/sources"
	"fraudatlas/pkg/logger"
)

//go:embed known_cases.json
var defaultData []byte

// curatedCase is the JSON shape of one curated entry
type curatedCase struct {
	CompanyName   string            `json:"company_name"`
	CaseDate      string            `json:"case_date"`
	FraudType     string            `json:"fraud_type"`
	PenaltyAmount *float64          `json:"penalty_amount"`
	Jurisdiction  string            `json:"jurisdiction"`
	Source        string            `json:"source"`
	SourceURL     string            `json:"source_url"`
	Description   string            `json:"description"`
	CaseNumber    string            `json:"case_number,omitempty"`
	Identifiers   map[string]string `json:"identifiers,omitempty"`
}

// Connector serves curated enforcement cases
type Connector struct {
	*sources.BaseConnector
	logger *logger.Logger
}

// New creates the curated connector
func New(log *logger.Logger) *Connector {
	return &Connector{
		BaseConnector: sources.NewBaseConnector(
			"curated",
			"Curated Enforcement Cases",
			models.SourceCategoryCurated,
			1,
		),
		logger: log.WithSource("curated"),
	}
}

// Fetch loads and converts the curated dataset
func (c *Connector) Fetch(ctx context.Context) (*models.SourceBatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()

	data := defaultData
	if path := c.Config().Path; path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read curated cases file: %w", err)
		}
	}

	var cases []curatedCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("failed to parse curated cases: %w", err)
	}

	batch := &models.SourceBatch{
		SourceSlug: c.Slug(),
		SourceName: c.Name(),
		Category:   c.Category(),
		TotalInput: len(cases),
		FetchedAt:  start,
	}

	for _, cc := range cases {
		if cc.CompanyName == "" {
			batch.Skipped++
			continue
		}

		source := cc.Source
		if source == "" {
			source = c.Name()
		}

		batch.Records = append(batch.Records, models.FraudCaseRecord{
			ID:            uuid.New(),
			CompanyName:   cc.CompanyName,
			CaseDate:      cc.CaseDate,
			FraudType:     models.ParseFraudType(cc.FraudType),
			PenaltyAmount: cc.PenaltyAmount,
			Jurisdiction:  cc.Jurisdiction,
			Source:        source,
			SourceURL:     cc.SourceURL,
			Description:   cc.Description,
			IsSynthetic:   false,
			CaseNumber:    cc.CaseNumber,
			Identifiers:   cc.Identifiers,
		})
	}

	batch.Duration = time.Since(start)
	batch.Success = true

	c.logger.Info().
		Int("records", len(batch.Records)).
		Int("skipped", batch.Skipped).
		Msg("loaded curated cases")

	return batch, nil
}
