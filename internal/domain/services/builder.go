package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"fraudatlas/internal/domain/models"
	"fraudatlas/pkg/logger"
)

// Provenance names the source a record came from
type Provenance struct {
	Source    string
	SourceURL string
}

// RecordBuilder converts extracted cases into catalog records
type RecordBuilder struct {
	logger *logger.Logger
}

// NewRecordBuilder creates a new record builder
func NewRecordBuilder(log *logger.Logger) *RecordBuilder {
	return &RecordBuilder{
		logger: log.WithComponent("builder"),
	}
}

// Build emits one record per company entity with a defendant or
// relief-defendant role. All records of a case share its case number,
// date, primary fraud type and source URL. Relief defendants carry no
// penalty amount: they received proceeds, they were not charged.
// A case with no company entities yields no records.
func (b *RecordBuilder) Build(c models.ExtractedCase, prov Provenance) []models.FraudCaseRecord {
	var records []models.FraudCaseRecord

	fraudType := models.FraudTypeSecuritiesFraud
	if len(c.FraudTypes) > 0 {
		fraudType = c.FraudTypes[0]
	}

	sourceURL := c.SourceURL
	if sourceURL == "" {
		sourceURL = prov.SourceURL
	}

	for _, entity := range c.Entities {
		if entity.Kind != models.EntityKindCompany {
			continue
		}
		if entity.Role != models.EntityRoleDefendant && entity.Role != models.EntityRoleReliefDefendant {
			continue
		}

		rec := models.FraudCaseRecord{
			ID:           uuid.New(),
			CompanyName:  strings.TrimSpace(entity.Name),
			CaseDate:     c.ComplaintDate,
			FraudType:    fraudType,
			Jurisdiction: entity.Jurisdiction,
			Source:       prov.Source,
			SourceURL:    sourceURL,
			Description:  b.describe(c),
			IsSynthetic:  false,
			CaseNumber:   c.CaseNumber,
			Identifiers:  entity.Identifiers,
		}

		if entity.Role == models.EntityRoleDefendant {
			rec.PenaltyAmount = c.AllegedAmount
		}

		records = append(records, rec)
	}

	return records
}

// describe builds the one-line case description from the charges
func (b *RecordBuilder) describe(c models.ExtractedCase) string {
	charges := make([]string, 0, len(c.FraudTypes))
	for _, ft := range c.FraudTypes {
		charges = append(charges, "Violation: "+ft.String())
	}
	if len(charges) > 2 {
		charges = charges[:2]
	}

	summary := "Securities violations"
	if len(charges) > 0 {
		summary = strings.Join(charges, ", ")
	}

	if c.CaseNumber == "" {
		return summary
	}
	return fmt.Sprintf("Case %s: %s", c.CaseNumber, summary)
}
