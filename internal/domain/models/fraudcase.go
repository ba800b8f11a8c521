package models

import (
	"strings"

	"github.com/google/uuid"
)

// FraudType classifies the primary fraud scheme alleged in a case
type FraudType string

const (
	FraudTypePonziScheme            FraudType = "Ponzi Scheme"
	FraudTypePyramidScheme          FraudType = "Pyramid Scheme"
	FraudTypeSecuritiesFraud        FraudType = "Securities Fraud"
	FraudTypeInvestmentFraud        FraudType = "Investment Fraud"
	FraudTypeWireFraud              FraudType = "Wire Fraud"
	FraudTypeMoneyLaundering        FraudType = "Money Laundering"
	FraudTypeAccountingFraud        FraudType = "Accounting Fraud"
	FraudTypeInsiderTrading         FraudType = "Insider Trading"
	FraudTypeMarketManipulation     FraudType = "Market Manipulation"
	FraudTypeShellCompanyFraud      FraudType = "Shell Company Fraud"
	FraudTypeUnregisteredSecurities FraudType = "Unregistered Securities"
	FraudTypeOfferingFraud          FraudType = "Offering Fraud"
	FraudTypeSanctions              FraudType = "OFAC Sanctions"
	FraudTypeTradeBasedFraud        FraudType = "Trade-Based Fraud"
	FraudTypeTaxEvasionVehicle      FraudType = "Tax Evasion Vehicle"
	FraudTypeCryptoFraud            FraudType = "Crypto Fraud"
)

func (t FraudType) String() string {
	return string(t)
}

// ParseFraudType parses a string into a FraudType, falling back to
// Securities Fraud for unknown values
func ParseFraudType(s string) FraudType {
	switch FraudType(strings.TrimSpace(s)) {
	case FraudTypePonziScheme, FraudTypePyramidScheme, FraudTypeSecuritiesFraud,
		FraudTypeInvestmentFraud, FraudTypeWireFraud, FraudTypeMoneyLaundering,
		FraudTypeAccountingFraud, FraudTypeInsiderTrading, FraudTypeMarketManipulation,
		FraudTypeShellCompanyFraud, FraudTypeUnregisteredSecurities, FraudTypeOfferingFraud,
		FraudTypeSanctions, FraudTypeTradeBasedFraud, FraudTypeTaxEvasionVehicle,
		FraudTypeCryptoFraud:
		return FraudType(strings.TrimSpace(s))
	default:
		return FraudTypeSecuritiesFraud
	}
}

// EntityKind distinguishes companies from individuals in extracted cases
type EntityKind string

const (
	EntityKindCompany    EntityKind = "company"
	EntityKindIndividual EntityKind = "individual"
)

// EntityRole describes the entity's role in the proceeding
type EntityRole string

const (
	EntityRoleDefendant       EntityRole = "defendant"
	EntityRoleReliefDefendant EntityRole = "relief_defendant"
	EntityRoleRelatedEntity   EntityRole = "related_entity"
)

// FraudCaseRecord is one row of the canonical fraud-case catalog
type FraudCaseRecord struct {
	ID            uuid.UUID         `json:"id" db:"id"`
	CompanyName   string            `json:"company_name" db:"company_name"`
	CaseDate      string            `json:"case_date" db:"case_date"` // ISO date or empty
	FraudType     FraudType         `json:"fraud_type" db:"fraud_type"`
	PenaltyAmount *float64          `json:"penalty_amount,omitempty" db:"penalty_amount"`
	Jurisdiction  string            `json:"jurisdiction" db:"jurisdiction"`
	Source        string            `json:"source" db:"source"`
	SourceURL     string            `json:"source_url" db:"source_url"`
	Description   string            `json:"description" db:"description"`
	IsSynthetic   bool              `json:"is_synthetic" db:"is_synthetic"`
	CaseNumber    string            `json:"case_number,omitempty" db:"case_number"`
	Identifiers   map[string]string `json:"identifiers,omitempty" db:"identifiers"`
}

// DedupKey returns the catalog deduplication key for a company name:
// surrounding whitespace trimmed, then case-folded. Punctuation and
// corporate suffixes are deliberately left intact, so "Acme Capital LLC"
// and "Acme Capital Inc." remain distinct entries.
func DedupKey(companyName string) string {
	return strings.ToLower(strings.TrimSpace(companyName))
}

// Columns is the fixed output column order of the catalog
var Columns = []string{
	"company_name",
	"case_date",
	"fraud_type",
	"penalty_amount",
	"jurisdiction",
	"source",
	"source_url",
	"description",
	"is_synthetic",
	"case_number",
	"identifiers",
}
