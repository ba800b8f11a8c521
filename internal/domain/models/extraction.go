package models

// RawDocument is one free-text complaint document prior to extraction
type RawDocument struct {
	Name      string `json:"name"` // file name or feed identifier
	Text      string `json:"text"`
	SourceURL string `json:"source_url,omitempty"`
}

// ExtractedEntity is a company or individual pulled out of a document
type ExtractedEntity struct {
	Name         string            `json:"name"`
	Kind         EntityKind        `json:"kind"`
	Role         EntityRole        `json:"role"`
	Jurisdiction string            `json:"jurisdiction,omitempty"` // canonical code, empty if unknown
	Identifiers  map[string]string `json:"identifiers,omitempty"`  // cik, ein, crd, sec_file, ...
}

// ExtractedCase is the structured result of running the pattern
// extractor over one document
type ExtractedCase struct {
	CaseNumber    string            `json:"case_number,omitempty"`
	ComplaintDate string            `json:"complaint_date,omitempty"` // ISO date or raw text if unparseable
	Court         string            `json:"court,omitempty"`
	Entities      []ExtractedEntity `json:"entities,omitempty"`
	FraudTypes    []FraudType       `json:"fraud_types"` // ordered, first is primary
	AllegedAmount *float64          `json:"alleged_amount,omitempty"`
	VictimCount   int               `json:"victim_count,omitempty"` // 0 = unknown
	Statutes      []string          `json:"statutes,omitempty"`
	Indicators    []string          `json:"indicators,omitempty"` // raw matched fraud-language snippets
	SourceURL     string            `json:"source_url,omitempty"`
}

// Companies returns the company entities in extraction order
func (c *ExtractedCase) Companies() []ExtractedEntity {
	var out []ExtractedEntity
	for _, e := range c.Entities {
		if e.Kind == EntityKindCompany {
			out = append(out, e)
		}
	}
	return out
}
