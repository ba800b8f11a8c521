package extract

import (
	"strconv"
	"strings"
	"time"

	"fraudatlas/internal/domain/models"
	"fraudatlas/pkg/logger"
)

// DefaultMaxEntities caps how many company/individual entities a single
// document can contribute. Long complaints repeat defendant names in
// captions, footers and exhibits; the cap keeps pathological documents
// from flooding the catalog.
const DefaultMaxEntities = 10

// Extractor turns raw complaint text into a structured case. It is
// pure: malformed or empty input yields an empty case, never an error.
type Extractor struct {
	maxEntities int
	logger      *logger.Logger
}

// NewExtractor creates an extractor. maxEntities <= 0 selects
// DefaultMaxEntities.
func NewExtractor(maxEntities int, log *logger.Logger) *Extractor {
	if maxEntities <= 0 {
		maxEntities = DefaultMaxEntities
	}
	return &Extractor{
		maxEntities: maxEntities,
		logger:      log.WithComponent("extractor"),
	}
}

// Extract runs every rule table over the document text and assembles
// the structured case. Scalar fields take the first match; entity and
// fraud-language tables accumulate across all rules.
func (e *Extractor) Extract(doc models.RawDocument) models.ExtractedCase {
	text := doc.Text

	c := models.ExtractedCase{
		SourceURL: doc.SourceURL,
	}

	if num, ok := matchFirst(caseNumberRules, text); ok {
		c.CaseNumber = num
	}
	if raw, ok := matchFirst(complaintDateRules, text); ok {
		c.ComplaintDate = normalizeDate(raw)
	}
	if court, ok := matchFirst(courtRules, text); ok {
		c.Court = court
	}

	// Document-level attributes shared by every company entity.
	jurisdiction := ""
	if j, ok := matchFirst(jurisdictionRules, text); ok {
		jurisdiction = NormalizeJurisdiction(j)
	}

	identifiers := make(map[string]string)
	if v, ok := matchFirst(cikRules, text); ok {
		identifiers["cik"] = v
	}
	if v, ok := matchFirst(einRules, text); ok {
		identifiers["ein"] = v
	}
	if v, ok := matchFirst(secFileRules, text); ok {
		identifiers["sec_file"] = v
	}

	// Relief defendants first, so a name matched by both tables keeps
	// the more specific role.
	reliefNames := make(map[string]struct{})
	relief := matchAll(reliefDefendantRules, text)
	if len(relief) > e.maxEntities {
		relief = relief[:e.maxEntities]
	}
	for _, name := range relief {
		reliefNames[models.DedupKey(name)] = struct{}{}
		c.Entities = append(c.Entities, models.ExtractedEntity{
			Name:         name,
			Kind:         models.EntityKindCompany,
			Role:         models.EntityRoleReliefDefendant,
			Jurisdiction: jurisdiction,
			Identifiers:  cloneIdentifiers(identifiers),
		})
	}

	companies := matchAll(companyRules, text)
	if len(companies) > e.maxEntities {
		companies = companies[:e.maxEntities]
	}
	for _, name := range companies {
		if _, ok := reliefNames[models.DedupKey(name)]; ok {
			continue
		}
		c.Entities = append(c.Entities, models.ExtractedEntity{
			Name:         name,
			Kind:         models.EntityKindCompany,
			Role:         models.EntityRoleDefendant,
			Jurisdiction: jurisdiction,
			Identifiers:  cloneIdentifiers(identifiers),
		})
	}

	individuals := matchAll(individualRules, text)
	if len(individuals) > e.maxEntities {
		individuals = individuals[:e.maxEntities]
	}
	crd, hasCRD := matchFirst(crdRules, text)
	for _, name := range individuals {
		ent := models.ExtractedEntity{
			Name: name,
			Kind: models.EntityKindIndividual,
			Role: models.EntityRoleDefendant,
		}
		if hasCRD {
			ent.Identifiers = map[string]string{"crd": crd}
		}
		c.Entities = append(c.Entities, ent)
	}

	c.Indicators = matchAll(fraudIndicatorRules, text)
	c.FraudTypes = Classify(c.Indicators)

	if amount, ok := MaxAmount(matchAll(amountRules, text)); ok {
		c.AllegedAmount = &amount
	}

	if v, ok := matchFirst(victimCountRules, text); ok {
		if n, err := strconv.Atoi(strings.ReplaceAll(v, ",", "")); err == nil {
			c.VictimCount = n
		}
	}

	c.Statutes = matchAll(statuteRules, text)

	e.logger.Debug().
		Str("document", doc.Name).
		Str("case_number", c.CaseNumber).
		Int("entities", len(c.Entities)).
		Msg("extracted case")

	return c
}

// normalizeDate converts "January 15, 2025" style dates to ISO form.
// Unparseable dates are returned as captured.
func normalizeDate(raw string) string {
	clean := strings.ReplaceAll(raw, ",", "")
	t, err := time.Parse("January 2 2006", clean)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02")
}

func cloneIdentifiers(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
