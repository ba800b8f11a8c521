// Package sanctions parses a pre-downloaded OFAC feed in FollowTheMoney
// (FTM) JSON-lines format into catalog records. Company-like entities
// become records; persons, vessels and articles are skipped.
package sanctions

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"fraudatlas/internal/domain/models"
	"fraudatlas/internal/sources"
	"fraudatlas/pkg/logger"
)

const defaultSourceURL = "https://www.opensanctions.org/datasets/us_ofac_press_releases/"

// identifierProps are the FTM properties copied into a record's
// identifier map, first value each
var identifierProps = []string{
	"registrationNumber",
	"taxNumber",
	"innCode",
	"imoNumber",
	"callSign",
	"mmsi",
	"passportNumber",
	"idNumber",
}

// schemaKinds maps FTM schemas to the entity kinds we keep
var schemaKinds = map[string]string{
	"Company":      "company",
	"Organization": "organization",
	"LegalEntity":  "company",
}

// ftmEntity is one line of the feed
type ftmEntity struct {
	Schema     string         `json:"schema"`
	Properties map[string]any `json:"properties"`
}

// Connector converts the sanctions feed into catalog records
type Connector struct {
	*sources.BaseConnector
	logger *logger.Logger
}

// New creates the sanctions connector
func New(log *logger.Logger) *Connector {
	return &Connector{
		BaseConnector: sources.NewBaseConnector(
			"sanctions",
			"OpenSanctions/OFAC",
			models.SourceCategorySanctions,
			3,
		),
		logger: log.WithSource("sanctions"),
	}
}

// Fetch parses the configured feed file line by line. Malformed lines
// and non-company entities are counted as skipped, never fatal.
func (c *Connector) Fetch(ctx context.Context) (*models.SourceBatch, error) {
	path := c.Config().Path
	if path == "" {
		return nil, fmt.Errorf("sanctions connector has no feed file configured")
	}

	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sanctions feed: %w", err)
	}
	defer f.Close()

	batch := &models.SourceBatch{
		SourceSlug: c.Slug(),
		SourceName: c.Name(),
		Category:   c.Category(),
		FetchedAt:  start,
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		batch.TotalInput++

		var entity ftmEntity
		if err := json.Unmarshal([]byte(line), &entity); err != nil {
			batch.Skipped++
			continue
		}

		rec, ok := c.toRecord(entity)
		if !ok {
			batch.Skipped++
			continue
		}
		batch.Records = append(batch.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sanctions feed: %w", err)
	}

	batch.Duration = time.Since(start)
	batch.Success = true

	c.logger.Info().
		Int("lines", batch.TotalInput).
		Int("records", len(batch.Records)).
		Int("skipped", batch.Skipped).
		Msg("parsed sanctions feed")

	return batch, nil
}

// toRecord converts one FTM entity to a catalog record
func (c *Connector) toRecord(entity ftmEntity) (models.FraudCaseRecord, bool) {
	kind, ok := schemaKinds[entity.Schema]
	if !ok {
		return models.FraudCaseRecord{}, false
	}

	names := stringValues(entity.Properties, "name")
	if len(names) == 0 {
		return models.FraudCaseRecord{}, false
	}

	jurisdiction := firstString(entity.Properties, "country")

	identifiers := make(map[string]string)
	for _, prop := range identifierProps {
		if v := firstString(entity.Properties, prop); v != "" {
			identifiers[prop] = v
		}
	}
	if len(identifiers) == 0 {
		identifiers = nil
	}

	// Listing date; modification date when never explicitly listed.
	caseDate := firstString(entity.Properties, "createdAt")
	if caseDate == "" {
		caseDate = firstString(entity.Properties, "modifiedAt")
	}
	if len(caseDate) > 10 {
		caseDate = caseDate[:10]
	}

	sourceURL := firstString(entity.Properties, "sourceUrl")
	if sourceURL == "" {
		sourceURL = defaultSourceURL
	}

	program := firstString(entity.Properties, "program")
	if program == "" {
		program = firstString(entity.Properties, "topics")
	}
	if program == "" {
		program = "OFAC"
	}

	description := firstString(entity.Properties, "notes")
	if description == "" {
		description = fmt.Sprintf("%s sanctioned under %s", capitalize(kind), program)
	}

	return models.FraudCaseRecord{
		ID:           uuid.New(),
		CompanyName:  names[0],
		CaseDate:     caseDate,
		FraudType:    models.FraudTypeSanctions,
		Jurisdiction: strings.ToLower(jurisdiction),
		Source:       c.Name(),
		SourceURL:    sourceURL,
		Description:  description,
		IsSynthetic:  false,
		Identifiers:  identifiers,
	}, true
}

// stringValues extracts the string values of an FTM property, which
// may arrive as a string or a mixed-type list
func stringValues(props map[string]any, key string) []string {
	v, ok := props[key]
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		var out []string
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func firstString(props map[string]any, key string) string {
	values := stringValues(props, key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
