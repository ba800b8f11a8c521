// Package synthetic generates shell-company profiles for demos and
// load testing. Generation is seeded, so the same seed and anchor date
// always produce the same batch.
package synthetic

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"fraudatlas/internal/domain/models"
	"fraudatlas/internal/sources"
	"fraudatlas/pkg/logger"
)

// DefaultCount is the batch size when the config does not set one
const DefaultCount = 50

var namePrefixes = []string{
	"Global", "Pacific", "Atlantic", "Eastern", "Western",
	"Northern", "Southern", "Premier", "Elite", "Prime",
	"Apex", "Summit", "Pinnacle", "Quantum", "Dynamic",
	"Strategic", "Advanced", "Superior", "Optimal", "Unified",
}

var nameCores = []string{
	"Capital", "Ventures", "Holdings", "Investments", "Partners",
	"Group", "Solutions", "Enterprises", "International", "Trading",
	"Asset", "Equity", "Finance", "Management", "Consulting",
	"Development", "Resources", "Services", "Industries", "Systems",
}

var nameSuffixes = []string{
	"Ltd.", "LLC", "Inc.", "Corp.", "PTE", "LLP",
	"SA", "AG", "BV", "GmbH", "Sarl", "Limited",
}

// offshoreJurisdictions is the pool of shell-company home codes
var offshoreJurisdictions = []string{
	"ky", "vg", "pa", "bz", "sc", "bs", "mu", "cy", "mt", "ae", "hk", "sg",
}

var syntheticFraudTypes = []models.FraudType{
	models.FraudTypeShellCompanyFraud,
	models.FraudTypeMoneyLaundering,
	models.FraudTypeTradeBasedFraud,
	models.FraudTypeInvestmentFraud,
	models.FraudTypeTaxEvasionVehicle,
}

// Connector generates synthetic shell-company records
type Connector struct {
	*sources.BaseConnector
	logger *logger.Logger
}

// New creates the synthetic connector
func New(log *logger.Logger) *Connector {
	return &Connector{
		BaseConnector: sources.NewBaseConnector(
			"synthetic",
			"Synthetic",
			models.SourceCategorySynthetic,
			4,
		),
		logger: log.WithSource("synthetic"),
	}
}

// Fetch generates the configured number of profiles. Incorporation
// dates count back from the configured anchor date (today when unset),
// so a pinned anchor plus a pinned seed reproduces the batch exactly.
func (c *Connector) Fetch(ctx context.Context) (*models.SourceBatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := c.Config()
	count := cfg.Count
	if count <= 0 {
		count = DefaultCount
	}

	base := time.Now()
	if cfg.BaseDate != "" {
		parsed, err := time.Parse("2006-01-02", cfg.BaseDate)
		if err != nil {
			return nil, fmt.Errorf("invalid synthetic base_date %q: %w", cfg.BaseDate, err)
		}
		base = parsed
	}

	start := time.Now()
	rng := rand.New(rand.NewSource(cfg.Seed))

	batch := &models.SourceBatch{
		SourceSlug: c.Slug(),
		SourceName: c.Name(),
		Category:   c.Category(),
		TotalInput: count,
		FetchedAt:  start,
	}

	for i := 0; i < count; i++ {
		batch.Records = append(batch.Records, c.generate(rng, base, i))
	}

	batch.Duration = time.Since(start)
	batch.Success = true

	c.logger.Info().
		Int("records", count).
		Int64("seed", cfg.Seed).
		Msg("generated synthetic profiles")

	return batch, nil
}

// generate builds one shell-company profile
func (c *Connector) generate(rng *rand.Rand, base time.Time, index int) models.FraudCaseRecord {
	// Shell companies are young: incorporated 30 to 730 days ago.
	daysAgo := 30 + rng.Intn(701)

	return models.FraudCaseRecord{
		ID:           uuid.New(),
		CompanyName:  companyName(rng),
		CaseDate:     base.AddDate(0, 0, -daysAgo).Format("2006-01-02"),
		FraudType:    syntheticFraudTypes[rng.Intn(len(syntheticFraudTypes))],
		Jurisdiction: offshoreJurisdictions[rng.Intn(len(offshoreJurisdictions))],
		Source:       c.Name(),
		SourceURL:    "",
		Description:  fmt.Sprintf("Synthetic shell company profile #%d for demo purposes", index+1),
		IsSynthetic:  true,
	}
}

// companyName assembles a name from the prefix/core/suffix grammar
func companyName(rng *rand.Rand) string {
	prefix := namePrefixes[rng.Intn(len(namePrefixes))]
	core := nameCores[rng.Intn(len(nameCores))]
	suffix := nameSuffixes[rng.Intn(len(nameSuffixes))]

	switch rng.Intn(3) {
	case 0:
		return fmt.Sprintf("%s %s %s", prefix, core, suffix)
	case 1:
		return fmt.Sprintf("%s%s %s", prefix, core, suffix)
	default:
		return fmt.Sprintf("%s %s %s", core, prefix, suffix)
	}
}
