package services

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"fraudatlas/internal/domain/models"
	"fraudatlas/pkg/logger"
)

// DatasetProvider hands out the currently published dataset
type DatasetProvider interface {
	Current() *models.CanonicalDataset
}

// ScreenResult is the outcome of screening one company name
type ScreenResult struct {
	Query         string                  `json:"query"`
	InCatalog     bool                    `json:"in_catalog"`
	CatalogRecord *models.FraudCaseRecord `json:"catalog_record,omitempty"`
	Sanctioned    bool                    `json:"sanctioned"`
	MatchType     string                  `json:"match_type,omitempty"` // exact or partial
	MatchedName   string                  `json:"matched_name,omitempty"`
	Confidence    float64                 `json:"confidence,omitempty"`
}

// Screener checks company names against the published catalog and a
// sanctioned-names list. Exact list matches score 1.0, substring
// matches (either direction) 0.8.
type Screener struct {
	provider DatasetProvider
	logger   *logger.Logger

	mu    sync.RWMutex
	names []string // sanctioned names, original casing
}

// NewScreener creates a screener backed by the given dataset provider
func NewScreener(provider DatasetProvider, log *logger.Logger) *Screener {
	return &Screener{
		provider: provider,
		logger:   log.WithComponent("screener"),
	}
}

// LoadSanctionedNames replaces the sanctioned-names list from a file
// of one name per line. Blank lines and #-comments are skipped.
func (s *Screener) LoadSanctionedNames(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open sanctioned names file: %w", err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read sanctioned names file: %w", err)
	}

	s.mu.Lock()
	s.names = names
	s.mu.Unlock()

	s.logger.Info().Int("names", len(names)).Str("path", path).Msg("loaded sanctioned names")
	return nil
}

// SetSanctionedNames replaces the list directly (used by tests and
// the sanctions connector)
func (s *Screener) SetSanctionedNames(names []string) {
	s.mu.Lock()
	s.names = append([]string(nil), names...)
	s.mu.Unlock()
}

// Screen checks one company name
func (s *Screener) Screen(name string) ScreenResult {
	result := ScreenResult{Query: name}

	if ds := s.provider.Current(); ds != nil {
		if rec, ok := ds.Get(name); ok {
			result.InCatalog = true
			result.CatalogRecord = &rec
		}
	}

	key := models.DedupKey(name)
	if key == "" {
		return result
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Exact pass first so a partial match never shadows an exact one.
	for _, n := range s.names {
		if models.DedupKey(n) == key {
			result.Sanctioned = true
			result.MatchType = "exact"
			result.MatchedName = n
			result.Confidence = 1.0
			return result
		}
	}

	for _, n := range s.names {
		nk := models.DedupKey(n)
		if strings.Contains(nk, key) || strings.Contains(key, nk) {
			result.Sanctioned = true
			result.MatchType = "partial"
			result.MatchedName = n
			result.Confidence = 0.8
			return result
		}
	}

	return result
}
