// Package complaints ingests plain-text complaint documents from a
// directory. Text conversion from the original PDFs happens upstream;
// this connector consumes the .txt output.
package complaints

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"fraudatlas/internal/domain/models"
	"fraudatlas/internal/domain/services"
	"fraudatlas/internal/extract"
	"fraudatlas/internal/sources"
	"fraudatlas/pkg/logger"
)

// DefaultWorkers is the extraction worker-pool size when the pipeline
// config does not set one
const DefaultWorkers = 4

// Connector extracts fraud cases from complaint documents
type Connector struct {
	*sources.BaseConnector
	extractor *extract.Extractor
	builder   *services.RecordBuilder
	workers   int
	logger    *logger.Logger
}

// New creates the complaints connector. workers <= 0 selects
// DefaultWorkers.
func New(extractor *extract.Extractor, builder *services.RecordBuilder, workers int, log *logger.Logger) *Connector {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Connector{
		BaseConnector: sources.NewBaseConnector(
			"complaints",
			"SEC Complaint",
			models.SourceCategoryDocuments,
			2,
		),
		extractor: extractor,
		builder:   builder,
		workers:   workers,
		logger:    log.WithSource("complaints"),
	}
}

type docJob struct {
	index int
	path  string
}

type docResult struct {
	index   int
	records []models.FraudCaseRecord
	skipped bool
}

// Fetch extracts every document in the configured directory.
// Documents fan out over a bounded worker pool; results are re-sorted
// into the directory's lexical order before the batch is returned, so
// a rebuild's merge order never depends on goroutine scheduling.
func (c *Connector) Fetch(ctx context.Context) (*models.SourceBatch, error) {
	dir := c.Config().Dir
	if dir == "" {
		return nil, fmt.Errorf("complaints connector has no documents directory configured")
	}

	start := time.Now()

	paths, err := listDocuments(dir)
	if err != nil {
		return nil, err
	}

	batch := &models.SourceBatch{
		SourceSlug: c.Slug(),
		SourceName: c.Name(),
		Category:   c.Category(),
		TotalInput: len(paths),
		FetchedAt:  start,
	}

	if len(paths) == 0 {
		batch.Success = true
		batch.Duration = time.Since(start)
		return batch, nil
	}

	jobs := make(chan docJob, len(paths))
	results := make(chan docResult, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- c.processDocument(ctx, job)
			}
		}()
	}

	for i, p := range paths {
		jobs <- docJob{index: i, path: p}
	}
	close(jobs)

	wg.Wait()
	close(results)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	collected := make([]docResult, 0, len(paths))
	for res := range results {
		collected = append(collected, res)
	}
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].index < collected[j].index
	})

	for _, res := range collected {
		if res.skipped {
			batch.Skipped++
			continue
		}
		batch.Records = append(batch.Records, res.records...)
	}

	batch.Duration = time.Since(start)
	batch.Success = true

	c.logger.Info().
		Int("documents", len(paths)).
		Int("skipped", batch.Skipped).
		Int("records", len(batch.Records)).
		Dur("duration", batch.Duration).
		Msg("extracted complaint documents")

	return batch, nil
}

// processDocument reads, extracts and builds records for one document.
// A document that cannot be read or is empty is skipped, never fatal.
func (c *Connector) processDocument(ctx context.Context, job docJob) docResult {
	if ctx.Err() != nil {
		return docResult{index: job.index, skipped: true}
	}

	log := c.logger.WithDocument(filepath.Base(job.path))

	data, err := os.ReadFile(job.path)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read document, skipping")
		return docResult{index: job.index, skipped: true}
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		log.Warn().Msg("empty document, skipping")
		return docResult{index: job.index, skipped: true}
	}

	doc := models.RawDocument{
		Name:      filepath.Base(job.path),
		Text:      text,
		SourceURL: job.path,
	}

	extracted := c.extractor.Extract(doc)
	records := c.builder.Build(extracted, services.Provenance{
		Source:    c.Name(),
		SourceURL: job.path,
	})

	return docResult{index: job.index, records: records}
}

// listDocuments returns the directory's .txt files sorted by name.
// The sorted order is the batch's source-declared record order.
func listDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read documents directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
