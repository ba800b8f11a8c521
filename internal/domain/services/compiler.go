package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fraudatlas/internal/domain/models"
	"fraudatlas/internal/infrastructure/cache"
	"fraudatlas/internal/sources"
	"fraudatlas/pkg/logger"
)

// ErrRebuildInProgress is returned when another rebuild holds the lock
var ErrRebuildInProgress = errors.New("a rebuild is already in progress")

const (
	rebuildLockKey = "rebuild"
	rebuildLockTTL = 30 * time.Minute
)

// CaseStore persists the sealed catalog
type CaseStore interface {
	ReplaceAll(ctx context.Context, records []models.FraudCaseRecord) error
}

// Exporter writes the sealed catalog to an output artifact
type Exporter interface {
	Name() string
	Export(records []models.FraudCaseRecord) error
}

// RebuildResult summarizes one completed rebuild
type RebuildResult struct {
	StartedAt         time.Time     `json:"started_at"`
	Duration          time.Duration `json:"duration"`
	TotalRecords      int           `json:"total_records"`
	DuplicatesDropped int           `json:"duplicates_dropped"`
	SourcesFetched    int           `json:"sources_fetched"`
	SourcesFailed     int           `json:"sources_failed"`
	PerSource         []MergeStats  `json:"per_source"`
}

// Compiler orchestrates one catalog rebuild: fetch every enabled
// source in priority order, merge sequentially, seal, export, store.
// The published dataset is swapped in only after the rebuild fully
// succeeds; a cancelled or failed rebuild leaves the previous one
// visible.
type Compiler struct {
	registry  *sources.Registry
	merger    *Merger
	store     CaseStore         // optional
	cache     *cache.RedisCache // optional
	exporters []Exporter
	logger    *logger.Logger

	mu      sync.RWMutex
	current *models.CanonicalDataset
	last    *RebuildResult
}

// NewCompiler creates a catalog compiler. store and redisCache may be
// nil; exports and locking degrade gracefully without them.
func NewCompiler(
	registry *sources.Registry,
	merger *Merger,
	store CaseStore,
	redisCache *cache.RedisCache,
	exporters []Exporter,
	log *logger.Logger,
) *Compiler {
	return &Compiler{
		registry:  registry,
		merger:    merger,
		store:     store,
		cache:     redisCache,
		exporters: exporters,
		logger:    log.WithComponent("compiler"),
	}
}

// Current returns the most recently published dataset, or nil before
// the first successful rebuild.
func (c *Compiler) Current() *models.CanonicalDataset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// LastResult returns the stats of the most recent successful rebuild
func (c *Compiler) LastResult() *RebuildResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last
}

// Rebuild runs one full catalog rebuild
func (c *Compiler) Rebuild(ctx context.Context) (*RebuildResult, error) {
	if c.cache != nil {
		acquired, err := c.cache.AcquireLock(ctx, rebuildLockKey, rebuildLockTTL)
		if err != nil {
			c.logger.Warn().Err(err).Msg("rebuild lock check failed, proceeding without lock")
		} else if !acquired {
			return nil, ErrRebuildInProgress
		} else {
			defer func() {
				if err := c.cache.ReleaseLock(context.Background(), rebuildLockKey); err != nil {
					c.logger.Warn().Err(err).Msg("failed to release rebuild lock")
				}
			}()
		}
	}

	start := time.Now()
	c.logger.Info().Msg("starting catalog rebuild")

	dataset := models.NewCanonicalDataset()
	result := &RebuildResult{StartedAt: start}

	for _, connector := range c.registry.ByPriority() {
		if ctx.Err() != nil {
			// Interrupted rebuilds are discarded, never published.
			return nil, ctx.Err()
		}
		if !connector.IsEnabled() {
			continue
		}

		log := c.logger.WithSource(connector.Slug())

		batch, err := connector.Fetch(ctx)
		if err != nil {
			// One broken feed must not take the catalog down.
			result.SourcesFailed++
			log.Error().Err(err).Msg("source fetch failed, skipping")
			continue
		}
		result.SourcesFetched++

		stats, err := c.merger.Merge(dataset, batch)
		if err != nil {
			return nil, fmt.Errorf("merge failed for source %s: %w", connector.Slug(), err)
		}
		result.PerSource = append(result.PerSource, stats)
		result.DuplicatesDropped += stats.Dropped
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	dataset.Seal()
	result.TotalRecords = dataset.Len()
	result.Duration = time.Since(start)

	records := dataset.Records()
	for _, exporter := range c.exporters {
		if err := exporter.Export(records); err != nil {
			return nil, fmt.Errorf("export %s failed: %w", exporter.Name(), err)
		}
	}

	if c.store != nil {
		if err := c.store.ReplaceAll(ctx, records); err != nil {
			return nil, fmt.Errorf("failed to store catalog: %w", err)
		}
	}

	c.publish(dataset, result)
	c.recordStats(ctx, result)

	c.logger.Info().
		Int("records", result.TotalRecords).
		Int("duplicates_dropped", result.DuplicatesDropped).
		Int("sources_fetched", result.SourcesFetched).
		Int("sources_failed", result.SourcesFailed).
		Dur("duration", result.Duration).
		Msg("catalog rebuild complete")

	return result, nil
}

// publish atomically swaps in the sealed dataset
func (c *Compiler) publish(dataset *models.CanonicalDataset, result *RebuildResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = dataset
	c.last = result
}

// recordStats writes rebuild bookkeeping to redis for the stats API
// and the dedup audit counters
func (c *Compiler) recordStats(ctx context.Context, result *RebuildResult) {
	if c.cache == nil {
		return
	}

	if err := c.cache.SetJSON(ctx, cache.KeyLastRebuild, result, 0); err != nil {
		c.logger.Warn().Err(err).Msg("failed to cache rebuild result")
	}

	for _, s := range result.PerSource {
		if s.Dropped == 0 {
			continue
		}
		if _, err := c.cache.IncrBy(ctx, cache.KeyDuplicatesDroppedPrefix+s.SourceSlug, int64(s.Dropped)); err != nil {
			c.logger.Warn().Err(err).Msg("failed to record duplicate-drop counter")
		}
	}
}
