package sources

import (
	"context"

	"fraudatlas/internal/domain/models"
)

// Connector defines the interface for fraud-case source connectors
type Connector interface {
	// Slug returns the unique identifier for this source
	Slug() string

	// Name returns the human-readable name of this source
	Name() string

	// Category returns the category of this source
	Category() models.SourceCategory

	// Priority returns the merge priority; lower values merge first
	// and therefore win dedup collisions
	Priority() int

	// Fetch produces this source's ordered record batch
	Fetch(ctx context.Context) (*models.SourceBatch, error)

	// IsEnabled returns whether this source is enabled
	IsEnabled() bool

	// Configure configures the connector with the given config
	Configure(cfg ConnectorConfig) error
}

// ConnectorConfig holds configuration for a connector
type ConnectorConfig struct {
	Enabled  bool   `json:"enabled"`
	Priority int    `json:"priority"`
	Path     string `json:"path,omitempty"`      // data file (curated, sanctions)
	Dir      string `json:"dir,omitempty"`       // documents directory (complaints)
	Count    int    `json:"count,omitempty"`     // records to generate (synthetic)
	Seed     int64  `json:"seed,omitempty"`      // generator seed (synthetic)
	BaseDate string `json:"base_date,omitempty"` // generator anchor date (synthetic)
}

// DefaultConfig returns default connector configuration
func DefaultConfig() ConnectorConfig {
	return ConnectorConfig{
		Enabled:  true,
		Priority: 100,
	}
}

// BaseConnector provides common functionality for connectors
type BaseConnector struct {
	slug     string
	name     string
	category models.SourceCategory
	config   ConnectorConfig
}

// NewBaseConnector creates a new base connector
func NewBaseConnector(slug, name string, category models.SourceCategory, priority int) *BaseConnector {
	cfg := DefaultConfig()
	cfg.Priority = priority
	return &BaseConnector{
		slug:     slug,
		name:     name,
		category: category,
		config:   cfg,
	}
}

// Slug returns the unique identifier for this source
func (c *BaseConnector) Slug() string {
	return c.slug
}

// Name returns the human-readable name of this source
func (c *BaseConnector) Name() string {
	return c.name
}

// Category returns the category of this source
func (c *BaseConnector) Category() models.SourceCategory {
	return c.category
}

// Priority returns the merge priority
func (c *BaseConnector) Priority() int {
	return c.config.Priority
}

// IsEnabled returns whether this source is enabled
func (c *BaseConnector) IsEnabled() bool {
	return c.config.Enabled
}

// Configure configures the connector. A zero priority keeps the
// connector's registered default.
func (c *BaseConnector) Configure(cfg ConnectorConfig) error {
	if cfg.Priority == 0 {
		cfg.Priority = c.config.Priority
	}
	c.config = cfg
	return nil
}

// Config returns the current configuration
func (c *BaseConnector) Config() ConnectorConfig {
	return c.config
}
