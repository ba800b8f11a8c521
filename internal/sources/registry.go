package sources

import (
	"fmt"
	"sort"
	"sync"

	"fraudatlas/internal/config"
	"fraudatlas/internal/domain/models"
	"fraudatlas/pkg/logger"
)

// Registry manages all source connectors
type Registry struct {
	connectors map[string]Connector
	mu         sync.RWMutex
	logger     *logger.Logger
}

// NewRegistry creates a new connector registry
func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		connectors: make(map[string]Connector),
		logger:     log.WithComponent("source-registry"),
	}
}

// Register registers a connector
func (r *Registry) Register(connector Connector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slug := connector.Slug()
	if _, exists := r.connectors[slug]; exists {
		return fmt.Errorf("connector already registered: %s", slug)
	}

	r.connectors[slug] = connector
	r.logger.Info().
		Str("slug", slug).
		Str("name", connector.Name()).
		Str("category", string(connector.Category())).
		Int("priority", connector.Priority()).
		Msg("registered connector")

	return nil
}

// Get returns a connector by slug
func (r *Registry) Get(slug string) (Connector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.connectors[slug]
	return conn, ok
}

// List returns all registered connectors
func (r *Registry) List() []Connector {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]Connector, 0, len(r.connectors))
	for _, conn := range r.connectors {
		conns = append(conns, conn)
	}
	return conns
}

// ByPriority returns all connectors sorted by ascending merge
// priority, ties broken by slug so the order is deterministic. The
// merger consumes sources in exactly this order.
func (r *Registry) ByPriority() []Connector {
	conns := r.List()
	sort.Slice(conns, func(i, j int) bool {
		if conns[i].Priority() != conns[j].Priority() {
			return conns[i].Priority() < conns[j].Priority()
		}
		return conns[i].Slug() < conns[j].Slug()
	})
	return conns
}

// ListEnabled returns all enabled connectors
func (r *Registry) ListEnabled() []Connector {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]Connector, 0)
	for _, conn := range r.connectors {
		if conn.IsEnabled() {
			conns = append(conns, conn)
		}
	}
	return conns
}

// ListByCategory returns connectors by category
func (r *Registry) ListByCategory(category models.SourceCategory) []Connector {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]Connector, 0)
	for _, conn := range r.connectors {
		if conn.Category() == category {
			conns = append(conns, conn)
		}
	}
	return conns
}

// Count returns the number of registered connectors
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.connectors)
}

// CountEnabled returns the number of enabled connectors
func (r *Registry) CountEnabled() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, conn := range r.connectors {
		if conn.IsEnabled() {
			count++
		}
	}
	return count
}

// Configure configures a connector by slug
func (r *Registry) Configure(slug string, cfg ConnectorConfig) error {
	r.mu.RLock()
	conn, ok := r.connectors[slug]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("connector not found: %s", slug)
	}

	return conn.Configure(cfg)
}

// ConfigureFromSourcesConfig applies configuration from config file
func (r *Registry) ConfigureFromSourcesConfig(cfg config.SourcesConfig) {
	configs := map[string]config.SourceConfig{
		"curated":    cfg.Curated,
		"complaints": cfg.Complaints,
		"sanctions":  cfg.Sanctions,
		"synthetic":  cfg.Synthetic,
	}

	for slug, srcCfg := range configs {
		connCfg := ConnectorConfig{
			Enabled:  srcCfg.Enabled,
			Priority: srcCfg.Priority,
			Path:     srcCfg.Path,
			Dir:      srcCfg.Dir,
			Count:    srcCfg.Count,
			Seed:     srcCfg.Seed,
			BaseDate: srcCfg.BaseDate,
		}

		if err := r.Configure(slug, connCfg); err != nil {
			r.logger.Debug().Str("slug", slug).Msg("connector not registered, skipping config")
		} else {
			r.logger.Debug().Str("slug", slug).Bool("enabled", srcCfg.Enabled).Msg("configured connector")
		}
	}
}

// Stats returns registry statistics
type RegistryStats struct {
	TotalConnectors   int            `json:"total_connectors"`
	EnabledConnectors int            `json:"enabled_connectors"`
	ByCategory        map[string]int `json:"by_category"`
}

// Stats returns registry statistics
func (r *Registry) Stats() RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := RegistryStats{
		TotalConnectors:   len(r.connectors),
		EnabledConnectors: 0,
		ByCategory:        make(map[string]int),
	}

	for _, conn := range r.connectors {
		if conn.IsEnabled() {
			stats.EnabledConnectors++
		}
		cat := string(conn.Category())
		stats.ByCategory[cat]++
	}

	return stats
}
