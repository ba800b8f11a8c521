package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudatlas/internal/domain/models"
	"fraudatlas/pkg/logger"
)

type stubConnector struct {
	*BaseConnector
}

func (s *stubConnector) Fetch(ctx context.Context) (*models.SourceBatch, error) {
	return &models.SourceBatch{SourceSlug: s.Slug(), Success: true}, nil
}

func stub(slug string, category models.SourceCategory, priority int) *stubConnector {
	return &stubConnector{
		BaseConnector: NewBaseConnector(slug, slug, category, priority),
	}
}

func TestRegisterRejectsDuplicateSlug(t *testing.T) {
	reg := NewRegistry(logger.NewDefault())

	require.NoError(t, reg.Register(stub("curated", models.SourceCategoryCurated, 1)))
	err := reg.Register(stub("curated", models.SourceCategoryCurated, 1))
	assert.Error(t, err)
	assert.Equal(t, 1, reg.Count())
}

func TestByPriorityOrdersAscendingWithSlugTiebreak(t *testing.T) {
	reg := NewRegistry(logger.NewDefault())

	// Registered out of order, including a priority tie.
	require.NoError(t, reg.Register(stub("synthetic", models.SourceCategorySynthetic, 4)))
	require.NoError(t, reg.Register(stub("sanctions", models.SourceCategorySanctions, 3)))
	require.NoError(t, reg.Register(stub("watchlist", models.SourceCategorySanctions, 3)))
	require.NoError(t, reg.Register(stub("curated", models.SourceCategoryCurated, 1)))

	var slugs []string
	for _, conn := range reg.ByPriority() {
		slugs = append(slugs, conn.Slug())
	}
	assert.Equal(t, []string{"curated", "sanctions", "watchlist", "synthetic"}, slugs)
}

func TestConfigureZeroPriorityKeepsDefault(t *testing.T) {
	conn := stub("complaints", models.SourceCategoryDocuments, 2)

	require.NoError(t, conn.Configure(ConnectorConfig{Enabled: true, Dir: "/data"}))
	assert.Equal(t, 2, conn.Priority())
	assert.Equal(t, "/data", conn.Config().Dir)

	require.NoError(t, conn.Configure(ConnectorConfig{Enabled: true, Priority: 9}))
	assert.Equal(t, 9, conn.Priority())
}

func TestConfigureUnknownSlugFails(t *testing.T) {
	reg := NewRegistry(logger.NewDefault())
	err := reg.Configure("unknown", ConnectorConfig{Enabled: true})
	assert.Error(t, err)
}

func TestListEnabled(t *testing.T) {
	reg := NewRegistry(logger.NewDefault())

	enabled := stub("curated", models.SourceCategoryCurated, 1)
	disabled := stub("synthetic", models.SourceCategorySynthetic, 4)
	require.NoError(t, disabled.Configure(ConnectorConfig{Enabled: false}))

	require.NoError(t, reg.Register(enabled))
	require.NoError(t, reg.Register(disabled))

	require.Len(t, reg.ListEnabled(), 1)
	assert.Equal(t, "curated", reg.ListEnabled()[0].Slug())
	assert.Equal(t, 1, reg.CountEnabled())
}

func TestStats(t *testing.T) {
	reg := NewRegistry(logger.NewDefault())
	require.NoError(t, reg.Register(stub("curated", models.SourceCategoryCurated, 1)))
	require.NoError(t, reg.Register(stub("sanctions", models.SourceCategorySanctions, 3)))

	stats := reg.Stats()
	assert.Equal(t, 2, stats.TotalConnectors)
	assert.Equal(t, 2, stats.EnabledConnectors)
	assert.Equal(t, 1, stats.ByCategory[string(models.SourceCategoryCurated)])
}
