package sanctions

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudatlas/internal/domain/models"
	"fraudatlas/internal/sources"
	"fraudatlas/pkg/logger"
)

func writeFeed(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "entities.ftm.json")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func configuredConnector(t *testing.T, path string) *Connector {
	t.Helper()
	conn := New(logger.NewDefault())
	require.NoError(t, conn.Configure(sources.ConnectorConfig{Enabled: true, Path: path}))
	return conn
}

func TestFetchParsesCompanyEntities(t *testing.T) {
	path := writeFeed(t,
		`{"schema": "Company", "properties": {"name": ["Offshore Ventures Ltd."], "country": ["KY"], "registrationNumber": ["OV-9912"], "createdAt": ["2023-06-01T12:00:00"], "program": ["SDGT"], "notes": ["Front company"]}}`,
		`{"schema": "Person", "properties": {"name": ["John Doe"]}}`,
		`{"schema": "LegalEntity", "properties": {"name": "Crestline Trading", "modifiedAt": "2024-02-10"}}`,
		``,
		`not json at all`,
	)

	batch, err := configuredConnector(t, path).Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, batch.TotalInput) // blank line not counted
	assert.Equal(t, 2, batch.Skipped)    // person + malformed line
	require.Len(t, batch.Records, 2)

	first := batch.Records[0]
	assert.Equal(t, "Offshore Ventures Ltd.", first.CompanyName)
	assert.Equal(t, models.FraudTypeSanctions, first.FraudType)
	assert.Equal(t, "ky", first.Jurisdiction)
	assert.Equal(t, "2023-06-01", first.CaseDate)
	assert.Equal(t, "OV-9912", first.Identifiers["registrationNumber"])
	assert.Equal(t, "Front company", first.Description)
	assert.Equal(t, defaultSourceURL, first.SourceURL)

	second := batch.Records[1]
	assert.Equal(t, "Crestline Trading", second.CompanyName)
	assert.Equal(t, "2024-02-10", second.CaseDate)
	assert.Nil(t, second.Identifiers)
	// No notes: description is generated from kind and program.
	assert.Equal(t, "Company sanctioned under OFAC", second.Description)
}

func TestFetchOrganizationDescription(t *testing.T) {
	path := writeFeed(t,
		`{"schema": "Organization", "properties": {"name": ["Shadow Network"], "topics": ["sanction"]}}`,
	)

	batch, err := configuredConnector(t, path).Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, batch.Records, 1)
	assert.Equal(t, "Organization sanctioned under sanction", batch.Records[0].Description)
}

func TestFetchSkipsEntitiesWithoutNames(t *testing.T) {
	path := writeFeed(t,
		`{"schema": "Company", "properties": {"country": ["ru"]}}`,
	)

	batch, err := configuredConnector(t, path).Fetch(context.Background())
	require.NoError(t, err)

	assert.Empty(t, batch.Records)
	assert.Equal(t, 1, batch.Skipped)
}

func TestFetchRequiresConfiguredPath(t *testing.T) {
	conn := New(logger.NewDefault())
	_, err := conn.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchMissingFileFails(t *testing.T) {
	conn := configuredConnector(t, "/nonexistent/feed.json")
	_, err := conn.Fetch(context.Background())
	assert.Error(t, err)
}
