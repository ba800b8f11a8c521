package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func caseRecord(company string, fraudType FraudType) FraudCaseRecord {
	return FraudCaseRecord{
		ID:          uuid.New(),
		CompanyName: company,
		FraudType:   fraudType,
		Source:      "test",
	}
}

func TestDedupKey(t *testing.T) {
	assert.Equal(t, "acme capital llc", DedupKey("  Acme Capital LLC "))
	assert.Equal(t, "acme capital llc", DedupKey("ACME CAPITAL LLC"))
	// Punctuation stays significant.
	assert.NotEqual(t, DedupKey("Acme Capital LLC"), DedupKey("Acme Capital, LLC"))
	assert.Equal(t, "", DedupKey("   "))
}

func TestDatasetAppendAndLookup(t *testing.T) {
	ds := NewCanonicalDataset()
	assert.Equal(t, DatasetStateBuilding, ds.State())

	require.NoError(t, ds.Append(caseRecord("Acme Corp", FraudTypePonziScheme)))
	assert.Equal(t, 1, ds.Len())
	assert.True(t, ds.Has("acme corp"))

	rec, ok := ds.Get(" ACME CORP ")
	require.True(t, ok)
	assert.Equal(t, "Acme Corp", rec.CompanyName)

	_, ok = ds.Get("Unknown Ltd")
	assert.False(t, ok)
}

func TestDatasetDuplicateRejected(t *testing.T) {
	ds := NewCanonicalDataset()
	require.NoError(t, ds.Append(caseRecord("Acme Corp", FraudTypePonziScheme)))

	err := ds.Append(caseRecord("  acme corp ", FraudTypeWireFraud))
	assert.ErrorIs(t, err, ErrDuplicateCompany)

	// First record survives.
	rec, _ := ds.Get("Acme Corp")
	assert.Equal(t, FraudTypePonziScheme, rec.FraudType)
	assert.Equal(t, 1, ds.Len())
}

func TestDatasetSealRejectsAppends(t *testing.T) {
	ds := NewCanonicalDataset()
	require.NoError(t, ds.Append(caseRecord("Acme Corp", FraudTypePonziScheme)))

	ds.Seal()
	assert.Equal(t, DatasetStateSealed, ds.State())

	err := ds.Append(caseRecord("Beta LLC", FraudTypeWireFraud))
	assert.ErrorIs(t, err, ErrDatasetSealed)
	assert.Equal(t, 1, ds.Len())
}

func TestDatasetRecordsReturnsCopy(t *testing.T) {
	ds := NewCanonicalDataset()
	require.NoError(t, ds.Append(caseRecord("Acme Corp", FraudTypePonziScheme)))

	records := ds.Records()
	records[0].CompanyName = "mutated"

	rec, _ := ds.Get("Acme Corp")
	assert.Equal(t, "Acme Corp", rec.CompanyName)
}

func TestDatasetCountBy(t *testing.T) {
	ds := NewCanonicalDataset()
	require.NoError(t, ds.Append(caseRecord("A", FraudTypePonziScheme)))
	require.NoError(t, ds.Append(caseRecord("B", FraudTypePonziScheme)))
	require.NoError(t, ds.Append(caseRecord("C", FraudTypeWireFraud)))

	counts := ds.CountBy(func(r FraudCaseRecord) string { return r.FraudType.String() })
	assert.Equal(t, 2, counts["Ponzi Scheme"])
	assert.Equal(t, 1, counts["Wire Fraud"])
}

func TestParseFraudType(t *testing.T) {
	assert.Equal(t, FraudTypePonziScheme, ParseFraudType("Ponzi Scheme"))
	assert.Equal(t, FraudTypeSanctions, ParseFraudType(" OFAC Sanctions "))
	assert.Equal(t, FraudTypeSecuritiesFraud, ParseFraudType("something else"))
	assert.Equal(t, FraudTypeSecuritiesFraud, ParseFraudType(""))
}
