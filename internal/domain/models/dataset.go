package models

import "errors"

var (
	// ErrDatasetSealed is returned when appending to a sealed dataset
	ErrDatasetSealed = errors.New("dataset is sealed")

	// ErrDuplicateCompany is returned when a record's dedup key is already present
	ErrDuplicateCompany = errors.New("company already present in dataset")
)

// DatasetState tracks the lifecycle of a canonical dataset
type DatasetState string

const (
	DatasetStateBuilding DatasetState = "building"
	DatasetStateSealed   DatasetState = "sealed"
)

// CanonicalDataset is the single deduplicated catalog of fraud cases.
// It is built by one writer (the merger), sealed, and then read-only.
// Exactly one record exists per dedup key; insertion order is preserved.
type CanonicalDataset struct {
	records []FraudCaseRecord
	index   map[string]int // dedup key -> position in records
	state   DatasetState
}

// NewCanonicalDataset creates an empty dataset in the building state
func NewCanonicalDataset() *CanonicalDataset {
	return &CanonicalDataset{
		records: make([]FraudCaseRecord, 0, 256),
		index:   make(map[string]int),
		state:   DatasetStateBuilding,
	}
}

// State returns the dataset lifecycle state
func (d *CanonicalDataset) State() DatasetState {
	return d.state
}

// Len returns the number of records in the dataset
func (d *CanonicalDataset) Len() int {
	return len(d.records)
}

// Has reports whether a record with the given company name is present
func (d *CanonicalDataset) Has(companyName string) bool {
	_, ok := d.index[DedupKey(companyName)]
	return ok
}

// Get returns the record for a company name, if present
func (d *CanonicalDataset) Get(companyName string) (FraudCaseRecord, bool) {
	i, ok := d.index[DedupKey(companyName)]
	if !ok {
		return FraudCaseRecord{}, false
	}
	return d.records[i], true
}

// Append adds a record to a building dataset. It returns
// ErrDatasetSealed after Seal and ErrDuplicateCompany when a record
// with the same dedup key is already present (first writer wins).
func (d *CanonicalDataset) Append(rec FraudCaseRecord) error {
	if d.state == DatasetStateSealed {
		return ErrDatasetSealed
	}
	key := DedupKey(rec.CompanyName)
	if _, ok := d.index[key]; ok {
		return ErrDuplicateCompany
	}
	d.index[key] = len(d.records)
	d.records = append(d.records, rec)
	return nil
}

// Seal transitions the dataset to the read-only sealed state
func (d *CanonicalDataset) Seal() {
	d.state = DatasetStateSealed
}

// Records returns a copy of the records in insertion order
func (d *CanonicalDataset) Records() []FraudCaseRecord {
	out := make([]FraudCaseRecord, len(d.records))
	copy(out, d.records)
	return out
}

// CountBy returns record counts grouped by the given key function
func (d *CanonicalDataset) CountBy(key func(FraudCaseRecord) string) map[string]int {
	out := make(map[string]int)
	for _, r := range d.records {
		out[key(r)]++
	}
	return out
}
