// Package export writes the sealed catalog to its output artifacts.
// Every exporter writes to a temp file in the target directory and
// renames it into place, so a partially written artifact is never
// visible.
package export

import (
	"encoding/json"
	"sort"
	"strconv"

	"fraudatlas/internal/domain/models"
)

// Rows converts records into output rows in the fixed column order,
// sorted newest case first; records without a date sort last. The
// sort is stable, so equal dates keep their catalog order and reruns
// over the same dataset produce identical bytes.
func Rows(records []models.FraudCaseRecord) [][]string {
	sorted := make([]models.FraudCaseRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].CaseDate, sorted[j].CaseDate
		if (a == "") != (b == "") {
			return a != ""
		}
		return a > b
	})

	rows := make([][]string, 0, len(sorted))
	for _, rec := range sorted {
		rows = append(rows, formatRecord(rec))
	}
	return rows
}

func formatRecord(rec models.FraudCaseRecord) []string {
	penalty := ""
	if rec.PenaltyAmount != nil {
		penalty = strconv.FormatFloat(*rec.PenaltyAmount, 'f', -1, 64)
	}

	identifiers := ""
	if len(rec.Identifiers) > 0 {
		// Map marshaling sorts keys, keeping output deterministic.
		if data, err := json.Marshal(rec.Identifiers); err == nil {
			identifiers = string(data)
		}
	}

	return []string{
		rec.CompanyName,
		rec.CaseDate,
		rec.FraudType.String(),
		penalty,
		rec.Jurisdiction,
		rec.Source,
		rec.SourceURL,
		rec.Description,
		strconv.FormatBool(rec.IsSynthetic),
		rec.CaseNumber,
		identifiers,
	}
}
