package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"fraudatlas/internal/domain/models"
	"fraudatlas/internal/infrastructure/database"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS fraud_cases (
		id             UUID PRIMARY KEY,
		company_name   TEXT NOT NULL,
		company_key    TEXT NOT NULL,
		case_date      TEXT NOT NULL DEFAULT '',
		fraud_type     TEXT NOT NULL,
		penalty_amount DOUBLE PRECISION,
		jurisdiction   TEXT NOT NULL DEFAULT '',
		source         TEXT NOT NULL,
		source_url     TEXT,
		description    TEXT,
		is_synthetic   BOOLEAN NOT NULL DEFAULT FALSE,
		case_number    TEXT,
		identifiers    JSONB,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_fraud_cases_company_key ON fraud_cases (company_key)`,
	`CREATE INDEX IF NOT EXISTS idx_fraud_cases_fraud_type ON fraud_cases (fraud_type)`,
	`CREATE INDEX IF NOT EXISTS idx_fraud_cases_source ON fraud_cases (source)`,
	`CREATE INDEX IF NOT EXISTS idx_fraud_cases_jurisdiction ON fraud_cases (jurisdiction)`,
}

const caseColumns = `id, company_name, case_date, fraud_type, penalty_amount,
	jurisdiction, source, source_url, description, is_synthetic, case_number, identifiers`

// CaseFilter defines filtering options for listing fraud cases
type CaseFilter struct {
	FraudType    string
	Jurisdiction string
	Source       string
	Synthetic    *bool
	Search       string
	Limit        int
	Offset       int
}

// CaseStats holds aggregate statistics over the stored catalog
type CaseStats struct {
	TotalCount     int64            `json:"total_count"`
	ByFraudType    map[string]int64 `json:"by_fraud_type"`
	BySource       map[string]int64 `json:"by_source"`
	SyntheticCount int64            `json:"synthetic_count"`
}

// CaseRepository persists the compiled fraud-case catalog
type CaseRepository struct {
	db *database.PostgresDB
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(db *database.PostgresDB) *CaseRepository {
	return &CaseRepository{db: db}
}

// EnsureSchema creates the fraud_cases table and its indexes
func (r *CaseRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// ReplaceAll swaps the stored catalog for the given records in a single
// transaction. Readers never observe a partially replaced table.
func (r *CaseRepository) ReplaceAll(ctx context.Context, records []models.FraudCaseRecord) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE fraud_cases`); err != nil {
			return fmt.Errorf("failed to truncate fraud_cases: %w", err)
		}

		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"fraud_cases"},
			[]string{
				"id", "company_name", "company_key", "case_date", "fraud_type",
				"penalty_amount", "jurisdiction", "source", "source_url",
				"description", "is_synthetic", "case_number", "identifiers",
			},
			pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
				rec := records[i]
				return []any{
					rec.ID,
					rec.CompanyName,
					models.DedupKey(rec.CompanyName),
					rec.CaseDate,
					rec.FraudType.String(),
					floatPtrToFloat8(rec.PenaltyAmount),
					rec.Jurisdiction,
					rec.Source,
					textOrNull(rec.SourceURL),
					textOrNull(rec.Description),
					rec.IsSynthetic,
					textOrNull(rec.CaseNumber),
					identifiersToJSON(rec.Identifiers),
				}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("failed to copy fraud cases: %w", err)
		}
		return nil
	})
}

// List retrieves fraud cases with filtering and pagination
func (r *CaseRepository) List(ctx context.Context, filter CaseFilter) ([]models.FraudCaseRecord, int64, error) {
	var conditions []string
	var args []any

	addCondition := func(cond string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.FraudType != "" {
		addCondition("fraud_type = $%d", filter.FraudType)
	}
	if filter.Jurisdiction != "" {
		addCondition("jurisdiction = $%d", strings.ToLower(filter.Jurisdiction))
	}
	if filter.Source != "" {
		addCondition("source = $%d", filter.Source)
	}
	if filter.Synthetic != nil {
		addCondition("is_synthetic = $%d", *filter.Synthetic)
	}
	if filter.Search != "" {
		addCondition("company_name ILIKE $%d", "%"+filter.Search+"%")
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countSQL := "SELECT count(*) FROM fraud_cases" + where
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count fraud cases: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit, filter.Offset)
	listSQL := fmt.Sprintf(
		"SELECT %s FROM fraud_cases%s ORDER BY case_date DESC, company_name LIMIT $%d OFFSET $%d",
		caseColumns, where, len(args)-1, len(args),
	)

	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list fraud cases: %w", err)
	}
	defer rows.Close()

	var records []models.FraudCaseRecord
	for rows.Next() {
		rec, err := scanCase(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read fraud cases: %w", err)
	}

	return records, total, nil
}

// GetByCompany retrieves a case by company name, matched on the same
// trimmed and casefolded key used during merging. Returns nil when no
// case exists.
func (r *CaseRepository) GetByCompany(ctx context.Context, companyName string) (*models.FraudCaseRecord, error) {
	row := r.db.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM fraud_cases WHERE company_key = $1", caseColumns),
		models.DedupKey(companyName),
	)
	rec, err := scanCase(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get fraud case: %w", err)
	}
	return &rec, nil
}

// Stats returns aggregate counts over the stored catalog
func (r *CaseRepository) Stats(ctx context.Context) (*CaseStats, error) {
	stats := &CaseStats{
		ByFraudType: make(map[string]int64),
		BySource:    make(map[string]int64),
	}

	err := r.db.QueryRow(ctx,
		`SELECT count(*), count(*) FILTER (WHERE is_synthetic) FROM fraud_cases`,
	).Scan(&stats.TotalCount, &stats.SyntheticCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count fraud cases: %w", err)
	}

	if err := r.countBy(ctx, "fraud_type", stats.ByFraudType); err != nil {
		return nil, err
	}
	if err := r.countBy(ctx, "source", stats.BySource); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *CaseRepository) countBy(ctx context.Context, column string, dest map[string]int64) error {
	rows, err := r.db.Query(ctx,
		fmt.Sprintf("SELECT %s, count(*) FROM fraud_cases GROUP BY %s", column, column),
	)
	if err != nil {
		return fmt.Errorf("failed to count by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("failed to scan %s count: %w", column, err)
		}
		dest[key] = count
	}
	return rows.Err()
}

func scanCase(row pgx.Row) (models.FraudCaseRecord, error) {
	var rec models.FraudCaseRecord
	var fraudType string
	var penalty pgtype.Float8
	var sourceURL, description, caseNumber pgtype.Text
	var identifiers []byte

	err := row.Scan(
		&rec.ID,
		&rec.CompanyName,
		&rec.CaseDate,
		&fraudType,
		&penalty,
		&rec.Jurisdiction,
		&rec.Source,
		&sourceURL,
		&description,
		&rec.IsSynthetic,
		&caseNumber,
		&identifiers,
	)
	if err != nil {
		return models.FraudCaseRecord{}, err
	}

	rec.FraudType = models.FraudType(fraudType)
	rec.PenaltyAmount = float8ToFloatPtr(penalty)
	rec.SourceURL = nullTextToString(sourceURL)
	rec.Description = nullTextToString(description)
	rec.CaseNumber = nullTextToString(caseNumber)
	rec.Identifiers = jsonToIdentifiers(identifiers)
	return rec, nil
}
