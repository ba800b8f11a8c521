package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fraudatlas/internal/domain/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		indicators []string
		want       []models.FraudType
	}{
		{
			name:       "single keyword",
			indicators: []string{"ponzi scheme"},
			want:       []models.FraudType{models.FraudTypePonziScheme},
		},
		{
			name:       "empty input defaults to securities fraud",
			indicators: nil,
			want:       []models.FraudType{models.FraudTypeSecuritiesFraud},
		},
		{
			name:       "unmatched language defaults to securities fraud",
			indicators: []string{"breach of fiduciary duty"},
			want:       []models.FraudType{models.FraudTypeSecuritiesFraud},
		},
		{
			name:       "table order decides output order",
			indicators: []string{"wire fraud", "Ponzi scheme"},
			want:       []models.FraudType{models.FraudTypePonziScheme, models.FraudTypeWireFraud},
		},
		{
			name:       "pump and dump maps to market manipulation",
			indicators: []string{"pump-and-dump"},
			want:       []models.FraudType{models.FraudTypeMarketManipulation},
		},
		{
			name:       "duplicate keywords collapse to one type",
			indicators: []string{"market manipulation", "pump and dump"},
			want:       []models.FraudType{models.FraudTypeMarketManipulation},
		},
		{
			name:       "case insensitive",
			indicators: []string{"INSIDER TRADING"},
			want:       []models.FraudType{models.FraudTypeInsiderTrading},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.indicators))
		})
	}
}
