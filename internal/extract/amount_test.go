package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
		ok   bool
	}{
		{"plain with separators", "$50,000", 50_000, true},
		{"million suffix", "$4.5 million", 4_500_000, true},
		{"billion suffix", "$2 billion", 2_000_000_000, true},
		{"full separators billion scale", "$1,700,000,000", 1_700_000_000, true},
		{"spelled dollars", "250 million dollars", 250_000_000, true},
		{"billion wins over million", "$1.5 billion million", 1_500_000_000, true},
		{"no currency symbol", "12,500", 12_500, true},
		{"not numeric", "not a number", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.in)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}

func TestMaxAmount(t *testing.T) {
	t.Run("largest qualifying amount wins", func(t *testing.T) {
		got, ok := MaxAmount([]string{"$50,000", "$4 million", "$350"})
		require.True(t, ok)
		assert.InDelta(t, 4_000_000.0, got, 0.001)
	})

	t.Run("amounts at or below the floor are ignored", func(t *testing.T) {
		_, ok := MaxAmount([]string{"$10,000", "$9,999", "$400"})
		assert.False(t, ok)
	})

	t.Run("no snippets", func(t *testing.T) {
		_, ok := MaxAmount(nil)
		assert.False(t, ok)
	})

	t.Run("unparseable snippets are skipped", func(t *testing.T) {
		got, ok := MaxAmount([]string{"substantial sums", "$25,000"})
		require.True(t, ok)
		assert.InDelta(t, 25_000.0, got, 0.001)
	})
}
