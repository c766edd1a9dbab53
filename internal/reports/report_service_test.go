package reports

import (
	"testing"
	"time"

	"github.com/naruerongk-png/inventory/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestCurrentValue(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name     string
		asset    models.Asset
		expected float64
		delta    float64
	}{
		{
			name:     "no purchase date keeps full price",
			asset:    models.Asset{Price: 1000},
			expected: 1000,
		},
		{
			name:     "empty purchase date keeps full price",
			asset:    models.Asset{Price: 1000, PurchaseDate: strPtr("")},
			expected: 1000,
		},
		{
			name:     "unparsable purchase date keeps full price",
			asset:    models.Asset{Price: 1000, PurchaseDate: strPtr("not-a-date")},
			expected: 1000,
		},
		{
			name:     "brand new asset keeps full price",
			asset:    models.Asset{Price: 1000, PurchaseDate: strPtr("2026-06-01")},
			expected: 1000,
		},
		{
			name:     "halfway through lifespan loses half",
			asset:    models.Asset{Price: 1000, PurchaseDate: strPtr("2023-12-01")},
			expected: 500,
			delta:    5,
		},
		{
			name:     "fully depreciated asset floors at zero",
			asset:    models.Asset{Price: 1000, PurchaseDate: strPtr("2015-01-01")},
			expected: 0,
		},
		{
			name:     "zero price stays zero",
			asset:    models.Asset{Price: 0, PurchaseDate: strPtr("2024-01-01")},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentValue(tt.asset, now)
			if tt.delta > 0 {
				assert.InDelta(t, tt.expected, got, tt.delta)
			} else {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestWarrantyExpired(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	strPtr := func(s string) *string { return &s }

	assert.False(t, warrantyExpired(models.Asset{}, now))
	assert.False(t, warrantyExpired(models.Asset{WarrantyDate: strPtr("2027-01-01")}, now))
	assert.True(t, warrantyExpired(models.Asset{WarrantyDate: strPtr("2025-01-01")}, now))
	assert.False(t, warrantyExpired(models.Asset{WarrantyDate: strPtr("bad")}, now))
}
