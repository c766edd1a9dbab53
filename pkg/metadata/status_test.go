package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStatus(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{
			name:  "In Stock",
			value: "In Stock",
		},
		{
			name:  "Lost",
			value: "Lost",
		},
		{
			name:    "unknown value",
			value:   "Broken",
			wantErr: true,
		},
		{
			name:    "empty value",
			value:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := NewStatus(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.value, status.String())
		})
	}
}

func TestStatusBorrowable(t *testing.T) {
	assert.True(t, StatusInStock.Borrowable())
	assert.True(t, StatusRetired.Borrowable())
	assert.False(t, StatusInUse.Borrowable())
	assert.False(t, StatusRepair.Borrowable())
	assert.False(t, StatusLost.Borrowable())
}
