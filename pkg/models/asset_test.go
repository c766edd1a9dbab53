package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArchiveRoundTrip(t *testing.T) {
	tag := "IT-0001"
	glpiID := int64(42)
	purchase := "2024-03-01"
	audit := "2026-01-10"

	original := Asset{
		ID:            17,
		Tag:           &tag,
		GLPIID:        &glpiID,
		Category:      "Laptop",
		Model:         "ThinkPad T14",
		Serial:        "SN-001",
		Status:        "In Use",
		AssignedTo:    "jdoe",
		Vendor:        "Lenovo",
		Department:    "Finance",
		Specs:         "16GB RAM",
		Location:      "HQ 3F",
		Comment:       "spare charger included",
		PurchaseDate:  &purchase,
		LastAuditDate: &audit,
		Price:         1200,
	}

	restored := func() Asset {
		archived := original.ToArchived()
		return archived.ToAsset()
	}()

	// Row ids belong to their own table; everything else must survive.
	original.ID = 0
	assert.Equal(t, original, restored)
}

func TestToArchivedDropsRowID(t *testing.T) {
	original := Asset{ID: 99, Model: "OptiPlex"}
	archived := original.ToArchived()
	assert.Zero(t, archived.ID)
	assert.Equal(t, "OptiPlex", archived.Model)
}
