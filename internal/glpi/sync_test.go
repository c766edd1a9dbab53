package glpi

import (
	"encoding/json"
	"errors"
	"testing"

	custom_error "github.com/naruerongk-png/inventory/pkg/errors"
	"github.com/naruerongk-png/inventory/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockAssetStore struct {
	mock.Mock
}

func (m *MockAssetStore) GetByGLPIID(glpiID int64) (*models.Asset, error) {
	args := m.Called(glpiID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetStore) UpdateByGLPIID(glpiID int64, changes models.AssetChanges) error {
	args := m.Called(glpiID, changes)
	return args.Error(0)
}

func (m *MockAssetStore) Insert(asset models.Asset) (int, error) {
	args := m.Called(asset)
	return args.Int(0), args.Error(1)
}

func computerFromJSON(t *testing.T, raw string) Computer {
	t.Helper()
	var c Computer
	assert.NoError(t, json.Unmarshal([]byte(raw), &c))
	return c
}

func TestSyncInsertsUnknownRecord(t *testing.T) {
	store := new(MockAssetStore)
	sync := NewSynchronizer(store, zap.NewNop())

	computer := computerFromJSON(t, `{
		"id": 7,
		"computermodels_id": "ThinkPad T14",
		"serial": "SN-777",
		"computertypes_id": "Laptop",
		"states_id": "In Use",
		"users_id": "jdoe",
		"manufacturers_id": "Lenovo",
		"date_mod": "2026-01-15 09:30:00"
	}`)

	store.On("GetByGLPIID", int64(7)).Return(nil, custom_error.NewNotFoundError("asset"))
	store.On("Insert", mock.MatchedBy(func(asset models.Asset) bool {
		return asset.GLPIID != nil && *asset.GLPIID == 7 &&
			asset.Tag == nil &&
			asset.Price == 0 &&
			asset.Department == "Common" &&
			asset.Specs == "" &&
			asset.Model == "ThinkPad T14" &&
			asset.Category == "Laptop" &&
			asset.Status == "In Use" &&
			asset.PurchaseDate != nil && *asset.PurchaseDate == "2026-01-15"
	})).Return(1, nil)

	result := sync.Sync([]Computer{computer})

	assert.Equal(t, Result{Inserted: 1}, result)
	store.AssertExpectations(t)
}

func TestSyncUpdateTouchesOnlyRemoteOwnedFields(t *testing.T) {
	store := new(MockAssetStore)
	sync := NewSynchronizer(store, zap.NewNop())

	computer := computerFromJSON(t, `{
		"id": 42,
		"computermodels_id": "OptiPlex 7010",
		"serial": "SN-042",
		"computertypes_id": "Desktop",
		"states_id": "In Stock",
		"users_id": 0,
		"manufacturers_id": "Dell",
		"date_mod": "2026-02-01 12:00:00"
	}`)

	tag := "IT-0042"
	existing := &models.Asset{ID: 5, Tag: &tag, Price: 900, Department: "Finance"}

	store.On("GetByGLPIID", int64(42)).Return(existing, nil)
	store.On("UpdateByGLPIID", int64(42), mock.MatchedBy(func(changes models.AssetChanges) bool {
		// Locally-owned fields must stay untouched.
		if changes.Tag != nil || changes.Price != nil || changes.WarrantyDate != nil ||
			changes.Department != nil || changes.Specs != nil {
			return false
		}
		return changes.Model != nil && *changes.Model == "OptiPlex 7010" &&
			changes.Category != nil && *changes.Category == "Desktop" &&
			changes.Status != nil && *changes.Status == "In Stock" &&
			changes.AssignedTo != nil && *changes.AssignedTo == "0" &&
			changes.Vendor != nil && *changes.Vendor == "Dell" &&
			changes.PurchaseDate != nil && *changes.PurchaseDate == "2026-02-01"
	})).Return(nil)

	result := sync.Sync([]Computer{computer})

	assert.Equal(t, Result{Updated: 1}, result)
	store.AssertExpectations(t)
}

func TestSyncKeepsStoredPurchaseDateWhenRemoteHasNone(t *testing.T) {
	store := new(MockAssetStore)
	sync := NewSynchronizer(store, zap.NewNop())

	computer := computerFromJSON(t, `{"id": 9, "computermodels_id": "MacBook Air"}`)

	stored := "2023-05-20"
	existing := &models.Asset{ID: 2, PurchaseDate: &stored}

	store.On("GetByGLPIID", int64(9)).Return(existing, nil)
	store.On("UpdateByGLPIID", int64(9), mock.MatchedBy(func(changes models.AssetChanges) bool {
		return changes.PurchaseDate != nil && *changes.PurchaseDate == stored
	})).Return(nil)

	result := sync.Sync([]Computer{computer})

	assert.Equal(t, Result{Updated: 1}, result)
	store.AssertExpectations(t)
}

func TestSyncAppliesDefaultsForEmptyReferenceFields(t *testing.T) {
	store := new(MockAssetStore)
	sync := NewSynchronizer(store, zap.NewNop())

	// Unset dropdowns arrive as 0; empty strings fall back to the defaults.
	computer := computerFromJSON(t, `{"id": 3, "computertypes_id": "", "states_id": ""}`)

	store.On("GetByGLPIID", int64(3)).Return(nil, custom_error.NewNotFoundError("asset"))
	store.On("Insert", mock.MatchedBy(func(asset models.Asset) bool {
		return asset.Category == "Other" && asset.Status == "In Stock"
	})).Return(1, nil)

	result := sync.Sync([]Computer{computer})

	assert.Equal(t, Result{Inserted: 1}, result)
	store.AssertExpectations(t)
}

func TestSyncSkipsRecordsWithoutUsableID(t *testing.T) {
	store := new(MockAssetStore)
	sync := NewSynchronizer(store, zap.NewNop())

	computers := []Computer{
		computerFromJSON(t, `{"computermodels_id": "No ID"}`),
		computerFromJSON(t, `{"id": "not-a-number", "computermodels_id": "Garbage ID"}`),
	}

	result := sync.Sync(computers)

	// Skips are not failures.
	assert.Equal(t, Result{}, result)
	store.AssertNotCalled(t, "GetByGLPIID", mock.Anything)
	store.AssertNotCalled(t, "Insert", mock.Anything)
}

func TestSyncCountsErrorsAndContinues(t *testing.T) {
	store := new(MockAssetStore)
	sync := NewSynchronizer(store, zap.NewNop())

	computers := []Computer{
		computerFromJSON(t, `{"id": 1}`),
		computerFromJSON(t, `{"id": 2}`),
		computerFromJSON(t, `{"id": 3}`),
	}

	store.On("GetByGLPIID", int64(1)).Return(nil, errors.New("disk I/O error"))
	store.On("GetByGLPIID", int64(2)).Return(nil, custom_error.NewNotFoundError("asset"))
	store.On("Insert", mock.MatchedBy(func(asset models.Asset) bool {
		return asset.GLPIID != nil && *asset.GLPIID == 2
	})).Return(0, errors.New("constraint failed"))
	store.On("GetByGLPIID", int64(3)).Return(&models.Asset{ID: 3}, nil)
	store.On("UpdateByGLPIID", int64(3), mock.Anything).Return(nil)

	result := sync.Sync(computers)

	assert.Equal(t, Result{Updated: 1, Errors: 2}, result)
	store.AssertExpectations(t)
}
