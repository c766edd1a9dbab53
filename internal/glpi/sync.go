package glpi

import (
	"go.uber.org/zap"

	custom_error "github.com/naruerongk-png/inventory/pkg/errors"
	"github.com/naruerongk-png/inventory/pkg/models"
)

// AssetStore is the slice of the local store the synchronizer needs.
type AssetStore interface {
	GetByGLPIID(glpiID int64) (*models.Asset, error)
	UpdateByGLPIID(glpiID int64, changes models.AssetChanges) error
	Insert(asset models.Asset) (int, error)
}

// Result summarizes one reconciliation batch.
type Result struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Errors   int `json:"errors"`
}

// Synchronizer reconciles remote records against the local store, keyed by
// the GLPI id. At most one write per record; locally-owned fields (tag,
// price, warranty date, department, specs) are never touched on update.
type Synchronizer struct {
	store  AssetStore
	logger *zap.Logger
}

func NewSynchronizer(store AssetStore, logger *zap.Logger) *Synchronizer {
	return &Synchronizer{
		store:  store,
		logger: logger,
	}
}

// Sync runs the batch. Per-record store failures are counted and the batch
// carries on; one bad record must not block the rest.
func (s *Synchronizer) Sync(computers []Computer) Result {
	var result Result

	for _, computer := range computers {
		glpiID, ok := computer.ExternalID()
		if !ok {
			// The source system has not committed an id yet; nothing to
			// reconcile against. Not an error.
			continue
		}

		existing, err := s.store.GetByGLPIID(glpiID)
		if err != nil && !custom_error.IsNotFound(err) {
			s.logger.Error("sync lookup failed", zap.Int64("glpi_id", glpiID), zap.Error(err))
			result.Errors++
			continue
		}

		if existing != nil {
			changes := remoteChanges(computer, existing)
			if err := s.store.UpdateByGLPIID(glpiID, changes); err != nil {
				s.logger.Error("sync update failed", zap.Int64("glpi_id", glpiID), zap.Error(err))
				result.Errors++
				continue
			}
			result.Updated++
			continue
		}

		if _, err := s.store.Insert(newRemoteAsset(computer, glpiID)); err != nil {
			s.logger.Error("sync insert failed", zap.Int64("glpi_id", glpiID), zap.Error(err))
			result.Errors++
			continue
		}
		result.Inserted++
	}

	return result
}

// remoteChanges builds the restricted update for an existing record: only
// remote-owned fields, with the stored acquisition date as fallback when
// the remote value is absent.
func remoteChanges(c Computer, existing *models.Asset) models.AssetChanges {
	category := categoryOrDefault(c)
	model := c.Model.String()
	serial := c.Serial.String()
	status := statusOrDefault(c)
	assignedTo := c.User.String()
	vendor := c.Manufacturer.String()

	purchaseDate := c.AcquisitionDate()
	if purchaseDate == nil {
		purchaseDate = existing.PurchaseDate
	}

	return models.AssetChanges{
		Category:     &category,
		Model:        &model,
		Serial:       &serial,
		Status:       &status,
		AssignedTo:   &assignedTo,
		Vendor:       &vendor,
		PurchaseDate: purchaseDate,
	}
}

// newRemoteAsset builds the initial record for an unseen GLPI id: no tag
// (a human assigns one later), price zero, department placeholder.
func newRemoteAsset(c Computer, glpiID int64) models.Asset {
	return models.Asset{
		GLPIID:       &glpiID,
		Category:     categoryOrDefault(c),
		Model:        c.Model.String(),
		Serial:       c.Serial.String(),
		Status:       statusOrDefault(c),
		AssignedTo:   c.User.String(),
		Vendor:       c.Manufacturer.String(),
		Department:   "Common",
		Specs:        "",
		Price:        0,
		PurchaseDate: c.AcquisitionDate(),
	}
}

func categoryOrDefault(c Computer) string {
	if c.Type.String() == "" {
		return "Other"
	}
	return c.Type.String()
}

func statusOrDefault(c Computer) string {
	if c.State.String() == "" {
		return "In Stock"
	}
	return c.State.String()
}
