package assets

import (
	"fmt"
	"time"

	"github.com/naruerongk-png/inventory/pkg/history"
	"github.com/naruerongk-png/inventory/pkg/metadata"
	"github.com/naruerongk-png/inventory/pkg/models"

	custom_error "github.com/naruerongk-png/inventory/pkg/errors"
)

// AssetService is the write path for the local asset store. Every mutation
// lands a history entry as a side effect.
type AssetService struct {
	assetsRepo *AssetsRepository
	trail      *history.Trail
}

func NewAssetService(assetsRepo *AssetsRepository, trail *history.Trail) *AssetService {
	return &AssetService{
		assetsRepo: assetsRepo,
		trail:      trail,
	}
}

// Create handles direct local entry: the tag is mandatory here, unlike the
// sync path which inserts untagged records.
func (s *AssetService) Create(req models.CreateAssetRequest) (*models.Asset, error) {
	if req.Tag == "" {
		return nil, custom_error.NewValidationError("Asset Tag cannot be empty")
	}
	if len(req.Tag) > 50 {
		return nil, custom_error.NewValidationError("Asset Tag is too long")
	}

	status := req.Status
	if status == "" {
		status = metadata.StatusInStock.String()
	}
	if _, err := metadata.NewStatus(status); err != nil {
		return nil, custom_error.NewValidationError(err.Error())
	}

	department := req.Department
	if department == "" {
		department = "Common"
	}

	tag := req.Tag
	asset := models.Asset{
		Tag:          &tag,
		Category:     req.Category,
		Model:        req.Model,
		Serial:       req.Serial,
		Status:       status,
		AssignedTo:   req.AssignedTo,
		Vendor:       req.Vendor,
		Department:   department,
		Specs:        req.Specs,
		PurchaseDate: req.PurchaseDate,
		WarrantyDate: req.WarrantyDate,
		Price:        req.Price,
	}

	id, err := s.Insert(asset)
	if err != nil {
		return nil, err
	}

	return s.assetsRepo.GetByID(id)
}

// Insert persists a record and logs it. Used directly by the synchronizer
// for records arriving without a tag.
func (s *AssetService) Insert(asset models.Asset) (int, error) {
	id, err := s.assetsRepo.Insert(asset)
	if err != nil {
		return 0, err
	}

	s.trail.Log(tagOrEmpty(asset.Tag), "CREATE", "Added: "+asset.Model)
	return id, nil
}

func (s *AssetService) GetByTag(tag string) (*models.Asset, error) {
	return s.assetsRepo.GetByTag(tag)
}

func (s *AssetService) GetByGLPIID(glpiID int64) (*models.Asset, error) {
	return s.assetsRepo.GetByGLPIID(glpiID)
}

func (s *AssetService) List(filter ListFilter) ([]models.Asset, error) {
	return s.assetsRepo.GetAssetList(filter)
}

// UpdateByTag and UpdateByGLPIID accept status as an open string: the
// remote system's state names are not constrained to the local workflow
// set, and sync must be able to write them through unchanged.
func (s *AssetService) UpdateByTag(tag string, changes models.AssetChanges) error {
	if err := s.assetsRepo.UpdateByTag(tag, changes); err != nil {
		return err
	}

	s.trail.Log(tag, "UPDATE", updateDetails(changes))
	return nil
}

func (s *AssetService) UpdateByGLPIID(glpiID int64, changes models.AssetChanges) error {
	asset, err := s.assetsRepo.GetByGLPIID(glpiID)
	if err != nil {
		return err
	}

	if err := s.assetsRepo.UpdateByGLPIID(glpiID, changes); err != nil {
		return err
	}

	s.trail.Log(tagOrEmpty(asset.Tag), "UPDATE", updateDetails(changes))
	return nil
}

// AssignTag gives a synced, untagged record its human inventory label.
func (s *AssetService) AssignTag(glpiID int64, tag string) error {
	if tag == "" {
		return custom_error.NewValidationError("Asset Tag cannot be empty")
	}

	asset, err := s.assetsRepo.GetByGLPIID(glpiID)
	if err != nil {
		return err
	}
	if asset.Tag != nil && *asset.Tag != "" {
		return custom_error.NewConflictError("Asset already has a tag: " + *asset.Tag)
	}

	if err := s.assetsRepo.UpdateByGLPIID(glpiID, models.AssetChanges{Tag: &tag}); err != nil {
		return err
	}

	s.trail.Log(tag, "TAG_ASSIGN", fmt.Sprintf("Tag assigned to GLPI asset %d", glpiID))
	return nil
}

// Audit stamps today's date as the last audit date.
func (s *AssetService) Audit(tag string) error {
	today := time.Now().Format("2006-01-02")
	if err := s.assetsRepo.StampAudit(tag, today); err != nil {
		return err
	}

	s.trail.Log(tag, "AUDIT", "Checked on "+today)
	return nil
}

func (s *AssetService) Archive(tag string) error {
	if err := s.assetsRepo.Archive(tag); err != nil {
		return err
	}

	s.trail.Log(tag, "DELETE", "Moved to Bin")
	return nil
}

func (s *AssetService) Restore(tag string) error {
	if err := s.assetsRepo.Restore(tag); err != nil {
		return err
	}

	s.trail.Log(tag, "RESTORE", "Restored from Bin")
	return nil
}

func (s *AssetService) ListArchived() ([]models.ArchivedAsset, error) {
	return s.assetsRepo.GetArchivedList()
}

func (s *AssetService) History(tag string) ([]models.HistoryEntry, error) {
	return s.trail.GetByTag(tag)
}

func (s *AssetService) RecentHistory(limit uint) ([]models.HistoryEntry, error) {
	return s.trail.List(limit)
}

func tagOrEmpty(tag *string) string {
	if tag == nil {
		return ""
	}
	return *tag
}

func updateDetails(changes models.AssetChanges) string {
	if changes.Status != nil {
		return "Status: " + *changes.Status
	}
	return "Fields updated"
}
