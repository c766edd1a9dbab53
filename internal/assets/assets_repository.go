package assets

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/naruerongk-png/inventory/internal/repository"
	custom_error "github.com/naruerongk-png/inventory/pkg/errors"
	"github.com/naruerongk-png/inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

var assetColumns = []interface{}{
	"id", "asset_tag", "glpi_id", "category", "model", "serial_number",
	"status", "assigned_to", "vendor", "department", "specs", "location",
	"comment", "purchase_date", "warranty_date", "last_audit_date",
	"price", "created_at", "last_updated",
}

var archivedColumns = []interface{}{
	"id", "asset_tag", "glpi_id", "category", "model", "serial_number",
	"status", "assigned_to", "vendor", "department", "specs", "location",
	"comment", "purchase_date", "warranty_date", "last_audit_date",
	"price", "deleted_at",
}

type AssetsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssetsRepository {
	return &AssetsRepository{
		repository: r,
	}
}

// Insert validates and persists a new active record, returning its fresh
// internal id. Tag and GLPI id may be nil; when present they must be unique.
func (r *AssetsRepository) Insert(asset models.Asset) (int, error) {
	if strings.TrimSpace(asset.Model) == "" {
		return 0, custom_error.NewValidationError("Model cannot be empty")
	}
	if asset.Price < 0 {
		return 0, custom_error.NewValidationError("Price cannot be negative")
	}

	record := goqu.Record{
		"category":      asset.Category,
		"model":         asset.Model,
		"serial_number": asset.Serial,
		"status":        asset.Status,
		"assigned_to":   asset.AssignedTo,
		"vendor":        asset.Vendor,
		"department":    asset.Department,
		"specs":         asset.Specs,
		"location":      asset.Location,
		"comment":       asset.Comment,
		"price":         asset.Price,
	}
	if asset.Tag != nil {
		record["asset_tag"] = *asset.Tag
	}
	if asset.GLPIID != nil {
		record["glpi_id"] = *asset.GLPIID
	}
	if asset.PurchaseDate != nil {
		record["purchase_date"] = *asset.PurchaseDate
	}
	if asset.WarrantyDate != nil {
		record["warranty_date"] = *asset.WarrantyDate
	}
	if asset.LastAuditDate != nil {
		record["last_audit_date"] = *asset.LastAuditDate
	}

	query := r.repository.GoquDBWrapper.Insert("assets").Rows(record)

	result, err := query.Executor().Exec()
	if err != nil {
		return 0, custom_error.WrapDBError("Duplicate asset tag or GLPI id", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted asset id: %w", err)
	}

	return int(id), nil
}

func (r *AssetsRepository) GetByID(id int) (*models.Asset, error) {
	return r.fetchOne(goqu.Ex{"id": id})
}

func (r *AssetsRepository) GetByTag(tag string) (*models.Asset, error) {
	return r.fetchOne(goqu.Ex{"asset_tag": tag})
}

func (r *AssetsRepository) GetByGLPIID(glpiID int64) (*models.Asset, error) {
	return r.fetchOne(goqu.Ex{"glpi_id": glpiID})
}

func (r *AssetsRepository) fetchOne(condition goqu.Ex) (*models.Asset, error) {
	var asset models.Asset
	query := r.repository.GoquDBWrapper.
		From("assets").
		Select(assetColumns...).
		Where(condition)

	found, err := query.Executor().ScanStruct(&asset)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, custom_error.NewNotFoundError("asset")
		}
		return nil, fmt.Errorf("unable to select asset: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("asset")
	}

	return &asset, nil
}

// ListFilter narrows GetAssetList. Zero values mean "no filter".
type ListFilter struct {
	Query    string
	Status   string
	Category string
}

func (r *AssetsRepository) GetAssetList(filter ListFilter) ([]models.Asset, error) {
	query := r.repository.GoquDBWrapper.
		From("assets").
		Select(assetColumns...).
		Order(goqu.I("id").Asc())

	if filter.Status != "" {
		query = query.Where(goqu.Ex{"status": filter.Status})
	}
	if filter.Category != "" {
		query = query.Where(goqu.Ex{"category": filter.Category})
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where(goqu.Or(
			goqu.I("asset_tag").Like(pattern),
			goqu.I("model").Like(pattern),
			goqu.I("serial_number").Like(pattern),
			goqu.I("assigned_to").Like(pattern),
		))
	}

	var assets []models.Asset
	if err := query.Executor().ScanStructs(&assets); err != nil {
		return nil, fmt.Errorf("unable to select assets from database: %w", err)
	}

	return assets, nil
}

// UpdateByGLPIID applies a partial field set to the record carrying the
// given external id. Preferred over the tag path wherever an external id
// exists.
func (r *AssetsRepository) UpdateByGLPIID(glpiID int64, changes models.AssetChanges) error {
	return r.update(goqu.Ex{"glpi_id": glpiID}, changes)
}

// UpdateByTag is the legacy path for records that were never synced and
// have no external id.
func (r *AssetsRepository) UpdateByTag(tag string, changes models.AssetChanges) error {
	return r.update(goqu.Ex{"asset_tag": tag}, changes)
}

func (r *AssetsRepository) update(condition goqu.Ex, changes models.AssetChanges) error {
	record := goqu.Record{
		"last_updated": goqu.L("CURRENT_TIMESTAMP"),
	}

	if changes.Tag != nil {
		record["asset_tag"] = *changes.Tag
	}
	if changes.Category != nil {
		record["category"] = *changes.Category
	}
	if changes.Model != nil {
		if strings.TrimSpace(*changes.Model) == "" {
			return custom_error.NewValidationError("Model cannot be empty")
		}
		record["model"] = *changes.Model
	}
	if changes.Serial != nil {
		record["serial_number"] = *changes.Serial
	}
	if changes.Status != nil {
		record["status"] = *changes.Status
	}
	if changes.AssignedTo != nil {
		record["assigned_to"] = *changes.AssignedTo
	}
	if changes.Vendor != nil {
		record["vendor"] = *changes.Vendor
	}
	if changes.Department != nil {
		record["department"] = *changes.Department
	}
	if changes.Specs != nil {
		record["specs"] = *changes.Specs
	}
	if changes.Location != nil {
		record["location"] = *changes.Location
	}
	if changes.Comment != nil {
		record["comment"] = *changes.Comment
	}
	if changes.PurchaseDate != nil {
		record["purchase_date"] = *changes.PurchaseDate
	}
	if changes.WarrantyDate != nil {
		record["warranty_date"] = *changes.WarrantyDate
	}
	if changes.Price != nil {
		if *changes.Price < 0 {
			return custom_error.NewValidationError("Price cannot be negative")
		}
		record["price"] = *changes.Price
	}

	query := r.repository.GoquDBWrapper.
		Update("assets").
		Set(record).
		Where(condition)

	result, err := query.Executor().Exec()
	if err != nil {
		return custom_error.WrapDBError("Duplicate asset tag or GLPI id", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to confirm asset update: %w", err)
	}
	if affected == 0 {
		return custom_error.NewNotFoundError("asset")
	}

	return nil
}

// StampAudit sets the last audit date of a tagged asset to the given day.
func (r *AssetsRepository) StampAudit(tag string, date string) error {
	query := r.repository.GoquDBWrapper.
		Update("assets").
		Set(goqu.Record{
			"last_audit_date": date,
			"last_updated":    goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(goqu.Ex{"asset_tag": tag})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to stamp audit date: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return custom_error.NewNotFoundError("asset")
	}

	return nil
}

// Archive moves an active record into the recycle bin in one transaction.
func (r *AssetsRepository) Archive(tag string) error {
	asset, err := r.GetByTag(tag)
	if err != nil {
		return err
	}

	archived := asset.ToArchived()

	return repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		// A tag may have been archived before; the bin keeps one row per tag.
		if archived.Tag != nil {
			if _, err := tx.Delete("recycle_bin").Where(goqu.Ex{"asset_tag": *archived.Tag}).Executor().Exec(); err != nil {
				return fmt.Errorf("failed to clear stale recycle bin entry: %w", err)
			}
		}

		record := goqu.Record{
			"category":      archived.Category,
			"model":         archived.Model,
			"serial_number": archived.Serial,
			"status":        archived.Status,
			"assigned_to":   archived.AssignedTo,
			"vendor":        archived.Vendor,
			"department":    archived.Department,
			"specs":         archived.Specs,
			"location":      archived.Location,
			"comment":       archived.Comment,
			"price":         archived.Price,
		}
		if archived.Tag != nil {
			record["asset_tag"] = *archived.Tag
		}
		if archived.GLPIID != nil {
			record["glpi_id"] = *archived.GLPIID
		}
		if archived.PurchaseDate != nil {
			record["purchase_date"] = *archived.PurchaseDate
		}
		if archived.WarrantyDate != nil {
			record["warranty_date"] = *archived.WarrantyDate
		}
		if archived.LastAuditDate != nil {
			record["last_audit_date"] = *archived.LastAuditDate
		}

		if _, err := tx.Insert("recycle_bin").Rows(record).Executor().Exec(); err != nil {
			return fmt.Errorf("failed to move asset to recycle bin: %w", err)
		}

		if _, err := tx.Delete("assets").Where(goqu.Ex{"id": asset.ID}).Executor().Exec(); err != nil {
			return fmt.Errorf("failed to remove asset from active store: %w", err)
		}

		return nil
	})
}

// Restore moves an archived record back into the active store. Fails with
// a conflict when its tag or GLPI id has been taken in the meantime.
func (r *AssetsRepository) Restore(tag string) error {
	var archived models.ArchivedAsset
	query := r.repository.GoquDBWrapper.
		From("recycle_bin").
		Select(archivedColumns...).
		Where(goqu.Ex{"asset_tag": tag}).
		Order(goqu.I("deleted_at").Desc())

	found, err := query.Executor().ScanStruct(&archived)
	if err != nil {
		return fmt.Errorf("unable to select archived asset: %w", err)
	}
	if !found {
		return custom_error.NewNotFoundError("archived asset")
	}

	asset := archived.ToAsset()

	return repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		record := goqu.Record{
			"category":      asset.Category,
			"model":         asset.Model,
			"serial_number": asset.Serial,
			"status":        asset.Status,
			"assigned_to":   asset.AssignedTo,
			"vendor":        asset.Vendor,
			"department":    asset.Department,
			"specs":         asset.Specs,
			"location":      asset.Location,
			"comment":       asset.Comment,
			"price":         asset.Price,
		}
		if asset.Tag != nil {
			record["asset_tag"] = *asset.Tag
		}
		if asset.GLPIID != nil {
			record["glpi_id"] = *asset.GLPIID
		}
		if asset.PurchaseDate != nil {
			record["purchase_date"] = *asset.PurchaseDate
		}
		if asset.WarrantyDate != nil {
			record["warranty_date"] = *asset.WarrantyDate
		}
		if asset.LastAuditDate != nil {
			record["last_audit_date"] = *asset.LastAuditDate
		}

		if _, err := tx.Insert("assets").Rows(record).Executor().Exec(); err != nil {
			return custom_error.WrapDBError("An active asset already holds this tag or GLPI id", err)
		}

		if _, err := tx.Delete("recycle_bin").Where(goqu.Ex{"id": archived.ID}).Executor().Exec(); err != nil {
			return fmt.Errorf("failed to remove asset from recycle bin: %w", err)
		}

		return nil
	})
}

func (r *AssetsRepository) GetArchivedList() ([]models.ArchivedAsset, error) {
	var archived []models.ArchivedAsset
	query := r.repository.GoquDBWrapper.
		From("recycle_bin").
		Select(archivedColumns...).
		Order(goqu.I("deleted_at").Desc())

	if err := query.Executor().ScanStructs(&archived); err != nil {
		return nil, fmt.Errorf("unable to select archived assets: %w", err)
	}

	return archived, nil
}
