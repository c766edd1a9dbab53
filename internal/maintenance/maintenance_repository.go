package maintenance

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/naruerongk-png/inventory/internal/repository"
	custom_error "github.com/naruerongk-png/inventory/pkg/errors"
	"github.com/naruerongk-png/inventory/pkg/metadata"
	"github.com/naruerongk-png/inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

const (
	repairOpen      = "In Repair"
	repairCompleted = "Completed"
)

type MaintenanceRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *MaintenanceRepository {
	return &MaintenanceRepository{
		repository: r,
	}
}

// SendRepair pushes an asset into repair: status flipped, assignee set to
// the vendor, an open maintenance row created. One transaction.
func (r *MaintenanceRepository) SendRepair(tag string, vendor string, issue string) error {
	if err := r.assertAssetExists(tag); err != nil {
		return err
	}

	dateSent := time.Now().Format("2006-01-02")

	return repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		_, err := tx.Update("assets").
			Set(goqu.Record{
				"status":       metadata.StatusRepair.String(),
				"assigned_to":  vendor,
				"last_updated": goqu.L("CURRENT_TIMESTAMP"),
			}).
			Where(goqu.Ex{"asset_tag": tag}).
			Executor().Exec()
		if err != nil {
			return fmt.Errorf("failed to mark asset as in repair: %w", err)
		}

		_, err = tx.Insert("maintenance_logs").
			Rows(goqu.Record{
				"asset_tag": tag,
				"vendor":    vendor,
				"issue":     issue,
				"date_sent": dateSent,
				"status":    repairOpen,
			}).
			Executor().Exec()
		if err != nil {
			return fmt.Errorf("failed to insert maintenance log: %w", err)
		}

		return nil
	})
}

// FinishRepair takes an asset back into stock and completes its open
// maintenance row with the received date and cost.
func (r *MaintenanceRepository) FinishRepair(tag string, cost float64) error {
	if err := r.assertAssetExists(tag); err != nil {
		return err
	}

	dateReceived := time.Now().Format("2006-01-02")

	return repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		_, err := tx.Update("assets").
			Set(goqu.Record{
				"status":       metadata.StatusInStock.String(),
				"assigned_to":  "",
				"last_updated": goqu.L("CURRENT_TIMESTAMP"),
			}).
			Where(goqu.Ex{"asset_tag": tag}).
			Executor().Exec()
		if err != nil {
			return fmt.Errorf("failed to mark asset as repaired: %w", err)
		}

		_, err = tx.Update("maintenance_logs").
			Set(goqu.Record{
				"date_received": dateReceived,
				"cost":          cost,
				"status":        repairCompleted,
			}).
			Where(goqu.Ex{
				"asset_tag": tag,
				"status":    repairOpen,
			}).
			Executor().Exec()
		if err != nil {
			return fmt.Errorf("failed to complete maintenance log: %w", err)
		}

		return nil
	})
}

func (r *MaintenanceRepository) GetMaintenanceLogs(limit uint) ([]models.MaintenanceLog, error) {
	var logs []models.MaintenanceLog
	query := r.repository.GoquDBWrapper.
		From("maintenance_logs").
		Select("id", "asset_tag", "vendor", "issue", "date_sent", "date_received", "cost", "status", "timestamp").
		Order(goqu.I("timestamp").Desc()).
		Limit(limit)

	if err := query.Executor().ScanStructs(&logs); err != nil {
		return nil, fmt.Errorf("unable to select maintenance logs: %w", err)
	}

	return logs, nil
}

func (r *MaintenanceRepository) assertAssetExists(tag string) error {
	var id int
	query := r.repository.GoquDBWrapper.
		From("assets").
		Select("id").
		Where(goqu.Ex{"asset_tag": tag})

	found, err := query.Executor().ScanVal(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return custom_error.NewNotFoundError("asset")
		}
		return fmt.Errorf("unable to look up asset: %w", err)
	}
	if !found {
		return custom_error.NewNotFoundError("asset")
	}

	return nil
}
