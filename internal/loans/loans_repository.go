package loans

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/naruerongk-png/inventory/internal/repository"
	custom_error "github.com/naruerongk-png/inventory/pkg/errors"
	"github.com/naruerongk-png/inventory/pkg/metadata"
	"github.com/naruerongk-png/inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type LoansRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *LoansRepository {
	return &LoansRepository{
		repository: r,
	}
}

// Borrow hands an asset out: status to In Use, assignee set, a BORROW row
// appended. One transaction, so the log can never disagree with the asset.
func (r *LoansRepository) Borrow(tag string, borrower string, note string) error {
	status, err := r.currentStatus(tag)
	if err != nil {
		return err
	}
	if !metadata.Status(status).Borrowable() {
		return custom_error.NewConflictError(fmt.Sprintf("Asset is not available (Status: %s)", status))
	}

	return repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		_, err := tx.Update("assets").
			Set(goqu.Record{
				"status":       metadata.StatusInUse.String(),
				"assigned_to":  borrower,
				"last_updated": goqu.L("CURRENT_TIMESTAMP"),
			}).
			Where(goqu.Ex{"asset_tag": tag}).
			Executor().Exec()
		if err != nil {
			return fmt.Errorf("failed to mark asset as borrowed: %w", err)
		}

		_, err = tx.Insert("borrow_logs").
			Rows(goqu.Record{
				"asset_tag":     tag,
				"borrower_name": borrower,
				"action":        "BORROW",
				"note":          note,
			}).
			Executor().Exec()
		if err != nil {
			return fmt.Errorf("failed to insert borrow log: %w", err)
		}

		return nil
	})
}

// Return takes an asset back: status to In Stock, assignee cleared, a
// RETURN row appended.
func (r *LoansRepository) Return(tag string, note string) error {
	if _, err := r.currentStatus(tag); err != nil {
		return err
	}

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
			return fmt.Errorf("failed to mark asset as returned: %w", err)
		}

		_, err = tx.Insert("borrow_logs").
			Rows(goqu.Record{
				"asset_tag":     tag,
				"borrower_name": "",
				"action":        "RETURN",
				"note":          note,
			}).
			Executor().Exec()
		if err != nil {
			return fmt.Errorf("failed to insert return log: %w", err)
		}

		return nil
	})
}

func (r *LoansRepository) GetBorrowLogs(limit uint) ([]models.BorrowLog, error) {
	var logs []models.BorrowLog
	query := r.repository.GoquDBWrapper.
		From("borrow_logs").
		Select("id", "asset_tag", "borrower_name", "action", "note", "timestamp").
		Order(goqu.I("timestamp").Desc()).
		Limit(limit)

	if err := query.Executor().ScanStructs(&logs); err != nil {
		return nil, fmt.Errorf("unable to select borrow logs: %w", err)
	}

	return logs, nil
}

func (r *LoansRepository) currentStatus(tag string) (string, error) {
	var status string
	query := r.repository.GoquDBWrapper.
		From("assets").
		Select("status").
		Where(goqu.Ex{"asset_tag": tag})

	found, err := query.Executor().ScanVal(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", custom_error.NewNotFoundError("asset")
		}
		return "", fmt.Errorf("unable to read asset status: %w", err)
	}
	if !found {
		return "", custom_error.NewNotFoundError("asset")
	}

	return status, nil
}
