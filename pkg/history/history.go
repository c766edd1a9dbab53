package history

import (
	"log"

	"github.com/naruerongk-png/inventory/internal/repository"
	"github.com/naruerongk-png/inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

// Trail appends to and reads the general action-history table. Writes are
// best-effort: a failed history insert must never fail the operation that
// produced it.
type Trail struct {
	r *repository.Repository
}

func NewTrail(r *repository.Repository) *Trail {
	return &Trail{r: r}
}

func (t *Trail) Log(tag string, action string, details string) {
	query := t.r.GoquDBWrapper.Insert("history").
		Rows(goqu.Record{
			"asset_tag": tag,
			"action":    action,
			"details":   details,
		})

	if _, err := query.Executor().Exec(); err != nil {
		log.Println("Unable to create history entry for tag", tag, ":", err)
	}
}

func (t *Trail) GetByTag(tag string) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	query := t.r.GoquDBWrapper.
		From("history").
		Select("id", "asset_tag", "action", "details", "timestamp").
		Where(goqu.Ex{"asset_tag": tag}).
		Order(goqu.I("timestamp").Desc())

	if err := query.Executor().ScanStructs(&entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (t *Trail) List(limit uint) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	query := t.r.GoquDBWrapper.
		From("history").
		Select("id", "asset_tag", "action", "details", "timestamp").
		Order(goqu.I("timestamp").Desc()).
		Limit(limit)

	if err := query.Executor().ScanStructs(&entries); err != nil {
		return nil, err
	}

	return entries, nil
}
