package models

import "time"

// HistoryEntry is one row of the general action-history trail. Every
// mutating store operation appends one.
type HistoryEntry struct {
	ID        int       `json:"id" db:"id"`
	AssetTag  string    `json:"asset_tag" db:"asset_tag"`
	Action    string    `json:"action" db:"action"`
	Details   string    `json:"details" db:"details"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// BorrowLog records a BORROW or RETURN event.
type BorrowLog struct {
	ID           int       `json:"id" db:"id"`
	AssetTag     string    `json:"asset_tag" db:"asset_tag"`
	BorrowerName string    `json:"borrower_name" db:"borrower_name"`
	Action       string    `json:"action" db:"action"`
	Note         string    `json:"note" db:"note"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
}

// MaintenanceLog records a repair round trip for one asset.
type MaintenanceLog struct {
	ID           int       `json:"id" db:"id"`
	AssetTag     string    `json:"asset_tag" db:"asset_tag"`
	Vendor       string    `json:"vendor" db:"vendor"`
	Issue        string    `json:"issue" db:"issue"`
	DateSent     *string   `json:"date_sent" db:"date_sent"`
	DateReceived *string   `json:"date_received" db:"date_received"`
	Cost         *float64  `json:"cost" db:"cost"`
	Status       string    `json:"status" db:"status"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
}
