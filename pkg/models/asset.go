package models

import "time"

// Asset is a single inventory record in the active store. Tag and GLPIID
// are both optional: a manually entered asset has a tag and no GLPI id,
// a freshly synced one has a GLPI id and no tag until someone labels it.
type Asset struct {
	ID            int       `json:"id" db:"id"`
	Tag           *string   `json:"asset_tag" db:"asset_tag"`
	GLPIID        *int64    `json:"glpi_id" db:"glpi_id"`
	Category      string    `json:"category" db:"category"`
	Model         string    `json:"model" db:"model"`
	Serial        string    `json:"serial_number" db:"serial_number"`
	Status        string    `json:"status" db:"status"`
	AssignedTo    string    `json:"assigned_to" db:"assigned_to"`
	Vendor        string    `json:"vendor" db:"vendor"`
	Department    string    `json:"department" db:"department"`
	Specs         string    `json:"specs" db:"specs"`
	Location      string    `json:"location" db:"location"`
	Comment       string    `json:"comment" db:"comment"`
	PurchaseDate  *string   `json:"purchase_date" db:"purchase_date"`
	WarrantyDate  *string   `json:"warranty_date" db:"warranty_date"`
	LastAuditDate *string   `json:"last_audit_date" db:"last_audit_date"`
	Price         float64   `json:"price" db:"price"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	LastUpdated   time.Time `json:"last_updated" db:"last_updated"`
}

// ArchivedAsset mirrors Asset in the recycle bin table.
type ArchivedAsset struct {
	ID            int       `json:"id" db:"id"`
	Tag           *string   `json:"asset_tag" db:"asset_tag"`
	GLPIID        *int64    `json:"glpi_id" db:"glpi_id"`
	Category      string    `json:"category" db:"category"`
	Model         string    `json:"model" db:"model"`
	Serial        string    `json:"serial_number" db:"serial_number"`
	Status        string    `json:"status" db:"status"`
	AssignedTo    string    `json:"assigned_to" db:"assigned_to"`
	Vendor        string    `json:"vendor" db:"vendor"`
	Department    string    `json:"department" db:"department"`
	Specs         string    `json:"specs" db:"specs"`
	Location      string    `json:"location" db:"location"`
	Comment       string    `json:"comment" db:"comment"`
	PurchaseDate  *string   `json:"purchase_date" db:"purchase_date"`
	WarrantyDate  *string   `json:"warranty_date" db:"warranty_date"`
	LastAuditDate *string   `json:"last_audit_date" db:"last_audit_date"`
	Price         float64   `json:"price" db:"price"`
	DeletedAt     time.Time `json:"deleted_at" db:"deleted_at"`
}

// ToArchived maps an active record onto the recycle bin shape, field by
// field. The two shapes must never be copied positionally.
func (a *Asset) ToArchived() ArchivedAsset {
	return ArchivedAsset{
		Tag:           a.Tag,
		GLPIID:        a.GLPIID,
		Category:      a.Category,
		Model:         a.Model,
		Serial:        a.Serial,
		Status:        a.Status,
		AssignedTo:    a.AssignedTo,
		Vendor:        a.Vendor,
		Department:    a.Department,
		Specs:         a.Specs,
		Location:      a.Location,
		Comment:       a.Comment,
		PurchaseDate:  a.PurchaseDate,
		WarrantyDate:  a.WarrantyDate,
		LastAuditDate: a.LastAuditDate,
		Price:         a.Price,
	}
}

// ToAsset maps an archived record back onto the active shape. The internal
// id is not carried over; a restore gets a fresh one from the store.
func (a *ArchivedAsset) ToAsset() Asset {
	return Asset{
		Tag:           a.Tag,
		GLPIID:        a.GLPIID,
		Category:      a.Category,
		Model:         a.Model,
		Serial:        a.Serial,
		Status:        a.Status,
		AssignedTo:    a.AssignedTo,
		Vendor:        a.Vendor,
		Department:    a.Department,
		Specs:         a.Specs,
		Location:      a.Location,
		Comment:       a.Comment,
		PurchaseDate:  a.PurchaseDate,
		WarrantyDate:  a.WarrantyDate,
		LastAuditDate: a.LastAuditDate,
		Price:         a.Price,
	}
}

// AssetChanges is a partial field set for updates. Nil means "leave alone".
type AssetChanges struct {
	Tag          *string  `json:"asset_tag"`
	Category     *string  `json:"category"`
	Model        *string  `json:"model"`
	Serial       *string  `json:"serial_number"`
	Status       *string  `json:"status"`
	AssignedTo   *string  `json:"assigned_to"`
	Vendor       *string  `json:"vendor"`
	Department   *string  `json:"department"`
	Specs        *string  `json:"specs"`
	Location     *string  `json:"location"`
	Comment      *string  `json:"comment"`
	PurchaseDate *string  `json:"purchase_date"`
	WarrantyDate *string  `json:"warranty_date"`
	Price        *float64 `json:"price"`
}

type CreateAssetRequest struct {
	Tag          string  `json:"asset_tag" binding:"required"`
	Category     string  `json:"category"`
	Model        string  `json:"model" binding:"required"`
	Serial       string  `json:"serial_number"`
	Status       string  `json:"status"`
	AssignedTo   string  `json:"assigned_to"`
	Vendor       string  `json:"vendor"`
	Department   string  `json:"department"`
	Specs        string  `json:"specs"`
	PurchaseDate *string `json:"purchase_date"`
	WarrantyDate *string `json:"warranty_date"`
	Price        float64 `json:"price"`
}
