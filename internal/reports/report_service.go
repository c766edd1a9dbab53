package reports

import (
	"time"

	"github.com/naruerongk-png/inventory/internal/assets"
	"github.com/naruerongk-png/inventory/pkg/models"
)

const lifespanYears = 5.0

// Summary is the dashboard payload: stock breakdown plus book value.
type Summary struct {
	TotalAssets     int            `json:"total_assets"`
	ByStatus        map[string]int `json:"by_status"`
	PurchaseValue   float64        `json:"purchase_value"`
	CurrentValue    float64        `json:"current_value"`
	WarrantyExpired int            `json:"warranty_expired"`
}

type ReportService struct {
	assetService *assets.AssetService
	now          func() time.Time
}

func NewService(assetService *assets.AssetService) *ReportService {
	return &ReportService{
		assetService: assetService,
		now:          time.Now,
	}
}

func (s *ReportService) Dashboard() (*Summary, error) {
	list, err := s.assetService.List(assets.ListFilter{})
	if err != nil {
		return nil, err
	}

	now := s.now()
	summary := &Summary{
		TotalAssets: len(list),
		ByStatus:    make(map[string]int),
	}

	for _, asset := range list {
		summary.ByStatus[asset.Status]++
		summary.PurchaseValue += asset.Price
		summary.CurrentValue += CurrentValue(asset, now)
		if warrantyExpired(asset, now) {
			summary.WarrantyExpired++
		}
	}

	return summary, nil
}

// CurrentValue applies straight-line depreciation over a five year
// lifespan, floored at zero. Assets without a usable purchase date keep
// their full price on the books.
func CurrentValue(asset models.Asset, now time.Time) float64 {
	if asset.PurchaseDate == nil || *asset.PurchaseDate == "" {
		return asset.Price
	}

	purchased, err := time.Parse("2006-01-02", *asset.PurchaseDate)
	if err != nil {
		return asset.Price
	}

	ageYears := now.Sub(purchased).Hours() / 24 / 365.25
	value := asset.Price - (asset.Price/lifespanYears)*ageYears
	if value < 0 {
		return 0
	}
	return value
}

func warrantyExpired(asset models.Asset, now time.Time) bool {
	if asset.WarrantyDate == nil || *asset.WarrantyDate == "" {
		return false
	}
	expiry, err := time.Parse("2006-01-02", *asset.WarrantyDate)
	if err != nil {
		return false
	}
	return expiry.Before(now)
}
