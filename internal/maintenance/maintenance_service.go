package maintenance

import (
	"fmt"
	"strings"

	custom_error "github.com/naruerongk-png/inventory/pkg/errors"
	"github.com/naruerongk-png/inventory/pkg/history"
	"github.com/naruerongk-png/inventory/pkg/models"
)

type MaintenanceService struct {
	maintenanceRepo *MaintenanceRepository
	trail           *history.Trail
}

func NewService(repo *MaintenanceRepository, trail *history.Trail) *MaintenanceService {
	return &MaintenanceService{
		maintenanceRepo: repo,
		trail:           trail,
	}
}

func (s *MaintenanceService) SendRepair(tag string, vendor string, issue string) error {
	vendor = strings.TrimSpace(vendor)
	issue = strings.TrimSpace(issue)
	if vendor == "" {
		return custom_error.NewValidationError("vendor name is required")
	}
	if issue == "" {
		return custom_error.NewValidationError("issue description is required")
	}

	if err := s.maintenanceRepo.SendRepair(tag, vendor, issue); err != nil {
		return err
	}

	s.trail.Log(tag, "REPAIR_SEND", "Sent to: "+vendor)
	return nil
}

func (s *MaintenanceService) FinishRepair(tag string, cost float64) error {
	if cost < 0 {
		return custom_error.NewValidationError("repair cost cannot be negative")
	}

	if err := s.maintenanceRepo.FinishRepair(tag, cost); err != nil {
		return err
	}

	s.trail.Log(tag, "REPAIR_FINISH", fmt.Sprintf("Cost: %.2f", cost))
	return nil
}

func (s *MaintenanceService) Logs(limit uint) ([]models.MaintenanceLog, error) {
	return s.maintenanceRepo.GetMaintenanceLogs(limit)
}
