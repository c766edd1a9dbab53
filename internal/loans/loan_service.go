package loans

import (
	"strings"

	custom_error "github.com/naruerongk-png/inventory/pkg/errors"
	"github.com/naruerongk-png/inventory/pkg/history"
	"github.com/naruerongk-png/inventory/pkg/models"
)

type LoanService struct {
	loansRepo *LoansRepository
	trail     *history.Trail
}

func NewLoanService(loansRepo *LoansRepository, trail *history.Trail) *LoanService {
	return &LoanService{
		loansRepo: loansRepo,
		trail:     trail,
	}
}

// BorrowMany processes a bulk borrow. Per-tag failures are collected, not
// fatal; the caller reports both sides.
func (s *LoanService) BorrowMany(tags []string, borrower string, note string) (int, []string) {
	var errs []string
	borrowed := 0

	for _, tag := range tags {
		if err := s.Borrow(tag, borrower, note); err != nil {
			errs = append(errs, tag+": "+err.Error())
			continue
		}
		borrowed++
	}

	return borrowed, errs
}

func (s *LoanService) Borrow(tag string, borrower string, note string) error {
	if strings.TrimSpace(borrower) == "" {
		return custom_error.NewValidationError("Borrower name cannot be empty")
	}

	if err := s.loansRepo.Borrow(tag, borrower, note); err != nil {
		return err
	}

	s.trail.Log(tag, "BORROW", "Borrowed by: "+borrower)
	return nil
}

func (s *LoanService) ReturnMany(tags []string, note string) (int, []string) {
	var errs []string
	returned := 0

	for _, tag := range tags {
		if err := s.Return(tag, note); err != nil {
			errs = append(errs, tag+": "+err.Error())
			continue
		}
		returned++
	}

	return returned, errs
}

func (s *LoanService) Return(tag string, note string) error {
	if err := s.loansRepo.Return(tag, note); err != nil {
		return err
	}

	s.trail.Log(tag, "RETURN", "Returned: "+note)
	return nil
}

func (s *LoanService) Logs(limit uint) ([]models.BorrowLog, error) {
	return s.loansRepo.GetBorrowLogs(limit)
}
