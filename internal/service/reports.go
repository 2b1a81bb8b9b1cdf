package service

import (
	"time"

	"github.com/smartexpense/smartexpense/internal/models"
)

// MonthlyReport returns the spend trend over the last six months, with
// zero totals for months without expenses.
func (s *Service) MonthlyReport(userID int64) ([]models.MonthlyExpensePoint, error) {
	return s.repo.MonthlyExpenseTotals(userID, 6)
}

// CategoryReport breaks down one calendar month's spend by category
func (s *Service) CategoryReport(userID int64, month time.Month, year int) ([]models.CategorySummary, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return s.CategorySummary(userID, start, end)
}

// SummaryReport aggregates the reports page: the EMI load per month over
// the next year plus total monthly EMI and recurring obligations.
func (s *Service) SummaryReport(userID int64) (*models.ReportSummary, error) {
	monthly, err := s.repo.MonthlyEMILoad(userID)
	if err != nil {
		return nil, err
	}
	emiTotal, err := s.repo.SumEMIAmounts(userID)
	if err != nil {
		return nil, err
	}
	recurringTotal, err := s.repo.SumRecurringAmounts(userID)
	if err != nil {
		return nil, err
	}
	return &models.ReportSummary{
		MonthlyEMI:     monthly,
		TotalEMI:       emiTotal,
		TotalRecurring: recurringTotal,
	}, nil
}
