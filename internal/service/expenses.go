package service

import (
	"time"

	"github.com/smartexpense/smartexpense/internal/models"
	"github.com/smartexpense/smartexpense/internal/report"
)

// AddExpense logs a manual expense
func (s *Service) AddExpense(userID int64, amount float64, date time.Time, typeID int64, note *string) (*models.Expense, error) {
	expense := &models.Expense{
		UserID: userID,
		Amount: amount,
		Date:   date,
		TypeID: typeID,
		Note:   note,
	}
	if err := s.repo.CreateExpense(expense); err != nil {
		return nil, err
	}
	s.log.Infof("Expense created for user %d: %.2f", userID, amount)
	return expense, nil
}

// ListExpenses returns a filtered expense page, clamping pagination
func (s *Service) ListExpenses(userID int64, f models.ExpenseFilter) (*models.ExpensePage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	return s.repo.ListExpenses(userID, f)
}

// DeleteExpense removes one of the user's expenses
func (s *Service) DeleteExpense(userID, id int64) error {
	if err := s.repo.DeleteExpense(userID, id); err != nil {
		return err
	}
	s.log.Infof("Expense %d deleted for user %d", id, userID)
	return nil
}

// CategorySummary returns per-type totals and percentage shares for the
// given window.
func (s *Service) CategorySummary(userID int64, from, to time.Time) ([]models.CategorySummary, error) {
	totals, err := s.repo.CategoryTotalsBetween(userID, from, to)
	if err != nil {
		return nil, err
	}
	return report.Percentages(totals), nil
}

// ExportExpensesCSV renders every expense as the CSV attachment body
func (s *Service) ExportExpensesCSV(userID int64) ([]byte, error) {
	expenses, err := s.repo.ListAllExpenses(userID)
	if err != nil {
		return nil, err
	}
	return report.ExpensesCSV(expenses)
}
