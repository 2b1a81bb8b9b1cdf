package service

import (
	"time"

	"github.com/smartexpense/smartexpense/internal/models"
)

// ListCategoryBudgets returns the user's per-category budget caps together
// with this month's spend against each, so the UI can show progress.
func (s *Service) ListCategoryBudgets(userID int64) ([]models.CategoryBudget, error) {
	return s.repo.ListCategoryBudgets(userID)
}

// SetCategoryBudget creates or replaces the monthly cap for one category
func (s *Service) SetCategoryBudget(userID, typeID int64, amount float64) (*models.CategoryBudget, error) {
	budget := &models.CategoryBudget{
		UserID: userID,
		TypeID: typeID,
		Amount: amount,
	}
	if err := s.repo.UpsertCategoryBudget(budget); err != nil {
		return nil, err
	}
	s.log.Infof("Category budget set for user %d, type %d: %.2f", userID, typeID, amount)
	return budget, nil
}

// BudgetProgress pairs each budget cap with the month's spend per category
type BudgetProgress struct {
	Budget models.CategoryBudget `json:"budget"`
	Spent  float64               `json:"spent"`
}

// CategoryBudgetProgress reports this month's spend against every cap
func (s *Service) CategoryBudgetProgress(userID int64) ([]BudgetProgress, error) {
	budgets, err := s.repo.ListCategoryBudgets(userID)
	if err != nil {
		return nil, err
	}
	monthStart, monthEnd := monthRange(time.Now().UTC())
	totals, err := s.repo.CategoryTotalsBetween(userID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	spentByType := make(map[int64]float64, len(totals))
	for _, t := range totals {
		spentByType[t.TypeID] = t.TotalAmount
	}

	progress := make([]BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		progress = append(progress, BudgetProgress{Budget: b, Spent: spentByType[b.TypeID]})
	}
	return progress, nil
}
