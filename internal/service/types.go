package service

import (
	"strings"

	"github.com/smartexpense/smartexpense/internal/models"
)

// ListExpenseTypes returns the user's expense categories with usage counts
func (s *Service) ListExpenseTypes(userID int64) ([]models.ExpenseType, error) {
	return s.repo.ListExpenseTypes(userID)
}

// AddExpenseType creates a user-defined expense category
func (s *Service) AddExpenseType(userID int64, name string, icon *string) (*models.ExpenseType, error) {
	t := &models.ExpenseType{UserID: userID, Name: strings.TrimSpace(name), Icon: icon}
	if err := s.repo.CreateExpenseType(t); err != nil {
		return nil, err
	}
	s.log.Infof("Expense type %q created for user %d", t.Name, userID)
	return t, nil
}

// RenameExpenseType renames an expense category
func (s *Service) RenameExpenseType(userID, id int64, name string) (*models.ExpenseType, error) {
	return s.repo.RenameExpenseType(userID, id, strings.TrimSpace(name))
}

// DeleteExpenseType removes an unused expense category
func (s *Service) DeleteExpenseType(userID, id int64) error {
	return s.repo.DeleteExpenseType(userID, id)
}

// ListEMITypes returns the user's EMI categories with usage counts
func (s *Service) ListEMITypes(userID int64) ([]models.EMIType, error) {
	return s.repo.ListEMITypes(userID)
}

// AddEMIType creates a user-defined EMI category
func (s *Service) AddEMIType(userID int64, name string) (*models.EMIType, error) {
	t := &models.EMIType{UserID: userID, Name: strings.TrimSpace(name)}
	if err := s.repo.CreateEMIType(t); err != nil {
		return nil, err
	}
	s.log.Infof("EMI type %q created for user %d", t.Name, userID)
	return t, nil
}

// RenameEMIType renames an EMI category, cascading to its EMIs
func (s *Service) RenameEMIType(userID, id int64, name string) (*models.EMIType, error) {
	return s.repo.RenameEMIType(userID, id, strings.TrimSpace(name))
}

// DeleteEMIType removes an unused EMI category
func (s *Service) DeleteEMIType(userID, id int64) error {
	return s.repo.DeleteEMIType(userID, id)
}
