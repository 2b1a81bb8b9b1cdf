package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartexpense/smartexpense/internal/models"
	"github.com/smartexpense/smartexpense/internal/report"
)

// AddPerson creates a khata counterparty
func (s *Service) AddPerson(userID int64, name string) (*models.Person, error) {
	person := &models.Person{UserID: userID, Name: name}
	if err := s.repo.CreatePerson(person); err != nil {
		return nil, err
	}
	s.log.Infof("Person %q created for user %d", name, userID)
	return person, nil
}

// ListPersons returns all counterparties with their net outstanding
// balances plus the overall owed/owe/net summary.
func (s *Service) ListPersons(userID int64) ([]models.Person, *models.KhataSummary, error) {
	persons, err := s.repo.ListPersons(userID)
	if err != nil {
		return nil, nil, err
	}
	unsettled, err := s.repo.ListUnsettled(userID)
	if err != nil {
		return nil, nil, err
	}

	balances, summary := report.Outstanding(unsettled)
	for i := range persons {
		persons[i].NetBalance = balances[persons[i].ID]
	}
	return persons, &summary, nil
}

// RenamePerson updates a counterparty's name
func (s *Service) RenamePerson(userID, id int64, name string) (*models.Person, error) {
	return s.repo.RenamePerson(userID, id, name)
}

// DeletePerson removes a counterparty without khata history
func (s *Service) DeletePerson(userID, id int64) error {
	return s.repo.DeletePerson(userID, id)
}

// AddTransaction creates a lend or borrow entry
func (s *Service) AddTransaction(userID, personID int64, txType string, amount decimal.Decimal, dueDate *time.Time, note *string) (*models.Transaction, error) {
	if _, err := s.repo.FindPerson(userID, personID); err != nil {
		return nil, err
	}
	tx := &models.Transaction{
		UserID:        userID,
		PersonID:      personID,
		Type:          txType,
		Amount:        amount,
		SettledAmount: decimal.Zero,
		DueDate:       dueDate,
		Note:          note,
	}
	if err := s.repo.CreateTransaction(tx); err != nil {
		return nil, err
	}
	s.log.Infof("%s of %s recorded for user %d against person %d", txType, amount, userID, personID)
	return tx, nil
}

// ListTransactions returns the user's khata entries with settlements
func (s *Service) ListTransactions(userID int64, personID *int64) ([]models.Transaction, error) {
	return s.repo.ListTransactions(userID, personID)
}

// Settle applies a partial or full settlement; nil amount settles in full
func (s *Service) Settle(userID, id int64, amount *decimal.Decimal, date time.Time) (*models.Transaction, error) {
	settlement, err := s.repo.Settle(userID, id, amount, date)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Transaction %d settled by %s for user %d", id, settlement.Amount, userID)
	return settlement, nil
}

// DeleteEntry removes a khata entry, reversing or cascading settlements
func (s *Service) DeleteEntry(userID, id int64) error {
	if err := s.repo.DeleteEntry(userID, id); err != nil {
		return err
	}
	s.log.Infof("Khata entry %d deleted for user %d", id, userID)
	return nil
}

// CloseKhata clears a person's transaction history, keeping the person
func (s *Service) CloseKhata(userID, personID int64) (int64, error) {
	if _, err := s.repo.FindPerson(userID, personID); err != nil {
		return 0, err
	}
	deleted, err := s.repo.CloseKhata(userID, personID)
	if err != nil {
		return 0, err
	}
	s.log.Infof("Khata closed for person %d (user %d): %d entries removed", personID, userID, deleted)
	return deleted, nil
}
