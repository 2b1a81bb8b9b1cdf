package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smartexpense/smartexpense/internal/models"
	"github.com/smartexpense/smartexpense/internal/repository"
)

// fallbackExpenseType receives paid-mark expenses whose item type name has
// no matching expense category.
const fallbackExpenseType = "Other"

// MarkPaidInput identifies the cycle being marked and the payment details
type MarkPaidInput struct {
	ItemType string // emi or recurring
	ItemID   int64
	Month    int // 1-12
	Year     int
	PaidDate time.Time
	Note     *string
}

// MarkPaidResult is the created mark and its side-effect expense
type MarkPaidResult struct {
	PaidMark *models.PaidMark `json:"paid_mark"`
	Expense  *models.Expense  `json:"expense"`
}

// MarkPaid records one cycle of an EMI or recurring payment as paid,
// creating the linked expense in the same transaction. A cycle can only be
// marked once.
func (s *Service) MarkPaid(userID int64, in MarkPaidInput) (*MarkPaidResult, error) {
	if _, err := s.repo.FindPaidMark(userID, in.ItemType, in.ItemID, in.Month, in.Year); err == nil {
		return nil, fmt.Errorf("cycle %d/%d for %s %d: %w", in.Month, in.Year, in.ItemType, in.ItemID, repository.ErrDuplicate)
	}

	var amount float64
	var preferredType string
	switch in.ItemType {
	case models.ItemEMI:
		emi, err := s.repo.FindEMI(userID, in.ItemID)
		if err != nil {
			return nil, err
		}
		amount = emi.Amount
		preferredType = emi.EMIType
	case models.ItemRecurring:
		recurring, err := s.repo.FindRecurring(userID, in.ItemID)
		if err != nil {
			return nil, err
		}
		amount = recurring.Amount
		preferredType = recurring.Type
	default:
		return nil, fmt.Errorf("item type %q: %w", in.ItemType, ErrInvalidInput)
	}

	typeID, err := s.resolveExpenseType(userID, preferredType)
	if err != nil {
		return nil, err
	}

	note := in.Note
	if note == nil {
		text := fmt.Sprintf("%s payment", strings.ToUpper(in.ItemType))
		note = &text
	}
	sourceID := in.ItemID
	expense := &models.Expense{
		UserID:   userID,
		Amount:   amount,
		Date:     in.PaidDate,
		TypeID:   typeID,
		Note:     note,
		Source:   in.ItemType,
		SourceID: &sourceID,
	}
	mark := &models.PaidMark{
		UserID:   userID,
		ItemType: in.ItemType,
		ItemID:   in.ItemID,
		Month:    in.Month,
		Year:     in.Year,
		PaidDate: in.PaidDate,
		Note:     in.Note,
	}
	if err := s.repo.CreatePaidMarkWithExpense(mark, expense); err != nil {
		return nil, err
	}

	s.log.Infof("Cycle %d/%d marked paid for %s %d (user %d)", in.Month, in.Year, in.ItemType, in.ItemID, userID)
	return &MarkPaidResult{PaidMark: mark, Expense: expense}, nil
}

// ListPaidMarks returns the user's paid marks, optionally for one cycle
func (s *Service) ListPaidMarks(userID int64, month, year *int) ([]models.PaidMark, error) {
	return s.repo.ListPaidMarks(userID, month, year)
}

// CheckPaid reports whether one (item, month, year) cycle is already marked
func (s *Service) CheckPaid(userID int64, itemType string, itemID int64, month, year int) (*models.PaidMark, bool, error) {
	mark, err := s.repo.FindPaidMark(userID, itemType, itemID, month, year)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return mark, true, nil
}

// resolveExpenseType finds the expense type matching the item's type name,
// falling back to "Other", creating it if the user deleted theirs.
func (s *Service) resolveExpenseType(userID int64, preferred string) (int64, error) {
	if t, err := s.repo.FindExpenseTypeByName(userID, preferred); err == nil {
		return t.ID, nil
	}
	if t, err := s.repo.FindExpenseTypeByName(userID, fallbackExpenseType); err == nil {
		return t.ID, nil
	}
	fallback := &models.ExpenseType{UserID: userID, Name: fallbackExpenseType, IsDefault: true}
	if err := s.repo.CreateExpenseType(fallback); err != nil {
		return 0, err
	}
	return fallback.ID, nil
}
