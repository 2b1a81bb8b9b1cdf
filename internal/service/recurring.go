package service

import (
	"time"

	"github.com/smartexpense/smartexpense/internal/models"
	"github.com/smartexpense/smartexpense/internal/schedule"
)

// RecurringInput carries the user-editable recurring payment fields
type RecurringInput struct {
	Name   string
	Type   string
	Amount float64
	DueDay int
}

// CreateRecurring creates an open-ended monthly obligation
func (s *Service) CreateRecurring(userID int64, in RecurringInput) (*models.RecurringPayment, error) {
	p := &models.RecurringPayment{
		UserID: userID,
		Name:   in.Name,
		Type:   in.Type,
		Amount: in.Amount,
		DueDay: in.DueDay,
	}
	if err := s.repo.CreateRecurring(p); err != nil {
		return nil, err
	}
	s.log.Infof("Recurring payment %q created for user %d", p.Name, userID)
	return p, nil
}

// ListRecurring returns the user's recurring payments decorated with their
// next due date and the mark-as-paid affordance.
func (s *Service) ListRecurring(userID int64) ([]models.RecurringPayment, error) {
	payments, err := s.repo.ListRecurring(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i := range payments {
		latest := latestPaidCycle(payments[i].PaidMarks)
		due := schedule.NextDueRecurring(payments[i].DueDay, latest, now)
		days := schedule.DaysUntil(due, now)
		payments[i].NextDueAt = &due
		payments[i].NextDueInDays = days
		payments[i].ShowMarkPaid = schedule.ShowMarkPaid(days)
	}
	return payments, nil
}

// UpdateRecurring edits a recurring payment
func (s *Service) UpdateRecurring(userID, id int64, in RecurringInput) (*models.RecurringPayment, error) {
	p, err := s.repo.FindRecurring(userID, id)
	if err != nil {
		return nil, err
	}
	p.Name = in.Name
	p.Type = in.Type
	p.Amount = in.Amount
	p.DueDay = in.DueDay
	if err := s.repo.UpdateRecurring(p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteRecurring removes a recurring payment and its paid marks
func (s *Service) DeleteRecurring(userID, id int64) error {
	if err := s.repo.DeleteRecurring(userID, id); err != nil {
		return err
	}
	s.log.Infof("Recurring payment %d deleted for user %d", id, userID)
	return nil
}

// latestPaidCycle picks the cycle of the most recent mark by paid date
func latestPaidCycle(marks []models.PaidMark) *schedule.Cycle {
	var latest *models.PaidMark
	for i := range marks {
		if latest == nil || marks[i].PaidDate.After(latest.PaidDate) {
			latest = &marks[i]
		}
	}
	if latest == nil {
		return nil
	}
	return &schedule.Cycle{Year: latest.Year, Month: time.Month(latest.Month)}
}
