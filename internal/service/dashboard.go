package service

import (
	"fmt"
	"time"

	"github.com/smartexpense/smartexpense/internal/models"
	"github.com/smartexpense/smartexpense/internal/report"
	"github.com/smartexpense/smartexpense/internal/schedule"
)

func monthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// DashboardStats computes the headline dashboard numbers
func (s *Service) DashboardStats(userID int64) (*models.DashboardStats, error) {
	now := time.Now().UTC()
	monthStart, monthEnd := monthRange(now)
	prevStart, prevEnd := monthRange(monthStart.AddDate(0, -1, 0))

	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	thisMonth, err := s.repo.SumExpensesBetween(userID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	prevMonth, err := s.repo.SumExpensesBetween(userID, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.repo.OutstandingByType(userID)
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

	return &models.DashboardStats{
		ThisMonthSpend: thisMonth,
		LastMonthSpend: prevMonth,
		DeltaPercent:   report.DeltaPercent(thisMonth, prevMonth),
		MonthlyBudget:  user.MonthlyBudget,
		ToCollect:      outstanding[models.TxLend],
		ToPay:          outstanding[models.TxBorrow],
		FixedOutflow:   emiTotal + recurringTotal,
	}, nil
}

// DashboardReminders lists this month's unpaid EMI and recurring cycles
// plus unsettled borrows due within the month window, urgency-sorted.
func (s *Service) DashboardReminders(userID int64) ([]models.Reminder, error) {
	now := time.Now().UTC()
	month := int(now.Month())
	year := now.Year()
	monthStart, monthEnd := monthRange(now)

	emis, err := s.repo.ListEMIs(userID)
	if err != nil {
		return nil, err
	}
	recurring, err := s.repo.ListRecurring(userID)
	if err != nil {
		return nil, err
	}
	marks, err := s.repo.ListPaidMarks(userID, &month, &year)
	if err != nil {
		return nil, err
	}
	borrows, err := s.repo.ListDueBetween(userID, models.TxBorrow, monthStart, monthEnd.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}

	paid := make(map[string]bool, len(marks))
	for _, m := range marks {
		paid[fmt.Sprintf("%s:%d", m.ItemType, m.ItemID)] = true
	}

	reminders := []models.Reminder{}
	for _, emi := range emis {
		if paid[fmt.Sprintf("%s:%d", models.ItemEMI, emi.ID)] {
			continue
		}
		due := schedule.CycleDate(year, now.Month(), emi.DueDay)
		reminders = append(reminders, models.Reminder{
			ID:      fmt.Sprintf("emi:%d", emi.ID),
			Kind:    models.ItemEMI,
			Title:   emi.Name,
			Amount:  emi.Amount,
			DueDate: due,
			Urgency: report.Urgency(due, now),
		})
	}
	for _, rec := range recurring {
		if paid[fmt.Sprintf("%s:%d", models.ItemRecurring, rec.ID)] {
			continue
		}
		due := schedule.CycleDate(year, now.Month(), rec.DueDay)
		reminders = append(reminders, models.Reminder{
			ID:      fmt.Sprintf("recurring:%d", rec.ID),
			Kind:    models.ItemRecurring,
			Title:   rec.Name,
			Amount:  rec.Amount,
			DueDate: due,
			Urgency: report.Urgency(due, now),
		})
	}
	for _, b := range borrows {
		due := now
		if b.DueDate != nil {
			due = *b.DueDate
		}
		remaining, _ := b.Remaining().Float64()
		reminders = append(reminders, models.Reminder{
			ID:      fmt.Sprintf("borrow:%d", b.ID),
			Kind:    "borrow",
			Title:   fmt.Sprintf("Return to %s", b.Person.Name),
			Amount:  remaining,
			DueDate: due,
			Urgency: report.Urgency(due, now),
		})
	}

	report.SortReminders(reminders)
	return reminders, nil
}

// CollectReminders lists lends due for collection within the next week
func (s *Service) CollectReminders(userID int64) ([]models.CollectReminder, error) {
	now := time.Now().UTC()
	todayStart := schedule.StartOfDay(now)
	weekEnd := todayStart.AddDate(0, 0, 8).Add(-time.Nanosecond)

	lends, err := s.repo.ListDueBetween(userID, models.TxLend, todayStart, weekEnd)
	if err != nil {
		return nil, err
	}

	reminders := []models.CollectReminder{}
	for _, l := range lends {
		due := todayStart
		if l.DueDate != nil {
			due = *l.DueDate
		}
		reminders = append(reminders, models.CollectReminder{
			ID:         l.ID,
			PersonName: l.Person.Name,
			Amount:     l.Remaining(),
			DueDate:    due,
			DueInDays:  schedule.DaysUntil(schedule.StartOfDay(due), now),
		})
	}
	return reminders, nil
}
