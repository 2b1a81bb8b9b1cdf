package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCycleDate(t *testing.T) {
	t.Run("regular day", func(t *testing.T) {
		assert.Equal(t, date(2024, time.March, 15), CycleDate(2024, time.March, 15))
	})
	t.Run("clamped to leap february", func(t *testing.T) {
		assert.Equal(t, date(2024, time.February, 29), CycleDate(2024, time.February, 31))
	})
	t.Run("clamped to regular february", func(t *testing.T) {
		assert.Equal(t, date(2023, time.February, 28), CycleDate(2023, time.February, 31))
	})
	t.Run("clamped to thirty day month", func(t *testing.T) {
		assert.Equal(t, date(2024, time.April, 30), CycleDate(2024, time.April, 31))
	})
	t.Run("day below range", func(t *testing.T) {
		assert.Equal(t, date(2024, time.June, 1), CycleDate(2024, time.June, 0))
	})
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 0, MonthsBetween(date(2024, time.March, 1), date(2024, time.March, 31)))
	assert.Equal(t, 11, MonthsBetween(date(2024, time.January, 15), date(2024, time.December, 1)))
	assert.Equal(t, 13, MonthsBetween(date(2023, time.December, 1), date(2025, time.January, 1)))
	assert.Equal(t, -2, MonthsBetween(date(2024, time.March, 1), date(2024, time.January, 1)))
}

func TestInstallmentCount(t *testing.T) {
	t.Run("full year", func(t *testing.T) {
		assert.Equal(t, 12, InstallmentCount(date(2024, time.January, 5), date(2024, time.December, 5)))
	})
	t.Run("same month", func(t *testing.T) {
		assert.Equal(t, 1, InstallmentCount(date(2024, time.March, 1), date(2024, time.March, 28)))
	})
	t.Run("end before start still one", func(t *testing.T) {
		assert.Equal(t, 1, InstallmentCount(date(2024, time.May, 1), date(2024, time.February, 1)))
	})
	t.Run("partial months count by calendar month", func(t *testing.T) {
		assert.Equal(t, 2, InstallmentCount(date(2024, time.January, 31), date(2024, time.February, 1)))
	})
}

func TestScheduleFor(t *testing.T) {
	plan := Plan{
		StartDate: date(2024, time.January, 10),
		EndDate:   date(2024, time.March, 10),
		DueDay:    31,
	}
	paidDate := date(2024, time.February, 27)
	paid := map[Cycle]time.Time{
		{Year: 2024, Month: time.February}: paidDate,
	}

	installments := ScheduleFor(plan, paid)

	assert.Len(t, installments, 3)
	assert.Equal(t, date(2024, time.January, 31), installments[0].DueDate)
	assert.False(t, installments[0].Paid)
	// February clamps due day 31 to the 29th in a leap year.
	assert.Equal(t, date(2024, time.February, 29), installments[1].DueDate)
	assert.True(t, installments[1].Paid)
	assert.Equal(t, paidDate, *installments[1].PaidDate)
	assert.Equal(t, date(2024, time.March, 31), installments[2].DueDate)
	assert.False(t, installments[2].Paid)
}

func TestNextDue(t *testing.T) {
	plan := Plan{
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.March, 1),
		DueDay:    5,
	}

	t.Run("first unpaid from current month", func(t *testing.T) {
		paid := map[Cycle]bool{{Year: 2024, Month: time.February}: true}
		due := NextDue(plan, paid, date(2024, time.February, 10))
		assert.NotNil(t, due)
		assert.Equal(t, date(2024, time.March, 5), *due)
	})
	t.Run("nil when every cycle paid", func(t *testing.T) {
		paid := map[Cycle]bool{
			{Year: 2024, Month: time.January}:  true,
			{Year: 2024, Month: time.February}: true,
			{Year: 2024, Month: time.March}:    true,
		}
		assert.Nil(t, NextDue(plan, paid, date(2024, time.January, 1)))
	})
	t.Run("nil after plan end", func(t *testing.T) {
		assert.Nil(t, NextDue(plan, nil, date(2024, time.June, 1)))
	})
	t.Run("before plan start scans from first cycle", func(t *testing.T) {
		due := NextDue(plan, nil, date(2023, time.November, 1))
		assert.NotNil(t, due)
		assert.Equal(t, date(2024, time.January, 5), *due)
	})
}

func TestNextDueRecurring(t *testing.T) {
	t.Run("never paid and due day ahead", func(t *testing.T) {
		due := NextDueRecurring(20, nil, date(2024, time.March, 10))
		assert.Equal(t, date(2024, time.March, 20), due)
	})
	t.Run("never paid and due day passed", func(t *testing.T) {
		due := NextDueRecurring(5, nil, date(2024, time.March, 10))
		assert.Equal(t, date(2024, time.April, 5), due)
	})
	t.Run("due today counts as this month", func(t *testing.T) {
		due := NextDueRecurring(10, nil, date(2024, time.March, 10))
		assert.Equal(t, date(2024, time.March, 10), due)
	})
	t.Run("paid this month rolls to next", func(t *testing.T) {
		latest := &Cycle{Year: 2024, Month: time.March}
		due := NextDueRecurring(10, latest, date(2024, time.March, 12))
		assert.Equal(t, date(2024, time.April, 10), due)
	})
	t.Run("december rolls into next year", func(t *testing.T) {
		latest := &Cycle{Year: 2024, Month: time.December}
		due := NextDueRecurring(31, latest, date(2024, time.December, 31))
		assert.Equal(t, date(2025, time.January, 31), due)
	})
}

func TestDaysUntil(t *testing.T) {
	today := time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysUntil(date(2024, time.March, 10), today))
	assert.Equal(t, 1, DaysUntil(date(2024, time.March, 11), today))
	assert.Equal(t, 7, DaysUntil(date(2024, time.March, 17), today))
	assert.Equal(t, -2, DaysUntil(date(2024, time.March, 8), today))
}

func TestShowMarkPaid(t *testing.T) {
	assert.False(t, ShowMarkPaid(-1))
	assert.True(t, ShowMarkPaid(0))
	assert.True(t, ShowMarkPaid(7))
	assert.False(t, ShowMarkPaid(8))
}
