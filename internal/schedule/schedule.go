// Package schedule computes monthly payment cycles for EMIs and recurring
// payments. All functions are pure; callers load paid marks and persist
// nothing here.
package schedule

import (
	"math"
	"time"
)

// Plan describes a finite installment plan.
type Plan struct {
	StartDate time.Time
	EndDate   time.Time
	DueDay    int
}

// Cycle identifies one month's occurrence of an obligation.
type Cycle struct {
	Year  int
	Month time.Month
}

// Installment describes one cycle of a plan's schedule.
type Installment struct {
	CycleIndex int        `json:"cycle_index"`
	DueDate    time.Time  `json:"due_date"`
	Paid       bool       `json:"paid"`
	PaidDate   *time.Time `json:"paid_date"`
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CycleDate returns the due date within (year, month). dueDay is clamped to
// the month's actual length, so dueDay 31 in February yields the 28th or
// 29th. Out-of-range days are a policy, not an error.
func CycleDate(year int, month time.Month, dueDay int) time.Time {
	day := dueDay
	if day < 1 {
		day = 1
	}
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween returns the whole-month span from the start of from's month
// to the start of to's month. Negative when to precedes from.
func MonthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// InstallmentCount returns the number of monthly cycles spanned by
// [start, end], inclusive, never less than 1. An end before start still
// yields 1.
func InstallmentCount(start, end time.Time) int {
	count := MonthsBetween(start, end) + 1
	if count < 1 {
		count = 1
	}
	return count
}

// cycleAt maps cycle index i of a plan onto a calendar (year, month).
func cycleAt(start time.Time, i int) Cycle {
	m := int(start.Month()) - 1 + i
	year := start.Year() + m/12
	m %= 12
	if m < 0 {
		m += 12
		year--
	}
	return Cycle{Year: year, Month: time.Month(m + 1)}
}

// ScheduleFor produces the ordered installment sequence for a plan. paid
// maps cycles to the date they were marked paid.
func ScheduleFor(plan Plan, paid map[Cycle]time.Time) []Installment {
	count := InstallmentCount(plan.StartDate, plan.EndDate)
	installments := make([]Installment, 0, count)
	for i := 0; i < count; i++ {
		cycle := cycleAt(plan.StartDate, i)
		inst := Installment{
			CycleIndex: i,
			DueDate:    CycleDate(cycle.Year, cycle.Month, plan.DueDay),
		}
		if paidDate, ok := paid[cycle]; ok {
			inst.Paid = true
			d := paidDate
			inst.PaidDate = &d
		}
		installments = append(installments, inst)
	}
	return installments
}

// NextDue scans cycles from the one matching today's calendar month forward
// and returns the first unpaid cycle's due date, or nil when every cycle in
// range is paid or the scan range is empty.
func NextDue(plan Plan, paid map[Cycle]bool, today time.Time) *time.Time {
	count := InstallmentCount(plan.StartDate, plan.EndDate)
	start := MonthsBetween(plan.StartDate, today)
	if start < 0 {
		start = 0
	}
	for i := start; i < count; i++ {
		cycle := cycleAt(plan.StartDate, i)
		if !paid[cycle] {
			due := CycleDate(cycle.Year, cycle.Month, plan.DueDay)
			return &due
		}
	}
	return nil
}

// NextDueRecurring computes the next due date for an open-ended obligation.
// latest is the cycle of the most recent paid mark, nil when never paid.
func NextDueRecurring(dueDay int, latest *Cycle, today time.Time) time.Time {
	if latest != nil {
		next := cycleAt(time.Date(latest.Year, latest.Month, 1, 0, 0, 0, 0, time.UTC), 1)
		return CycleDate(next.Year, next.Month, dueDay)
	}
	due := CycleDate(today.Year(), today.Month(), dueDay)
	if !due.Before(StartOfDay(today)) {
		return due
	}
	next := cycleAt(due, 1)
	return CycleDate(next.Year, next.Month, dueDay)
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntil returns the number of days from the start of today until date,
// rounding partial days up. Past dates yield negative values.
func DaysUntil(date, today time.Time) int {
	diff := date.Sub(StartOfDay(today))
	return int(math.Ceil(diff.Hours() / 24))
}

// ShowMarkPaid reports whether the mark-as-paid affordance should appear for
// a due date the given number of days away: due today through one week out.
func ShowMarkPaid(daysUntilDue int) bool {
	return daysUntilDue >= 0 && daysUntilDue <= 7
}
