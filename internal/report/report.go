// Package report holds pure rollups over already-fetched rows: spend
// deltas, category percentage breakdowns, outstanding khata totals and the
// CSV export format.
package report

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartexpense/smartexpense/internal/models"
	"github.com/smartexpense/smartexpense/internal/schedule"
)

// DeltaPercent returns the percent change from previous to current, 0 when
// there is no previous baseline.
func DeltaPercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// Percentages fills in each row's share of the overall total and sorts the
// result by amount descending.
func Percentages(rows []models.CategorySummary) []models.CategorySummary {
	var total float64
	for _, row := range rows {
		total += row.TotalAmount
	}
	out := make([]models.CategorySummary, len(rows))
	copy(out, rows)
	for i := range out {
		if total > 0 {
			out[i].Percentage = out[i].TotalAmount / total * 100
		} else {
			out[i].Percentage = 0
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalAmount > out[j].TotalAmount
	})
	return out
}

// Urgency buckets a due date for reminder ordering: 0 overdue, 1 due today,
// 2 due within three days, 3 later.
func Urgency(dueDate, now time.Time) int {
	days := schedule.DaysUntil(schedule.StartOfDay(dueDate), now)
	switch {
	case days < 0:
		return 0
	case days == 0:
		return 1
	case days <= 3:
		return 2
	default:
		return 3
	}
}

// SortReminders orders reminders by urgency, then due date ascending.
func SortReminders(reminders []models.Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool {
		if reminders[i].Urgency != reminders[j].Urgency {
			return reminders[i].Urgency < reminders[j].Urgency
		}
		return reminders[i].DueDate.Before(reminders[j].DueDate)
	})
}

// Outstanding sums unsettled lend/borrow balances into per-person net
// balances and the overall owed/owe/net summary.
func Outstanding(transactions []models.Transaction) (map[int64]decimal.Decimal, models.KhataSummary) {
	byPerson := make(map[int64]decimal.Decimal)
	var owed, owe decimal.Decimal
	for _, tx := range transactions {
		outstanding := tx.Remaining()
		current := byPerson[tx.PersonID]
		if tx.Type == models.TxLend {
			owed = owed.Add(outstanding)
			byPerson[tx.PersonID] = current.Add(outstanding)
		} else {
			owe = owe.Add(outstanding)
			byPerson[tx.PersonID] = current.Sub(outstanding)
		}
	}
	return byPerson, models.KhataSummary{Owed: owed, Owe: owe, Net: owed.Sub(owe)}
}

// ExpensesCSV renders the export attachment: Date,Amount,Type,Note,Source.
func ExpensesCSV(expenses []models.Expense) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Date", "Amount", "Type", "Note", "Source"}); err != nil {
		return nil, err
	}
	for _, e := range expenses {
		note := ""
		if e.Note != nil {
			note = *e.Note
		}
		source := e.Source
		if source == "" {
			source = "manual"
		}
		record := []string{
			e.Date.Format(time.RFC3339),
			strconv.FormatFloat(e.Amount, 'f', -1, 64),
			e.TypeName,
			note,
			source,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
