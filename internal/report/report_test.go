package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/smartexpense/smartexpense/internal/models"
)

func TestDeltaPercent(t *testing.T) {
	assert.Equal(t, 0.0, DeltaPercent(500, 0))
	assert.Equal(t, 25.0, DeltaPercent(1250, 1000))
	assert.Equal(t, -50.0, DeltaPercent(500, 1000))
}

func TestPercentages(t *testing.T) {
	t.Run("fills shares and sorts descending", func(t *testing.T) {
		rows := []models.CategorySummary{
			{Category: "Food", TotalAmount: 250},
			{Category: "Rent", TotalAmount: 750},
		}
		out := Percentages(rows)
		assert.Equal(t, "Rent", out[0].Category)
		assert.Equal(t, 75.0, out[0].Percentage)
		assert.Equal(t, "Food", out[1].Category)
		assert.Equal(t, 25.0, out[1].Percentage)
	})
	t.Run("zero total yields zero shares", func(t *testing.T) {
		out := Percentages([]models.CategorySummary{{Category: "Food", TotalAmount: 0}})
		assert.Equal(t, 0.0, out[0].Percentage)
	})
}

func TestUrgency(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	day := func(d int) time.Time {
		return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, 0, Urgency(day(8), now))
	assert.Equal(t, 1, Urgency(day(10), now))
	assert.Equal(t, 2, Urgency(day(13), now))
	assert.Equal(t, 3, Urgency(day(14), now))
}

func TestSortReminders(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
	}
	reminders := []models.Reminder{
		{ID: "later", Urgency: 3, DueDate: day(20)},
		{ID: "today", Urgency: 1, DueDate: day(10)},
		{ID: "overdue", Urgency: 0, DueDate: day(5)},
		{ID: "soon-b", Urgency: 2, DueDate: day(13)},
		{ID: "soon-a", Urgency: 2, DueDate: day(11)},
	}

	SortReminders(reminders)

	ids := make([]string, len(reminders))
	for i, r := range reminders {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"overdue", "today", "soon-a", "soon-b", "later"}, ids)
}

func TestOutstanding(t *testing.T) {
	dec := decimal.RequireFromString
	transactions := []models.Transaction{
		{PersonID: 1, Type: models.TxLend, Amount: dec("1000"), SettledAmount: dec("400")},
		{PersonID: 1, Type: models.TxBorrow, Amount: dec("200"), SettledAmount: dec("0")},
		{PersonID: 2, Type: models.TxBorrow, Amount: dec("300"), SettledAmount: dec("0")},
	}

	balances, summary := Outstanding(transactions)

	assert.True(t, balances[1].Equal(dec("400")))
	assert.True(t, balances[2].Equal(dec("-300")))
	assert.True(t, summary.Owed.Equal(dec("600")))
	assert.True(t, summary.Owe.Equal(dec("500")))
	assert.True(t, summary.Net.Equal(dec("100")))
}

func TestExpensesCSV(t *testing.T) {
	note := "lunch"
	expenses := []models.Expense{
		{
			Date:     time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
			Amount:   249.5,
			TypeName: "Food",
			Note:     &note,
		},
		{
			Date:     time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
			Amount:   12000,
			TypeName: "Home Loan",
			Source:   "emi",
		},
	}

	out, err := ExpensesCSV(expenses)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "Date,Amount,Type,Note,Source", lines[0])
	assert.Contains(t, lines[1], "249.5")
	assert.Contains(t, lines[1], "manual")
	assert.Contains(t, lines[2], "emi")
}
