package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/smartexpense/smartexpense/internal/models"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func lendOf(amount, settled string) *models.Transaction {
	return &models.Transaction{
		ID:            1,
		Type:          models.TxLend,
		Amount:        dec(amount),
		SettledAmount: dec(settled),
	}
}

func TestOpposite(t *testing.T) {
	assert.Equal(t, models.TxBorrow, Opposite(models.TxLend))
	assert.Equal(t, models.TxLend, Opposite(models.TxBorrow))
}

func TestPlan(t *testing.T) {
	t.Run("full settle with nil amount", func(t *testing.T) {
		s, err := Plan(lendOf("1000", "0"), nil)
		assert.NoError(t, err)
		assert.True(t, s.Amount.Equal(dec("1000")))
		assert.Equal(t, models.TxBorrow, s.Type)
		assert.True(t, s.NewSettled.Equal(dec("1000")))
		assert.True(t, s.FullySettled)
	})
	t.Run("partial settle leaves balance open", func(t *testing.T) {
		amount := dec("400")
		s, err := Plan(lendOf("1000", "0"), &amount)
		assert.NoError(t, err)
		assert.True(t, s.NewSettled.Equal(dec("400")))
		assert.False(t, s.FullySettled)
	})
	t.Run("second partial completes the balance", func(t *testing.T) {
		amount := dec("600")
		s, err := Plan(lendOf("1000", "400"), &amount)
		assert.NoError(t, err)
		assert.True(t, s.NewSettled.Equal(dec("1000")))
		assert.True(t, s.FullySettled)
	})
	t.Run("over settle rejected", func(t *testing.T) {
		amount := dec("1200")
		_, err := Plan(lendOf("1000", "0"), &amount)
		assert.ErrorIs(t, err, ErrInvalidSettlement)
	})
	t.Run("exceeding remaining rejected", func(t *testing.T) {
		amount := dec("700")
		_, err := Plan(lendOf("1000", "400"), &amount)
		assert.ErrorIs(t, err, ErrInvalidSettlement)
	})
	t.Run("zero amount rejected", func(t *testing.T) {
		amount := dec("0")
		_, err := Plan(lendOf("1000", "0"), &amount)
		assert.ErrorIs(t, err, ErrInvalidSettlement)
	})
	t.Run("negative amount rejected", func(t *testing.T) {
		amount := dec("-50")
		_, err := Plan(lendOf("1000", "0"), &amount)
		assert.ErrorIs(t, err, ErrInvalidSettlement)
	})
	t.Run("settlement against a borrow flips to lend", func(t *testing.T) {
		parent := &models.Transaction{
			Type:          models.TxBorrow,
			Amount:        dec("500"),
			SettledAmount: dec("0"),
		}
		s, err := Plan(parent, nil)
		assert.NoError(t, err)
		assert.Equal(t, models.TxLend, s.Type)
	})
}

func TestReverse(t *testing.T) {
	t.Run("removing the only settlement reopens the entry", func(t *testing.T) {
		newSettled, settled := Reverse(lendOf("1000", "1000"), dec("1000"))
		assert.True(t, newSettled.Equal(dec("0")))
		assert.False(t, settled)
	})
	t.Run("removing one partial keeps the rest", func(t *testing.T) {
		newSettled, settled := Reverse(lendOf("1000", "1000"), dec("400"))
		assert.True(t, newSettled.Equal(dec("600")))
		assert.False(t, settled)
	})
	t.Run("settled flag re-derived not cleared", func(t *testing.T) {
		// Parent over-covered: removing a small child still covers the
		// full amount.
		newSettled, settled := Reverse(lendOf("1000", "1100"), dec("100"))
		assert.True(t, newSettled.Equal(dec("1000")))
		assert.True(t, settled)
	})
	t.Run("never goes negative", func(t *testing.T) {
		newSettled, settled := Reverse(lendOf("1000", "200"), dec("500"))
		assert.True(t, newSettled.Equal(dec("0")))
		assert.False(t, settled)
	})
}
