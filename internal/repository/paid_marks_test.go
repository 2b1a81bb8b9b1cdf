package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/smartexpense/smartexpense/internal/models"
)

func TestRepository_CreatePaidMarkWithExpense(t *testing.T) {
	paidDate := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	mark := func() *models.PaidMark {
		return &models.PaidMark{
			UserID:   7,
			ItemType: models.ItemEMI,
			ItemID:   3,
			Month:    3,
			Year:     2024,
			PaidDate: paidDate,
		}
	}
	expense := func() *models.Expense {
		return &models.Expense{
			UserID: 7,
			Amount: 12000,
			Date:   paidDate,
			TypeID: 2,
			Source: models.ItemEMI,
		}
	}

	t.Run("expense and mark created together", func(t *testing.T) {
		repo, mock, db := newMock(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO expenses").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(10, time.Now()))
		mock.ExpectQuery("INSERT INTO paid_marks").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(20, time.Now()))
		mock.ExpectCommit()

		m, e := mark(), expense()
		assert.NoError(t, repo.CreatePaidMarkWithExpense(m, e))
		assert.Equal(t, int64(10), e.ID)
		assert.Equal(t, int64(20), m.ID)
		assert.Equal(t, int64(10), m.ExpenseID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate cycle rolls the expense back", func(t *testing.T) {
		repo, mock, db := newMock(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO expenses").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(10, time.Now()))
		mock.ExpectQuery("INSERT INTO paid_marks").
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err := repo.CreatePaidMarkWithExpense(mark(), expense())
		assert.ErrorIs(t, err, ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
