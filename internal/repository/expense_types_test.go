package repository

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/smartexpense/smartexpense/internal/models"
)

func typeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "name", "icon", "is_default", "created_at"})
}

func TestRepository_CreateExpenseType(t *testing.T) {
	t.Run("new type", func(t *testing.T) {
		repo, mock, db := newMock(t)
		defer db.Close()

		mock.ExpectQuery("SELECT id, user_id, name, icon, is_default, created_at").
			WithArgs(int64(7), "Coffee").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("INSERT INTO expense_types").
			WithArgs(int64(7), "Coffee", nil, false).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(5, time.Now()))

		et := &models.ExpenseType{UserID: 7, Name: "Coffee"}
		assert.NoError(t, repo.CreateExpenseType(et))
		assert.Equal(t, int64(5), et.ID)
	})

	t.Run("duplicate name rejected case-insensitively", func(t *testing.T) {
		repo, mock, db := newMock(t)
		defer db.Close()

		mock.ExpectQuery("SELECT id, user_id, name, icon, is_default, created_at").
			WithArgs(int64(7), "coffee").
			WillReturnRows(typeRows().AddRow(5, 7, "Coffee", nil, false, time.Now()))

		err := repo.CreateExpenseType(&models.ExpenseType{UserID: 7, Name: "coffee"})
		assert.ErrorIs(t, err, ErrDuplicate)
	})
}

func TestRepository_DeleteExpenseType(t *testing.T) {
	t.Run("unused type deleted", func(t *testing.T) {
		repo, mock, db := newMock(t)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM expenses WHERE user_id = $1 AND type_id = $2`)).
			WithArgs(int64(7), int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM expense_types WHERE id = $1 AND user_id = $2`)).
			WithArgs(int64(5), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteExpenseType(7, 5))
	})

	t.Run("linked type refused", func(t *testing.T) {
		repo, mock, db := newMock(t)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM expenses WHERE user_id = $1 AND type_id = $2`)).
			WithArgs(int64(7), int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		err := repo.DeleteExpenseType(7, 5)
		assert.ErrorIs(t, err, ErrInUse)
	})

	t.Run("unknown type", func(t *testing.T) {
		repo, mock, db := newMock(t)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM expenses WHERE user_id = $1 AND type_id = $2`)).
			WithArgs(int64(7), int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM expense_types WHERE id = $1 AND user_id = $2`)).
			WithArgs(int64(99), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteExpenseType(7, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
