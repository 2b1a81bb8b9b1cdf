package repository

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/smartexpense/smartexpense/internal/ledger"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open stub database: %v", err)
	}
	return NewRepository(db), mock, db
}

func txRow(id, userID, personID int64, txType, amount, settled string, isSettled bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "person_id", "type", "amount", "settled_amount",
		"settled", "due_date", "note", "parent_id", "created_at",
	}).AddRow(id, userID, personID, txType, amount, settled, isSettled, nil, nil, nil, time.Now())
}

func settlementRow(id, userID, personID, parentID int64, txType, amount string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "person_id", "type", "amount", "settled_amount",
		"settled", "due_date", "note", "parent_id", "created_at",
	}).AddRow(id, userID, personID, txType, amount, amount, true, nil, "Settlement for 1", parentID, time.Now())
}

const lockQuery = `SELECT id, user_id, person_id, type, amount, settled_amount, settled, due_date, note, parent_id, created_at FROM transactions WHERE id = $1 AND user_id = $2 FOR UPDATE`

func TestRepository_Settle(t *testing.T) {
	date := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("full settle", func(t *testing.T) {
		repo, mock, db := newMock(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(lockQuery)).
			WithArgs(int64(1), int64(7)).
			WillReturnRows(txRow(1, 7, 3, "lend", "1000", "0", false))
		mock.ExpectQuery("INSERT INTO transactions").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(2, time.Now()))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE transactions SET settled_amount = $1, settled = $2 WHERE id = $3`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		settlement, err := repo.Settle(7, 1, nil, date)
		assert.NoError(t, err)
		assert.Equal(t, "borrow", settlement.Type)
		assert.True(t, settlement.Amount.Equal(decimal.RequireFromString("1000")))
		assert.True(t, settlement.Settled)
		assert.Equal(t, int64(1), *settlement.ParentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("partial settle keeps parent open", func(t *testing.T) {
		repo, mock, db := newMock(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(lockQuery)).
			WithArgs(int64(1), int64(7)).
			WillReturnRows(txRow(1, 7, 3, "lend", "1000", "0", false))
		mock.ExpectQuery("INSERT INTO transactions").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(2, time.Now()))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE transactions SET settled_amount = $1, settled = $2 WHERE id = $3`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		amount := decimal.RequireFromString("400")
		settlement, err := repo.Settle(7, 1, &amount, date)
		assert.NoError(t, err)
		assert.True(t, settlement.Amount.Equal(amount))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("over settle rolls back", func(t *testing.T) {
		repo, mock, db := newMock(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(lockQuery)).
			WithArgs(int64(1), int64(7)).
			WillReturnRows(txRow(1, 7, 3, "lend", "1000", "600", false))
		mock.ExpectRollback()

		amount := decimal.RequireFromString("500")
		_, err := repo.Settle(7, 1, &amount, date)
		assert.ErrorIs(t, err, ledger.ErrInvalidSettlement)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown transaction", func(t *testing.T) {
		repo, mock, db := newMock(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(lockQuery)).
			WithArgs(int64(99), int64(7)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.Settle(7, 99, nil, date)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_DeleteEntry(t *testing.T) {
	t.Run("deleting a settlement reverses the parent", func(t *testing.T) {
		repo, mock, db := newMock(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(lockQuery)).
			WithArgs(int64(2), int64(7)).
			WillReturnRows(settlementRow(2, 7, 3, 1, "borrow", "400"))
		mock.ExpectQuery(regexp.QuoteMeta(lockQuery)).
			WithArgs(int64(1), int64(7)).
			WillReturnRows(txRow(1, 7, 3, "lend", "1000", "1000", true))
		// 1000 - 400 leaves 600 against 1000, so settled goes false.
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE transactions SET settled_amount = $1, settled = $2 WHERE id = $3`)).
			WithArgs(decimal.RequireFromString("600"), false, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM transactions WHERE id = $1 AND user_id = $2`)).
			WithArgs(int64(2), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.DeleteEntry(7, 2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deleting an original cascades its settlements", func(t *testing.T) {
		repo, mock, db := newMock(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(lockQuery)).
			WithArgs(int64(1), int64(7)).
			WillReturnRows(txRow(1, 7, 3, "lend", "1000", "400", false))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM transactions WHERE parent_id = $1 AND user_id = $2`)).
			WithArgs(int64(1), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM transactions WHERE id = $1 AND user_id = $2`)).
			WithArgs(int64(1), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.DeleteEntry(7, 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_OutstandingByType(t *testing.T) {
	repo, mock, db := newMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"type", "sum"}).
		AddRow("lend", "600").
		AddRow("borrow", "250")
	mock.ExpectQuery("SELECT type, COALESCE").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	sums, err := repo.OutstandingByType(7)
	assert.NoError(t, err)
	assert.True(t, sums["lend"].Equal(decimal.RequireFromString("600")))
	assert.True(t, sums["borrow"].Equal(decimal.RequireFromString("250")))
}

func TestRepository_CloseKhata(t *testing.T) {
	repo, mock, db := newMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM transactions WHERE user_id = $1 AND person_id = $2`)).
		WithArgs(int64(7), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	deleted, err := repo.CloseKhata(7, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
