package repository

import (
	"database/sql"
	"fmt"

	"github.com/smartexpense/smartexpense/internal/models"
)

// ListPaidMarksForItem returns all paid marks for one EMI or recurring
// payment, newest first.
func (r *Repository) ListPaidMarksForItem(userID int64, itemType string, itemID int64) ([]models.PaidMark, error) {
	query := `
		SELECT id, user_id, item_type, item_id, month, year, paid_date, note, expense_id, created_at
		FROM paid_marks
		WHERE user_id = $1 AND item_type = $2 AND item_id = $3
		ORDER BY created_at DESC`
	return r.queryPaidMarks(query, userID, itemType, itemID)
}

// ListPaidMarks returns the user's paid marks, optionally narrowed to one
// (month, year) cycle.
func (r *Repository) ListPaidMarks(userID int64, month, year *int) ([]models.PaidMark, error) {
	query := `
		SELECT id, user_id, item_type, item_id, month, year, paid_date, note, expense_id, created_at
		FROM paid_marks
		WHERE user_id = $1
		  AND ($2::int IS NULL OR month = $2)
		  AND ($3::int IS NULL OR year = $3)
		ORDER BY created_at DESC`
	return r.queryPaidMarks(query, userID, month, year)
}

// FindPaidMark retrieves the mark for one (item, month, year) cycle
func (r *Repository) FindPaidMark(userID int64, itemType string, itemID int64, month, year int) (*models.PaidMark, error) {
	m := &models.PaidMark{}
	query := `
		SELECT id, user_id, item_type, item_id, month, year, paid_date, note, expense_id, created_at
		FROM paid_marks
		WHERE user_id = $1 AND item_type = $2 AND item_id = $3 AND month = $4 AND year = $5`
	err := r.db.QueryRow(query, userID, itemType, itemID, month, year).
		Scan(&m.ID, &m.UserID, &m.ItemType, &m.ItemID, &m.Month, &m.Year,
			&m.PaidDate, &m.Note, &m.ExpenseID, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("paid mark for %s %d %d/%d: %w", itemType, itemID, month, year, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find paid mark: %w", err)
	}
	return m, nil
}

// CreatePaidMarkWithExpense records a cycle as paid: the expense row and the
// mark referencing it are inserted in one transaction so a failure leaves no
// orphan. The unique cycle constraint surfaces as ErrDuplicate.
func (r *Repository) CreatePaidMarkWithExpense(mark *models.PaidMark, expense *models.Expense) error {
	return r.withTx(func(tx *sql.Tx) error {
		expenseQuery := `
			INSERT INTO expenses (user_id, amount, date, type_id, note, source, source_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
			RETURNING id, created_at`
		err := tx.QueryRow(expenseQuery, expense.UserID, expense.Amount, expense.Date,
			expense.TypeID, expense.Note, expense.Source, expense.SourceID).
			Scan(&expense.ID, &expense.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create expense for paid mark: %w", err)
		}

		var emiID, recurringID *int64
		if mark.ItemType == models.ItemEMI {
			emiID = &mark.ItemID
		} else {
			recurringID = &mark.ItemID
		}

		markQuery := `
			INSERT INTO paid_marks (user_id, item_type, item_id, emi_id, recurring_id, month, year, paid_date, note, expense_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, CURRENT_TIMESTAMP)
			RETURNING id, created_at`
		err = tx.QueryRow(markQuery, mark.UserID, mark.ItemType, mark.ItemID, emiID, recurringID,
			mark.Month, mark.Year, mark.PaidDate, mark.Note, expense.ID).
			Scan(&mark.ID, &mark.CreatedAt)
		if isUniqueViolation(err) {
			return fmt.Errorf("cycle %d/%d already marked: %w", mark.Month, mark.Year, ErrDuplicate)
		}
		if err != nil {
			return fmt.Errorf("failed to create paid mark: %w", err)
		}
		mark.ExpenseID = expense.ID
		return nil
	})
}

func (r *Repository) queryPaidMarks(query string, args ...interface{}) ([]models.PaidMark, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list paid marks: %w", err)
	}
	defer rows.Close()

	var marks []models.PaidMark
	for rows.Next() {
		var m models.PaidMark
		if err := rows.Scan(&m.ID, &m.UserID, &m.ItemType, &m.ItemID, &m.Month, &m.Year,
			&m.PaidDate, &m.Note, &m.ExpenseID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan paid mark: %w", err)
		}
		marks = append(marks, m)
	}
	return marks, rows.Err()
}
