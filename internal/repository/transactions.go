package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartexpense/smartexpense/internal/ledger"
	"github.com/smartexpense/smartexpense/internal/models"
)

const txColumns = `id, user_id, person_id, type, amount, settled_amount, settled, due_date, note, parent_id, created_at`

func scanTransaction(row interface{ Scan(...interface{}) error }, t *models.Transaction) error {
	return row.Scan(&t.ID, &t.UserID, &t.PersonID, &t.Type, &t.Amount, &t.SettledAmount,
		&t.Settled, &t.DueDate, &t.Note, &t.ParentID, &t.CreatedAt)
}

// CreateTransaction creates a new lend/borrow entry
func (r *Repository) CreateTransaction(t *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, person_id, type, amount, settled_amount, settled, due_date, note, parent_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, t.UserID, t.PersonID, t.Type, t.Amount, t.SettledAmount,
		t.Settled, t.DueDate, t.Note, t.ParentID).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// FindTransaction retrieves one transaction owned by the user
func (r *Repository) FindTransaction(userID, id int64) (*models.Transaction, error) {
	t := &models.Transaction{}
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE id = $1 AND user_id = $2`, txColumns)
	err := scanTransaction(r.db.QueryRow(query, id, userID), t)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return t, nil
}

// ListTransactions returns the user's transactions with person names and
// settlement children, newest first. personID narrows to one khata when
// non-nil.
func (r *Repository) ListTransactions(userID int64, personID *int64) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.person_id, t.type, t.amount, t.settled_amount,
		       t.settled, t.due_date, t.note, t.parent_id, t.created_at,
		       p.id, p.user_id, p.name, p.created_at
		FROM transactions t
		JOIN persons p ON p.id = t.person_id
		WHERE t.user_id = $1 AND ($2::bigint IS NULL OR t.person_id = $2)
		ORDER BY t.created_at DESC`
	rows, err := r.db.Query(query, userID, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	byID := make(map[int64]int)
	for rows.Next() {
		var t models.Transaction
		var p models.Person
		if err := rows.Scan(&t.ID, &t.UserID, &t.PersonID, &t.Type, &t.Amount, &t.SettledAmount,
			&t.Settled, &t.DueDate, &t.Note, &t.ParentID, &t.CreatedAt,
			&p.ID, &p.UserID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Person = &p
		byID[t.ID] = len(transactions)
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach each settlement to its parent.
	for _, t := range transactions {
		if t.ParentID == nil {
			continue
		}
		if idx, ok := byID[*t.ParentID]; ok {
			transactions[idx].Settlements = append(transactions[idx].Settlements, t)
		}
	}
	return transactions, nil
}

// ListUnsettled returns the user's open lend/borrow entries
func (r *Repository) ListUnsettled(userID int64) ([]models.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM transactions
		WHERE user_id = $1 AND settled = FALSE`, txColumns)
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsettled transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// ListDueBetween returns unsettled entries of one type with a due date in
// [from, to], joined with person names, due date ascending.
func (r *Repository) ListDueBetween(userID int64, txType string, from, to time.Time) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.person_id, t.type, t.amount, t.settled_amount,
		       t.settled, t.due_date, t.note, t.parent_id, t.created_at,
		       p.id, p.user_id, p.name, p.created_at
		FROM transactions t
		JOIN persons p ON p.id = t.person_id
		WHERE t.user_id = $1 AND t.type = $2 AND t.settled = FALSE
		  AND t.due_date >= $3 AND t.due_date <= $4
		ORDER BY t.due_date ASC`
	rows, err := r.db.Query(query, userID, txType, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list due transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var p models.Person
		if err := rows.Scan(&t.ID, &t.UserID, &t.PersonID, &t.Type, &t.Amount, &t.SettledAmount,
			&t.Settled, &t.DueDate, &t.Note, &t.ParentID, &t.CreatedAt,
			&p.ID, &p.UserID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan due transaction: %w", err)
		}
		t.Person = &p
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// OutstandingByType sums amount minus settled_amount over open entries,
// grouped by type.
func (r *Repository) OutstandingByType(userID int64) (map[string]decimal.Decimal, error) {
	query := `
		SELECT type, COALESCE(SUM(amount - settled_amount), 0)
		FROM transactions
		WHERE user_id = $1 AND settled = FALSE
		GROUP BY type`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum outstanding balances: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var txType string
		var sum decimal.Decimal
		if err := rows.Scan(&txType, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan outstanding sum: %w", err)
		}
		sums[txType] = sum
	}
	return sums, rows.Err()
}

// Settle applies a partial or full settlement against a transaction. The
// parent row is locked for the duration of the transaction so concurrent
// settlements cannot both pass validation against a stale balance. A nil
// requested amount settles the remaining balance in full.
func (r *Repository) Settle(userID, id int64, requested *decimal.Decimal, date time.Time) (*models.Transaction, error) {
	settlement := &models.Transaction{}
	err := r.withTx(func(tx *sql.Tx) error {
		parent := &models.Transaction{}
		query := fmt.Sprintf(`SELECT %s FROM transactions WHERE id = $1 AND user_id = $2 FOR UPDATE`, txColumns)
		err := scanTransaction(tx.QueryRow(query, id, userID), parent)
		if err == sql.ErrNoRows {
			return fmt.Errorf("transaction %d: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to lock transaction: %w", err)
		}

		plan, err := ledger.Plan(parent, requested)
		if err != nil {
			return err
		}

		note := fmt.Sprintf("Settlement for %d", parent.ID)
		insert := `
			INSERT INTO transactions (user_id, person_id, type, amount, settled_amount, settled, due_date, note, parent_id, created_at)
			VALUES ($1, $2, $3, $4, $4, TRUE, $5, $6, $7, CURRENT_TIMESTAMP)
			RETURNING id, created_at`
		if err := tx.QueryRow(insert, userID, parent.PersonID, plan.Type, plan.Amount, date, note, parent.ID).
			Scan(&settlement.ID, &settlement.CreatedAt); err != nil {
			return fmt.Errorf("failed to create settlement entry: %w", err)
		}
		settlement.UserID = userID
		settlement.PersonID = parent.PersonID
		settlement.Type = plan.Type
		settlement.Amount = plan.Amount
		settlement.SettledAmount = plan.Amount
		settlement.Settled = true
		settlement.DueDate = &date
		settlement.Note = &note
		settlement.ParentID = &parent.ID

		if _, err := tx.Exec(
			`UPDATE transactions SET settled_amount = $1, settled = $2 WHERE id = $3`,
			plan.NewSettled, plan.FullySettled, parent.ID,
		); err != nil {
			return fmt.Errorf("failed to update parent transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settlement, nil
}

// DeleteEntry removes a khata entry. Deleting a settlement reverses its
// parent's settled amount and re-derives the settled flag; deleting an
// original entry removes its settlement children with it.
func (r *Repository) DeleteEntry(userID, id int64) error {
	return r.withTx(func(tx *sql.Tx) error {
		entry := &models.Transaction{}
		query := fmt.Sprintf(`SELECT %s FROM transactions WHERE id = $1 AND user_id = $2 FOR UPDATE`, txColumns)
		err := scanTransaction(tx.QueryRow(query, id, userID), entry)
		if err == sql.ErrNoRows {
			return fmt.Errorf("transaction %d: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to lock transaction: %w", err)
		}

		if entry.ParentID != nil {
			parent := &models.Transaction{}
			err := scanTransaction(tx.QueryRow(query, *entry.ParentID, userID), parent)
			if err != nil && err != sql.ErrNoRows {
				return fmt.Errorf("failed to lock parent transaction: %w", err)
			}
			if err == nil {
				newSettled, settled := ledger.Reverse(parent, entry.Amount)
				if _, err := tx.Exec(
					`UPDATE transactions SET settled_amount = $1, settled = $2 WHERE id = $3`,
					newSettled, settled, parent.ID,
				); err != nil {
					return fmt.Errorf("failed to reverse parent settlement: %w", err)
				}
			}
			if _, err := tx.Exec(`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
				return fmt.Errorf("failed to delete settlement entry: %w", err)
			}
			return nil
		}

		if _, err := tx.Exec(`DELETE FROM transactions WHERE parent_id = $1 AND user_id = $2`, id, userID); err != nil {
			return fmt.Errorf("failed to delete settlement children: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}
		return nil
	})
}

// CloseKhata deletes every transaction for one person, keeping the person.
func (r *Repository) CloseKhata(userID, personID int64) (int64, error) {
	var deleted int64
	err := r.withTx(func(tx *sql.Tx) error {
		result, err := tx.Exec(
			`DELETE FROM transactions WHERE user_id = $1 AND person_id = $2`, userID, personID,
		)
		if err != nil {
			return fmt.Errorf("failed to close khata: %w", err)
		}
		deleted, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to close khata: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
