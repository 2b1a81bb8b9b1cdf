package repository

import (
	"database/sql"
	"fmt"

	"github.com/smartexpense/smartexpense/internal/models"
)

// CreateRecurring creates a new recurring payment in the database
func (r *Repository) CreateRecurring(p *models.RecurringPayment) error {
	query := `
		INSERT INTO recurring_payments (user_id, name, type, amount, due_day, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, p.UserID, p.Name, p.Type, p.Amount, p.DueDay).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create recurring payment: %w", err)
	}
	return nil
}

// ListRecurring returns the user's recurring payments with their paid
// marks, newest first.
func (r *Repository) ListRecurring(userID int64) ([]models.RecurringPayment, error) {
	query := `
		SELECT id, user_id, name, type, amount, due_day, created_at
		FROM recurring_payments
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring payments: %w", err)
	}
	defer rows.Close()

	var payments []models.RecurringPayment
	for rows.Next() {
		var p models.RecurringPayment
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Type, &p.Amount, &p.DueDay, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recurring payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range payments {
		marks, err := r.ListPaidMarksForItem(userID, models.ItemRecurring, payments[i].ID)
		if err != nil {
			return nil, err
		}
		payments[i].PaidMarks = marks
	}
	return payments, nil
}

// FindRecurring retrieves one recurring payment
func (r *Repository) FindRecurring(userID, id int64) (*models.RecurringPayment, error) {
	p := &models.RecurringPayment{}
	query := `
		SELECT id, user_id, name, type, amount, due_day, created_at
		FROM recurring_payments
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRow(query, id, userID).
		Scan(&p.ID, &p.UserID, &p.Name, &p.Type, &p.Amount, &p.DueDay, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("recurring payment %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find recurring payment: %w", err)
	}
	return p, nil
}

// UpdateRecurring updates a recurring payment's editable fields
func (r *Repository) UpdateRecurring(p *models.RecurringPayment) error {
	query := `
		UPDATE recurring_payments
		SET name = $1, type = $2, amount = $3, due_day = $4
		WHERE id = $5 AND user_id = $6`
	result, err := r.db.Exec(query, p.Name, p.Type, p.Amount, p.DueDay, p.ID, p.UserID)
	if err != nil {
		return fmt.Errorf("failed to update recurring payment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update recurring payment: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("recurring payment %d: %w", p.ID, ErrNotFound)
	}
	return nil
}

// DeleteRecurring removes a recurring payment; its paid marks cascade
func (r *Repository) DeleteRecurring(userID, id int64) error {
	result, err := r.db.Exec(`DELETE FROM recurring_payments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete recurring payment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete recurring payment: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("recurring payment %d: %w", id, ErrNotFound)
	}
	return nil
}

// SumRecurringAmounts sums the user's monthly recurring amounts
func (r *Repository) SumRecurringAmounts(userID int64) (float64, error) {
	var total float64
	if err := r.db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM recurring_payments WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum recurring payments: %w", err)
	}
	return total, nil
}
