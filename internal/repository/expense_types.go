package repository

import (
	"database/sql"
	"fmt"

	"github.com/smartexpense/smartexpense/internal/models"
)

// ListExpenseTypes returns the user's expense types with usage counts,
// defaults first then by name.
func (r *Repository) ListExpenseTypes(userID int64) ([]models.ExpenseType, error) {
	query := `
		SELECT t.id, t.user_id, t.name, t.icon, t.is_default, t.created_at,
		       COUNT(e.id) AS expense_count
		FROM expense_types t
		LEFT JOIN expenses e ON e.type_id = t.id
		WHERE t.user_id = $1
		GROUP BY t.id
		ORDER BY t.is_default DESC, t.name ASC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense types: %w", err)
	}
	defer rows.Close()

	var types []models.ExpenseType
	for rows.Next() {
		var t models.ExpenseType
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Icon, &t.IsDefault, &t.CreatedAt, &t.ExpenseCount); err != nil {
			return nil, fmt.Errorf("failed to scan expense type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// FindExpenseTypeByName retrieves an expense type by case-insensitive name
func (r *Repository) FindExpenseTypeByName(userID int64, name string) (*models.ExpenseType, error) {
	t := &models.ExpenseType{}
	query := `
		SELECT id, user_id, name, icon, is_default, created_at
		FROM expense_types
		WHERE user_id = $1 AND LOWER(name) = LOWER($2)`
	err := r.db.QueryRow(query, userID, name).
		Scan(&t.ID, &t.UserID, &t.Name, &t.Icon, &t.IsDefault, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense type %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find expense type: %w", err)
	}
	return t, nil
}

// CreateExpenseType creates a new expense type, rejecting duplicates by
// case-insensitive name.
func (r *Repository) CreateExpenseType(t *models.ExpenseType) error {
	if _, err := r.FindExpenseTypeByName(t.UserID, t.Name); err == nil {
		return fmt.Errorf("expense type %q: %w", t.Name, ErrDuplicate)
	}
	query := `
		INSERT INTO expense_types (user_id, name, icon, is_default, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, t.UserID, t.Name, t.Icon, t.IsDefault).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense type: %w", err)
	}
	return nil
}

// RenameExpenseType renames an expense type, rejecting a name already used
// by another type.
func (r *Repository) RenameExpenseType(userID, id int64, name string) (*models.ExpenseType, error) {
	existing, err := r.FindExpenseTypeByName(userID, name)
	if err == nil && existing.ID != id {
		return nil, fmt.Errorf("expense type %q: %w", name, ErrDuplicate)
	}

	t := &models.ExpenseType{UserID: userID, Name: name}
	query := `
		UPDATE expense_types SET name = $1
		WHERE id = $2 AND user_id = $3
		RETURNING id, icon, is_default, created_at`
	err = r.db.QueryRow(query, name, id, userID).Scan(&t.ID, &t.Icon, &t.IsDefault, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense type %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to rename expense type: %w", err)
	}
	return t, nil
}

// DeleteExpenseType removes an unused expense type. Types still linked to
// expenses are refused.
func (r *Repository) DeleteExpenseType(userID, id int64) error {
	var linked int
	if err := r.db.QueryRow(
		`SELECT COUNT(*) FROM expenses WHERE user_id = $1 AND type_id = $2`, userID, id,
	).Scan(&linked); err != nil {
		return fmt.Errorf("failed to count linked expenses: %w", err)
	}
	if linked > 0 {
		return fmt.Errorf("expense type %d is linked to %d expenses: %w", id, linked, ErrInUse)
	}

	result, err := r.db.Exec(`DELETE FROM expense_types WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense type: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("expense type %d: %w", id, ErrNotFound)
	}
	return nil
}
