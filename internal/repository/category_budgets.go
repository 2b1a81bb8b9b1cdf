package repository

import (
	"fmt"

	"github.com/smartexpense/smartexpense/internal/models"
)

// ListCategoryBudgets returns the user's per-type budget caps
func (r *Repository) ListCategoryBudgets(userID int64) ([]models.CategoryBudget, error) {
	query := `
		SELECT b.id, b.user_id, b.type_id, t.name, b.amount, b.created_at
		FROM category_budgets b
		JOIN expense_types t ON t.id = b.type_id
		WHERE b.user_id = $1
		ORDER BY t.name ASC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list category budgets: %w", err)
	}
	defer rows.Close()

	var budgets []models.CategoryBudget
	for rows.Next() {
		var b models.CategoryBudget
		if err := rows.Scan(&b.ID, &b.UserID, &b.TypeID, &b.TypeName, &b.Amount, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// UpsertCategoryBudget creates or replaces the budget for one expense type
func (r *Repository) UpsertCategoryBudget(b *models.CategoryBudget) error {
	query := `
		INSERT INTO category_budgets (user_id, type_id, amount, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, type_id) DO UPDATE SET amount = EXCLUDED.amount
		RETURNING id, created_at`
	if err := r.db.QueryRow(query, b.UserID, b.TypeID, b.Amount).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("failed to upsert category budget: %w", err)
	}
	return nil
}
