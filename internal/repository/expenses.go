package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/smartexpense/smartexpense/internal/models"
)

// CreateExpense creates a new expense in the database
func (r *Repository) CreateExpense(e *models.Expense) error {
	query := `
		INSERT INTO expenses (user_id, amount, date, type_id, note, source, source_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, e.UserID, e.Amount, e.Date, e.TypeID, e.Note, e.Source, e.SourceID).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// ListExpenses returns a filtered, sorted, paginated expense listing with
// the total row count.
func (r *Repository) ListExpenses(userID int64, f models.ExpenseFilter) (*models.ExpensePage, error) {
	where := []string{"e.user_id = $1"}
	args := []interface{}{userID}

	appendArg := func(clause string, value interface{}) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if f.DateFrom != nil {
		appendArg("e.date >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		appendArg("e.date <= $%d", *f.DateTo)
	}
	if f.TypeID != nil {
		appendArg("e.type_id = $%d", *f.TypeID)
	}
	if f.Search != "" {
		appendArg("e.note ILIKE $%d", "%"+f.Search+"%")
	}
	if f.MinAmount != nil {
		appendArg("e.amount >= $%d", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		appendArg("e.amount <= $%d", *f.MaxAmount)
	}
	whereClause := strings.Join(where, " AND ")

	orderBy := "e.date DESC"
	switch f.Sort {
	case "date_asc":
		orderBy = "e.date ASC"
	case "amount_desc":
		orderBy = "e.amount DESC"
	case "amount_asc":
		orderBy = "e.amount ASC"
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM expenses e WHERE %s`, whereClause)
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT e.id, e.user_id, e.amount, e.date, e.type_id, t.name,
		       e.note, COALESCE(e.source, ''), e.source_id, e.created_at
		FROM expenses e
		JOIN expense_types t ON t.id = e.type_id
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`, whereClause, orderBy, len(args)+1, len(args)+2)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	items := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Date, &e.TypeID, &e.TypeName,
			&e.Note, &e.Source, &e.SourceID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages := (total + f.Limit - 1) / f.Limit
	return &models.ExpensePage{
		Items: items,
		Pagination: models.Pagination{
			Page:       f.Page,
			Limit:      f.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// ListAllExpenses returns every expense for a user, newest first; used by
// the CSV export.
func (r *Repository) ListAllExpenses(userID int64) ([]models.Expense, error) {
	query := `
		SELECT e.id, e.user_id, e.amount, e.date, e.type_id, t.name,
		       e.note, COALESCE(e.source, ''), e.source_id, e.created_at
		FROM expenses e
		JOIN expense_types t ON t.id = e.type_id
		WHERE e.user_id = $1
		ORDER BY e.date DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Date, &e.TypeID, &e.TypeName,
			&e.Note, &e.Source, &e.SourceID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// DeleteExpense removes an expense owned by the user
func (r *Repository) DeleteExpense(userID, id int64) error {
	result, err := r.db.Exec(`DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("expense %d: %w", id, ErrNotFound)
	}
	return nil
}

// SumExpensesBetween sums expense amounts in [from, to]
func (r *Repository) SumExpensesBetween(userID int64, from, to time.Time) (float64, error) {
	var total float64
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE user_id = $1 AND date >= $2 AND date <= $3`
	if err := r.db.QueryRow(query, userID, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}

// CategoryTotalsBetween returns per-type expense totals in [from, to].
// Percentages are filled in by the report package.
func (r *Repository) CategoryTotalsBetween(userID int64, from, to time.Time) ([]models.CategorySummary, error) {
	query := `
		SELECT e.type_id, t.name, COALESCE(SUM(e.amount), 0)
		FROM expenses e
		JOIN expense_types t ON t.id = e.type_id
		WHERE e.user_id = $1 AND e.date >= $2 AND e.date <= $3
		GROUP BY e.type_id, t.name`
	rows, err := r.db.Query(query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to group expenses by type: %w", err)
	}
	defer rows.Close()

	var totals []models.CategorySummary
	for rows.Next() {
		var c models.CategorySummary
		if err := rows.Scan(&c.TypeID, &c.Category, &c.TotalAmount); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, c)
	}
	return totals, rows.Err()
}

// MonthlyExpenseTotals returns per-month expense totals for the last
// `months` calendar months, zero-filled for empty months.
func (r *Repository) MonthlyExpenseTotals(userID int64, months int) ([]models.MonthlyExpensePoint, error) {
	query := `
		WITH series AS (
			SELECT generate_series(
				date_trunc('month', CURRENT_DATE) - ($2 - 1) * interval '1 month',
				date_trunc('month', CURRENT_DATE),
				interval '1 month'
			) AS month_start
		)
		SELECT to_char(s.month_start, 'Mon YY'), COALESCE(SUM(e.amount), 0)
		FROM series s
		LEFT JOIN expenses e
			ON e.user_id = $1
			AND e.date >= s.month_start
			AND e.date < s.month_start + interval '1 month'
		GROUP BY s.month_start
		ORDER BY s.month_start`
	rows, err := r.db.Query(query, userID, months)
	if err != nil {
		return nil, fmt.Errorf("failed to build monthly totals: %w", err)
	}
	defer rows.Close()

	var points []models.MonthlyExpensePoint
	for rows.Next() {
		var p models.MonthlyExpensePoint
		if err := rows.Scan(&p.Month, &p.Total); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
