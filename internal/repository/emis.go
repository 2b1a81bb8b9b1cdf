package repository

import (
	"database/sql"
	"fmt"

	"github.com/smartexpense/smartexpense/internal/models"
)

// CreateEMI creates a new EMI in the database
func (r *Repository) CreateEMI(e *models.EMI) error {
	query := `
		INSERT INTO emis (user_id, name, amount, emi_type, due_day, start_date, end_date, total_emis, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, e.UserID, e.Name, e.Amount, e.EMIType, e.DueDay,
		e.StartDate, e.EndDate, e.TotalEMIs).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create emi: %w", err)
	}
	return nil
}

// ListEMIs returns the user's EMIs with their paid marks, newest first
func (r *Repository) ListEMIs(userID int64) ([]models.EMI, error) {
	query := `
		SELECT id, user_id, name, amount, emi_type, due_day, start_date, end_date, total_emis, created_at
		FROM emis
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list emis: %w", err)
	}
	defer rows.Close()

	var emis []models.EMI
	for rows.Next() {
		var e models.EMI
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.Amount, &e.EMIType, &e.DueDay,
			&e.StartDate, &e.EndDate, &e.TotalEMIs, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan emi: %w", err)
		}
		emis = append(emis, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range emis {
		marks, err := r.ListPaidMarksForItem(userID, models.ItemEMI, emis[i].ID)
		if err != nil {
			return nil, err
		}
		emis[i].PaidMarks = marks
	}
	return emis, nil
}

// FindEMI retrieves one EMI with its paid marks
func (r *Repository) FindEMI(userID, id int64) (*models.EMI, error) {
	e := &models.EMI{}
	query := `
		SELECT id, user_id, name, amount, emi_type, due_day, start_date, end_date, total_emis, created_at
		FROM emis
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRow(query, id, userID).
		Scan(&e.ID, &e.UserID, &e.Name, &e.Amount, &e.EMIType, &e.DueDay,
			&e.StartDate, &e.EndDate, &e.TotalEMIs, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("emi %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find emi: %w", err)
	}

	marks, err := r.ListPaidMarksForItem(userID, models.ItemEMI, e.ID)
	if err != nil {
		return nil, err
	}
	e.PaidMarks = marks
	return e, nil
}

// UpdateEMI updates an EMI's editable fields
func (r *Repository) UpdateEMI(e *models.EMI) error {
	query := `
		UPDATE emis
		SET name = $1, amount = $2, emi_type = $3, due_day = $4,
		    start_date = $5, end_date = $6, total_emis = $7
		WHERE id = $8 AND user_id = $9`
	result, err := r.db.Exec(query, e.Name, e.Amount, e.EMIType, e.DueDay,
		e.StartDate, e.EndDate, e.TotalEMIs, e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("failed to update emi: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update emi: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("emi %d: %w", e.ID, ErrNotFound)
	}
	return nil
}

// DeleteEMI removes an EMI; its paid marks cascade via the foreign key
func (r *Repository) DeleteEMI(userID, id int64) error {
	result, err := r.db.Exec(`DELETE FROM emis WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete emi: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete emi: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("emi %d: %w", id, ErrNotFound)
	}
	return nil
}

// SumEMIAmounts sums the user's monthly EMI amounts
func (r *Repository) SumEMIAmounts(userID int64) (float64, error) {
	var total float64
	if err := r.db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM emis WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum emis: %w", err)
	}
	return total, nil
}

// MonthlyEMILoad returns the active EMI total and count for each of the last
// 12 calendar months. An EMI is active in a month when [start_date, end_date]
// overlaps it.
func (r *Repository) MonthlyEMILoad(userID int64) ([]models.MonthlyEMIPoint, error) {
	query := `
		WITH months AS (
			SELECT generate_series(
				date_trunc('month', CURRENT_DATE) - interval '11 months',
				date_trunc('month', CURRENT_DATE),
				interval '1 month'
			) AS month_start
		)
		SELECT to_char(m.month_start, 'YYYY-MM'),
		       COALESCE(SUM(e.amount), 0),
		       COUNT(e.id)
		FROM months m
		LEFT JOIN emis e
			ON e.user_id = $1
			AND e.start_date < m.month_start + interval '1 month'
			AND e.end_date >= m.month_start
		GROUP BY m.month_start
		ORDER BY m.month_start`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to build emi load series: %w", err)
	}
	defer rows.Close()

	var points []models.MonthlyEMIPoint
	for rows.Next() {
		var p models.MonthlyEMIPoint
		if err := rows.Scan(&p.Month, &p.Total, &p.Count); err != nil {
			return nil, fmt.Errorf("failed to scan emi load point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
