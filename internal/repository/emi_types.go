package repository

import (
	"database/sql"
	"fmt"

	"github.com/smartexpense/smartexpense/internal/models"
)

// ListEMITypes returns the user's EMI types with usage counts, defaults
// first then by name.
func (r *Repository) ListEMITypes(userID int64) ([]models.EMIType, error) {
	query := `
		SELECT t.id, t.user_id, t.name, t.is_default, t.created_at,
		       COUNT(e.id) AS emi_count
		FROM emi_types t
		LEFT JOIN emis e ON e.user_id = t.user_id AND LOWER(e.emi_type) = LOWER(t.name)
		WHERE t.user_id = $1
		GROUP BY t.id
		ORDER BY t.is_default DESC, t.name ASC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list emi types: %w", err)
	}
	defer rows.Close()

	var types []models.EMIType
	for rows.Next() {
		var t models.EMIType
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.IsDefault, &t.CreatedAt, &t.EMICount); err != nil {
			return nil, fmt.Errorf("failed to scan emi type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// FindEMITypeByName retrieves an EMI type by case-insensitive name
func (r *Repository) FindEMITypeByName(userID int64, name string) (*models.EMIType, error) {
	t := &models.EMIType{}
	query := `
		SELECT id, user_id, name, is_default, created_at
		FROM emi_types
		WHERE user_id = $1 AND LOWER(name) = LOWER($2)`
	err := r.db.QueryRow(query, userID, name).
		Scan(&t.ID, &t.UserID, &t.Name, &t.IsDefault, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("emi type %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find emi type: %w", err)
	}
	return t, nil
}

// CreateEMIType creates a new EMI type, rejecting duplicates by
// case-insensitive name.
func (r *Repository) CreateEMIType(t *models.EMIType) error {
	if _, err := r.FindEMITypeByName(t.UserID, t.Name); err == nil {
		return fmt.Errorf("emi type %q: %w", t.Name, ErrDuplicate)
	}
	query := `
		INSERT INTO emi_types (user_id, name, is_default, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, t.UserID, t.Name, t.IsDefault).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create emi type: %w", err)
	}
	return nil
}

// RenameEMIType renames an EMI type and cascades the new name to EMIs that
// referenced the old one, in one transaction.
func (r *Repository) RenameEMIType(userID, id int64, name string) (*models.EMIType, error) {
	existing := &models.EMIType{}
	err := r.db.QueryRow(
		`SELECT id, name FROM emi_types WHERE id = $1 AND user_id = $2`, id, userID,
	).Scan(&existing.ID, &existing.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("emi type %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find emi type: %w", err)
	}

	dup, err := r.FindEMITypeByName(userID, name)
	if err == nil && dup.ID != id {
		return nil, fmt.Errorf("emi type %q: %w", name, ErrDuplicate)
	}

	t := &models.EMIType{UserID: userID, Name: name}
	err = r.withTx(func(tx *sql.Tx) error {
		query := `
			UPDATE emi_types SET name = $1
			WHERE id = $2 AND user_id = $3
			RETURNING id, is_default, created_at`
		if err := tx.QueryRow(query, name, id, userID).Scan(&t.ID, &t.IsDefault, &t.CreatedAt); err != nil {
			return fmt.Errorf("failed to rename emi type: %w", err)
		}
		if _, err := tx.Exec(
			`UPDATE emis SET emi_type = $1 WHERE user_id = $2 AND LOWER(emi_type) = LOWER($3)`,
			name, userID, existing.Name,
		); err != nil {
			return fmt.Errorf("failed to cascade emi type rename: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteEMIType removes an unused EMI type. Types still referenced by EMIs
// are refused.
func (r *Repository) DeleteEMIType(userID, id int64) error {
	t, err := r.findEMITypeByID(userID, id)
	if err != nil {
		return err
	}

	var inUse int
	if err := r.db.QueryRow(
		`SELECT COUNT(*) FROM emis WHERE user_id = $1 AND LOWER(emi_type) = LOWER($2)`, userID, t.Name,
	).Scan(&inUse); err != nil {
		return fmt.Errorf("failed to count linked emis: %w", err)
	}
	if inUse > 0 {
		return fmt.Errorf("emi type %q is used by %d emis: %w", t.Name, inUse, ErrInUse)
	}

	if _, err := r.db.Exec(`DELETE FROM emi_types WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return fmt.Errorf("failed to delete emi type: %w", err)
	}
	return nil
}

func (r *Repository) findEMITypeByID(userID, id int64) (*models.EMIType, error) {
	t := &models.EMIType{}
	err := r.db.QueryRow(
		`SELECT id, user_id, name, is_default, created_at FROM emi_types WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&t.ID, &t.UserID, &t.Name, &t.IsDefault, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("emi type %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find emi type: %w", err)
	}
	return t, nil
}
