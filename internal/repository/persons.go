package repository

import (
	"database/sql"
	"fmt"

	"github.com/smartexpense/smartexpense/internal/models"
)

// CreatePerson creates a new khata counterparty
func (r *Repository) CreatePerson(p *models.Person) error {
	query := `
		INSERT INTO persons (user_id, name, created_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	if err := r.db.QueryRow(query, p.UserID, p.Name).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("failed to create person: %w", err)
	}
	return nil
}

// ListPersons returns the user's persons with lend/borrow entry counts,
// sorted by name. Net balances are filled in by the service from
// outstanding transactions.
func (r *Repository) ListPersons(userID int64) ([]models.Person, error) {
	query := `
		SELECT p.id, p.user_id, p.name, p.created_at,
		       COUNT(t.id) FILTER (WHERE t.type = 'lend') AS lend_count,
		       COUNT(t.id) FILTER (WHERE t.type = 'borrow') AS borrow_count
		FROM persons p
		LEFT JOIN transactions t ON t.person_id = p.id
		WHERE p.user_id = $1
		GROUP BY p.id
		ORDER BY p.name ASC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	defer rows.Close()

	var persons []models.Person
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt, &p.LendCount, &p.BorrowCount); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

// FindPerson retrieves one person
func (r *Repository) FindPerson(userID, id int64) (*models.Person, error) {
	p := &models.Person{}
	query := `SELECT id, user_id, name, created_at FROM persons WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRow(query, id, userID).Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("person %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find person: %w", err)
	}
	return p, nil
}

// RenamePerson updates a person's name
func (r *Repository) RenamePerson(userID, id int64, name string) (*models.Person, error) {
	p := &models.Person{UserID: userID, Name: name}
	query := `
		UPDATE persons SET name = $1
		WHERE id = $2 AND user_id = $3
		RETURNING id, created_at`
	err := r.db.QueryRow(query, name, id, userID).Scan(&p.ID, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("person %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to rename person: %w", err)
	}
	return p, nil
}

// DeletePerson removes a person with no transactions. Persons with khata
// history are refused; close the khata first.
func (r *Repository) DeletePerson(userID, id int64) error {
	var txCount int
	if err := r.db.QueryRow(
		`SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND person_id = $2`, userID, id,
	).Scan(&txCount); err != nil {
		return fmt.Errorf("failed to count person transactions: %w", err)
	}
	if txCount > 0 {
		return fmt.Errorf("person %d has %d transactions: %w", id, txCount, ErrInUse)
	}

	result, err := r.db.Exec(`DELETE FROM persons WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("person %d: %w", id, ErrNotFound)
	}
	return nil
}
