package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/smartexpense/smartexpense/internal/models"
)

// CreateUser creates a new user together with their default expense and EMI
// types in one transaction.
func (r *Repository) CreateUser(user *models.User, defaultExpenseTypes, defaultEMITypes []string) error {
	return r.withTx(func(tx *sql.Tx) error {
		query := `
			INSERT INTO users (name, email, password_hash, created_at)
			VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
			RETURNING id, currency, dark_mode, email_reminders, reminder_frequency, created_at`
		err := tx.QueryRow(query, user.Name, user.Email, user.PasswordHash).
			Scan(&user.ID, &user.Currency, &user.DarkMode, &user.EmailReminders, &user.ReminderFrequency, &user.CreatedAt)
		if isUniqueViolation(err) {
			return fmt.Errorf("email %s: %w", user.Email, ErrDuplicate)
		}
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		for _, name := range defaultExpenseTypes {
			if _, err := tx.Exec(
				`INSERT INTO expense_types (user_id, name, is_default, created_at) VALUES ($1, $2, TRUE, CURRENT_TIMESTAMP)`,
				user.ID, name,
			); err != nil {
				return fmt.Errorf("failed to seed expense type %q: %w", name, err)
			}
		}
		for _, name := range defaultEMITypes {
			if _, err := tx.Exec(
				`INSERT INTO emi_types (user_id, name, is_default, created_at) VALUES ($1, $2, TRUE, CURRENT_TIMESTAMP)`,
				user.ID, name,
			); err != nil {
				return fmt.Errorf("failed to seed emi type %q: %w", name, err)
			}
		}
		return nil
	})
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, email, password_hash, currency, monthly_budget, dark_mode,
		       email_reminders, reminder_frequency, created_at
		FROM users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Currency,
			&user.MonthlyBudget, &user.DarkMode, &user.EmailReminders, &user.ReminderFrequency, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, email, password_hash, currency, monthly_budget, dark_mode,
		       email_reminders, reminder_frequency, created_at
		FROM users
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Currency,
			&user.MonthlyBudget, &user.DarkMode, &user.EmailReminders, &user.ReminderFrequency, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateSettings updates the user-editable preference fields
func (r *Repository) UpdateSettings(userID int64, s *models.Settings) error {
	query := `
		UPDATE users
		SET currency = $1, monthly_budget = $2, dark_mode = $3,
		    email_reminders = $4, reminder_frequency = $5
		WHERE id = $6`
	result, err := r.db.Exec(query, s.Currency, s.MonthlyBudget, s.DarkMode, s.EmailReminders, s.ReminderFrequency, userID)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return nil
}

// ListReminderUsers returns users who opted into email reminders
func (r *Repository) ListReminderUsers() ([]models.User, error) {
	query := `
		SELECT id, name, email, currency, reminder_frequency
		FROM users
		WHERE email_reminders = TRUE`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminder users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Currency, &u.ReminderFrequency); err != nil {
			return nil, fmt.Errorf("failed to scan reminder user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
