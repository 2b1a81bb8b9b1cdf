package service

import (
	"github.com/smartexpense/smartexpense/internal/models"
)

// GetSettings returns the user's preferences
func (s *Service) GetSettings(userID int64) (*models.Settings, error) {
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	return &models.Settings{
		Email:             user.Email,
		Currency:          user.Currency,
		MonthlyBudget:     user.MonthlyBudget,
		DarkMode:          user.DarkMode,
		EmailReminders:    user.EmailReminders,
		ReminderFrequency: user.ReminderFrequency,
	}, nil
}

// ListReminderUsers returns users who opted into email reminders
func (s *Service) ListReminderUsers() ([]models.User, error) {
	return s.repo.ListReminderUsers()
}

// UpdateSettings saves the user's preferences
func (s *Service) UpdateSettings(userID int64, settings *models.Settings) (*models.Settings, error) {
	if err := s.repo.UpdateSettings(userID, settings); err != nil {
		return nil, err
	}
	s.log.Infof("Settings updated for user %d", userID)
	return s.GetSettings(userID)
}
