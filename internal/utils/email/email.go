package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/smartexpense/smartexpense/internal/config"
	"github.com/smartexpense/smartexpense/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendDueReminders sends one digest listing the user's upcoming payments
// and lends due for collection.
func (s *Sender) SendDueReminders(to, username string, due []models.Reminder, collect []models.CollectReminder) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("SmartExpense: %d payments need your attention", len(due)+len(collect))

	body := fmt.Sprintf("Dear %s,\n\n", username)
	if len(due) > 0 {
		body += "Upcoming payments:\n"
		for _, r := range due {
			body += fmt.Sprintf("  - %s: %.2f due on %s\n", r.Title, r.Amount, r.DueDate.Format("2006-01-02"))
		}
		body += "\n"
	}
	if len(collect) > 0 {
		body += "Money to collect:\n"
		for _, r := range collect {
			body += fmt.Sprintf("  - %s owes you %s, due %s\n", r.PersonName, r.Amount.StringFixed(2), r.DueDate.Format("2006-01-02"))
		}
		body += "\n"
	}
	body += "Best regards,\nSmartExpense"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
