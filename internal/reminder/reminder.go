package reminder

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/smartexpense/smartexpense/internal/config"
	"github.com/smartexpense/smartexpense/internal/models"
	"github.com/smartexpense/smartexpense/internal/service"
	"github.com/smartexpense/smartexpense/internal/utils/email"
)

// Job emails each opted-in user a digest of due payments on a daily
// schedule, honoring the user's reminder frequency.
type Job struct {
	svc    *service.Service
	sender *email.Sender
	cfg    *config.Config
	log    *logrus.Logger
	cron   *cron.Cron
}

func NewJob(svc *service.Service, sender *email.Sender, cfg *config.Config, log *logrus.Logger) *Job {
	return &Job{
		svc:    svc,
		sender: sender,
		cfg:    cfg,
		log:    log,
		cron:   cron.New(),
	}
}

// Start schedules the daily reminder run
func (j *Job) Start() error {
	if _, err := j.cron.AddFunc(j.cfg.ReminderCron, j.Run); err != nil {
		return err
	}
	j.cron.Start()
	j.log.Infof("Reminder job scheduled: %s", j.cfg.ReminderCron)
	return nil
}

// Stop halts the scheduler
func (j *Job) Stop() {
	j.cron.Stop()
}

// Run sends the reminder digest to every user due for one today
func (j *Job) Run() {
	users, err := j.svc.ListReminderUsers()
	if err != nil {
		j.log.Errorf("Failed to list reminder users: %v", err)
		return
	}

	now := time.Now().UTC()
	sent := 0
	for _, user := range users {
		if !shouldSendToday(user.ReminderFrequency, now) {
			continue
		}

		due, err := j.svc.DashboardReminders(user.ID)
		if err != nil {
			j.log.Errorf("Failed to build reminders for user %d: %v", user.ID, err)
			continue
		}
		collect, err := j.svc.CollectReminders(user.ID)
		if err != nil {
			j.log.Errorf("Failed to build collect reminders for user %d: %v", user.ID, err)
			continue
		}
		if user.ReminderFrequency == "3_days_before" {
			due = nearDue(due)
		}
		if len(due) == 0 && len(collect) == 0 {
			continue
		}

		if err := j.sender.SendDueReminders(user.Email, user.Name, due, collect); err != nil {
			continue
		}
		sent++
	}
	j.log.Infof("Reminder run finished: %d of %d users emailed", sent, len(users))
}

// shouldSendToday applies the user's reminder frequency to today's date.
// Weekly digests go out on Mondays.
func shouldSendToday(frequency string, now time.Time) bool {
	switch frequency {
	case "weekly":
		return now.Weekday() == time.Monday
	default:
		return true
	}
}

// nearDue keeps only reminders due within the next three days
func nearDue(reminders []models.Reminder) []models.Reminder {
	filtered := make([]models.Reminder, 0, len(reminders))
	for _, r := range reminders {
		if r.Urgency <= 2 {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
