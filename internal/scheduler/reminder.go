// Package scheduler runs the daily reminder sweep on a cron schedule,
// disjoint from request handling.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/eventfesta/eventfesta-api/internal/domain"
)

// Daily at midnight.
const reminderSchedule = "0 0 * * *"

type ReminderEventRepository interface {
	FindStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error)
}

type ReminderRegistrationRepository interface {
	FindByEventID(ctx context.Context, eventID uint) ([]domain.Registration, error)
}

type ReminderMailer interface {
	SendEventReminder(event domain.Event, recipientEmails []string) error
}

type ReminderJob struct {
	eventRepo        ReminderEventRepository
	registrationRepo ReminderRegistrationRepository
	mailer           ReminderMailer
	cron             *cron.Cron
	now              func() time.Time
}

func NewReminderJob(eventRepo ReminderEventRepository, registrationRepo ReminderRegistrationRepository, mailer ReminderMailer) *ReminderJob {
	return &ReminderJob{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		mailer:           mailer,
		cron:             cron.New(),
		now:              time.Now,
	}
}

// Start schedules the daily run and launches the cron loop on its own
// goroutine.
func (j *ReminderJob) Start() error {
	if _, err := j.cron.AddFunc(reminderSchedule, j.Run); err != nil {
		return err
	}
	j.cron.Start()

	return nil
}

func (j *ReminderJob) Stop() {
	j.cron.Stop()
}

// Run sweeps events starting within the next 24 hours and sends each one's
// registrants a single blind-copied reminder. A failed send is logged and
// does not block the remaining events.
func (j *ReminderJob) Run() {
	ctx := context.Background()
	now := j.now()

	events, err := j.eventRepo.FindStartingBetween(ctx, now, now.Add(24*time.Hour))
	if err != nil {
		zap.L().Error("reminder sweep failed to list events", zap.Error(err))
		return
	}

	for _, event := range events {
		registrations, err := j.registrationRepo.FindByEventID(ctx, event.ID)
		if err != nil {
			zap.L().Error("reminder sweep failed to list registrations",
				zap.Uint("event_id", event.ID),
				zap.Error(err))
			continue
		}
		if len(registrations) == 0 {
			continue
		}

		emails := make([]string, 0, len(registrations))
		for _, reg := range registrations {
			emails = append(emails, reg.RegisteredEmail)
		}

		if err := j.mailer.SendEventReminder(event, emails); err != nil {
			zap.L().Error("failed to send event reminder",
				zap.Uint("event_id", event.ID),
				zap.Int("recipients", len(emails)),
				zap.Error(err))
			continue
		}

		zap.L().Info("event reminder sent",
			zap.Uint("event_id", event.ID),
			zap.Int("recipients", len(emails)))
	}
}
