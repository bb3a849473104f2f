package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventfesta/eventfesta-api/internal/domain"
)

type fakeReminderEventRepo struct {
	events []domain.Event

	gotFrom time.Time
	gotTo   time.Time
	err     error
}

func (f *fakeReminderEventRepo) FindStartingBetween(_ context.Context, from, to time.Time) ([]domain.Event, error) {
	f.gotFrom = from
	f.gotTo = to
	if f.err != nil {
		return nil, f.err
	}

	return f.events, nil
}

type fakeReminderRegistrationRepo struct {
	byEvent map[uint][]domain.Registration
	errFor  map[uint]error
}

func (f *fakeReminderRegistrationRepo) FindByEventID(_ context.Context, eventID uint) ([]domain.Registration, error) {
	if err, ok := f.errFor[eventID]; ok {
		return nil, err
	}

	return f.byEvent[eventID], nil
}

type reminderSend struct {
	eventID uint
	emails  []string
}

type fakeReminderMailer struct {
	sends  []reminderSend
	errFor map[uint]error
}

func (f *fakeReminderMailer) SendEventReminder(event domain.Event, recipientEmails []string) error {
	if err, ok := f.errFor[event.ID]; ok {
		return err
	}
	f.sends = append(f.sends, reminderSend{eventID: event.ID, emails: recipientEmails})

	return nil
}

func TestReminderRun_SweepsNext24Hours(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	eventRepo := &fakeReminderEventRepo{events: []domain.Event{
		{ID: 1, Title: "Tomorrow's Workshop"},
	}}
	registrationRepo := &fakeReminderRegistrationRepo{byEvent: map[uint][]domain.Registration{
		1: {
			{ID: 10, EventID: 1, RegisteredEmail: "a@example.com"},
			{ID: 11, EventID: 1, RegisteredEmail: "b@example.com"},
		},
	}}
	mailer := &fakeReminderMailer{}

	job := NewReminderJob(eventRepo, registrationRepo, mailer)
	job.now = func() time.Time { return now }

	job.Run()

	assert.Equal(t, now, eventRepo.gotFrom)
	assert.Equal(t, now.Add(24*time.Hour), eventRepo.gotTo)

	require.Len(t, mailer.sends, 1)
	assert.Equal(t, uint(1), mailer.sends[0].eventID)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, mailer.sends[0].emails)
}

func TestReminderRun_SkipsEventsWithoutRegistrations(t *testing.T) {
	eventRepo := &fakeReminderEventRepo{events: []domain.Event{{ID: 1}}}
	registrationRepo := &fakeReminderRegistrationRepo{byEvent: map[uint][]domain.Registration{}}
	mailer := &fakeReminderMailer{}

	job := NewReminderJob(eventRepo, registrationRepo, mailer)
	job.Run()

	assert.Empty(t, mailer.sends)
}

func TestReminderRun_ContinuesPastFailures(t *testing.T) {
	eventRepo := &fakeReminderEventRepo{events: []domain.Event{
		{ID: 1}, {ID: 2}, {ID: 3},
	}}
	registrationRepo := &fakeReminderRegistrationRepo{
		byEvent: map[uint][]domain.Registration{
			1: {{ID: 10, EventID: 1, RegisteredEmail: "a@example.com"}},
			2: {{ID: 11, EventID: 2, RegisteredEmail: "b@example.com"}},
			3: {{ID: 12, EventID: 3, RegisteredEmail: "c@example.com"}},
		},
	}
	mailer := &fakeReminderMailer{errFor: map[uint]error{2: errors.New("smtp down")}}

	job := NewReminderJob(eventRepo, registrationRepo, mailer)
	job.Run()

	require.Len(t, mailer.sends, 2, "one failed event must not stop the sweep")
	assert.Equal(t, uint(1), mailer.sends[0].eventID)
	assert.Equal(t, uint(3), mailer.sends[1].eventID)
}

func TestReminderRun_ListFailureAborts(t *testing.T) {
	eventRepo := &fakeReminderEventRepo{err: errors.New("db down")}
	mailer := &fakeReminderMailer{}

	job := NewReminderJob(eventRepo, &fakeReminderRegistrationRepo{}, mailer)
	job.Run()

	assert.Empty(t, mailer.sends)
}
