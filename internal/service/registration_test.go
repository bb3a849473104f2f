package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/repository"
)

type fakeRegistrationRepo struct {
	registrations []domain.Registration
	nextID        uint

	// collisions makes the first N Create calls fail with the
	// attendance-code unique violation.
	collisions  int
	createCalls int
	createErr   error
}

func (f *fakeRegistrationRepo) Create(_ context.Context, registration domain.Registration) (domain.Registration, error) {
	f.createCalls++
	if f.createErr != nil {
		return domain.Registration{}, f.createErr
	}
	if f.collisions > 0 {
		f.collisions--
		return domain.Registration{}, repository.ErrAttendanceCodeTaken
	}

	f.nextID++
	registration.ID = f.nextID
	f.registrations = append(f.registrations, registration)

	return registration, nil
}

func (f *fakeRegistrationRepo) Exists(_ context.Context, participantID, eventID uint) (bool, error) {
	for _, reg := range f.registrations {
		if reg.ParticipantID == participantID && reg.EventID == eventID {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeRegistrationRepo) FindByAttendanceCode(_ context.Context, code string) (domain.Registration, error) {
	for _, reg := range f.registrations {
		if reg.AttendanceCode == code {
			return reg, nil
		}
	}

	return domain.Registration{}, repository.ErrRegistrationNotFound
}

func (f *fakeRegistrationRepo) FindByEventID(_ context.Context, eventID uint) ([]domain.Registration, error) {
	var found []domain.Registration
	for _, reg := range f.registrations {
		if reg.EventID == eventID {
			found = append(found, reg)
		}
	}

	return found, nil
}

func (f *fakeRegistrationRepo) FindByParticipantID(_ context.Context, participantID uint) ([]domain.Registration, error) {
	var found []domain.Registration
	for _, reg := range f.registrations {
		if reg.ParticipantID == participantID {
			found = append(found, reg)
		}
	}

	return found, nil
}

func (f *fakeRegistrationRepo) FindByOrganizationID(_ context.Context, orgID uint) ([]domain.Registration, error) {
	var found []domain.Registration
	for _, reg := range f.registrations {
		if reg.OrganizationID == orgID {
			found = append(found, reg)
		}
	}

	return found, nil
}

func (f *fakeRegistrationRepo) SetPresence(_ context.Context, id uint, isPresent bool) error {
	for i, reg := range f.registrations {
		if reg.ID == id {
			f.registrations[i].IsPresent = isPresent
			return nil
		}
	}

	return repository.ErrRegistrationNotFound
}

type fakeParticipantFinder struct {
	participants map[uint]domain.Participant
}

func (f *fakeParticipantFinder) FindByID(_ context.Context, id uint) (domain.Participant, error) {
	participant, ok := f.participants[id]
	if !ok {
		return domain.Participant{}, repository.ErrParticipantNotFound
	}

	return participant, nil
}

type fakeEventFinder struct {
	events map[uint]domain.Event
}

func (f *fakeEventFinder) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

type fakeOrganizationFinder struct {
	orgs map[uint]domain.Organization
}

func (f *fakeOrganizationFinder) FindByID(_ context.Context, id uint) (domain.Organization, error) {
	org, ok := f.orgs[id]
	if !ok {
		return domain.Organization{}, repository.ErrOrganizationNotFound
	}

	return org, nil
}

type fakeQRMailer struct {
	sentTo    []string
	sentCodes []string
	err       error
}

func (f *fakeQRMailer) SendAttendanceQR(to, _ string, _ domain.Event, attendanceCode string) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = append(f.sentTo, to)
	f.sentCodes = append(f.sentCodes, attendanceCode)

	return nil
}

func newRegistrationFixture() (*RegistrationService, *fakeRegistrationRepo, *fakeQRMailer) {
	repo := &fakeRegistrationRepo{}
	mailer := &fakeQRMailer{}
	svc := NewRegistrationService(
		repo,
		&fakeParticipantFinder{participants: map[uint]domain.Participant{
			7: {ID: 7, Name: "Asha", Email: "asha@example.com"},
		}},
		&fakeEventFinder{events: map[uint]domain.Event{
			3: {ID: 3, Title: "Hack2025", OrganizationID: 11, MaxParticipants: 2},
			4: {ID: 4, Title: "FullHouse", OrganizationID: 11, MaxParticipants: 1, CurrentParticipants: 1},
			5: {ID: 5, Title: "ProSummit", OrganizationID: 11, MaxParticipants: 50, RegistrationFee: 499},
		}},
		&fakeOrganizationFinder{orgs: map[uint]domain.Organization{
			11: {ID: 11, Name: "TechOrg"},
		}},
		mailer,
	)

	return svc, repo, mailer
}

func testForm() RegistrationForm {
	return RegistrationForm{
		ParticipantName:   "Asha R",
		ContactEmail:      "asha.alt@example.com",
		PhoneNumber:       "9876543210",
		YearOrDesignation: "3rd year",
		Expectation:       "hands-on sessions",
	}
}

func TestRegisterParticipant(t *testing.T) {
	svc, repo, mailer := newRegistrationFixture()

	result, err := svc.RegisterParticipant(context.Background(), 7, 3, testForm(), "", "")

	require.NoError(t, err)
	require.NoError(t, result.NotificationErr)

	created := result.Registration
	assert.Equal(t, uint(7), created.ParticipantID)
	assert.Equal(t, uint(3), created.EventID)
	assert.Equal(t, uint(11), created.OrganizationID, "organizer is snapshotted from the event")
	assert.Equal(t, "asha.alt@example.com", created.RegisteredEmail)
	assert.False(t, created.IsPresent)
	assert.Empty(t, created.PaymentID)
	assert.Empty(t, created.OrderID)

	assert.Regexp(t, regexp.MustCompile(`^[0-9A-Z]{6}$`), created.AttendanceCode)

	require.Len(t, repo.registrations, 1)
	require.Equal(t, []string{"asha.alt@example.com"}, mailer.sentTo)
	assert.Equal(t, []string{created.AttendanceCode}, mailer.sentCodes)
}

func TestRegisterParticipant_Duplicate(t *testing.T) {
	svc, repo, _ := newRegistrationFixture()

	_, err := svc.RegisterParticipant(context.Background(), 7, 3, testForm(), "", "")
	require.NoError(t, err)

	_, err = svc.RegisterParticipant(context.Background(), 7, 3, testForm(), "", "")

	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Len(t, repo.registrations, 1)
}

func TestRegisterParticipant_EventFull(t *testing.T) {
	svc, repo, _ := newRegistrationFixture()

	_, err := svc.RegisterParticipant(context.Background(), 7, 4, testForm(), "", "")

	assert.ErrorIs(t, err, ErrEventFull)
	assert.Empty(t, repo.registrations)
}

func TestRegisterParticipant_UnknownEvent(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	_, err := svc.RegisterParticipant(context.Background(), 7, 999, testForm(), "", "")

	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRegisterParticipant_RetriesOnCodeCollision(t *testing.T) {
	svc, repo, _ := newRegistrationFixture()
	repo.collisions = 2

	result, err := svc.RegisterParticipant(context.Background(), 7, 3, testForm(), "", "")

	require.NoError(t, err)
	assert.Equal(t, 3, repo.createCalls)
	assert.NotEmpty(t, result.Registration.AttendanceCode)
}

func TestRegisterParticipant_GivesUpAfterRepeatedCollisions(t *testing.T) {
	svc, repo, _ := newRegistrationFixture()
	repo.collisions = attendanceCodeAttempts + 1

	_, err := svc.RegisterParticipant(context.Background(), 7, 3, testForm(), "", "")

	assert.ErrorIs(t, err, repository.ErrAttendanceCodeTaken)
	assert.Equal(t, attendanceCodeAttempts, repo.createCalls)
}

func TestRegisterParticipant_EmailFailureDoesNotFailRegistration(t *testing.T) {
	svc, repo, mailer := newRegistrationFixture()
	mailer.err = errors.New("smtp down")

	result, err := svc.RegisterParticipant(context.Background(), 7, 3, testForm(), "", "")

	require.NoError(t, err, "the committed registration must survive a notification failure")
	assert.Error(t, result.NotificationErr)
	assert.Len(t, repo.registrations, 1)
}

func TestRegisterParticipant_StoresPaymentRefs(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	result, err := svc.RegisterParticipant(context.Background(), 7, 5, testForm(), "pay_123", "order_456")

	require.NoError(t, err)
	assert.Equal(t, "pay_123", result.Registration.PaymentID)
	assert.Equal(t, "order_456", result.Registration.OrderID)
}

func TestRegisterParticipant_PaidEventNeedsPayment(t *testing.T) {
	svc, repo, mailer := newRegistrationFixture()

	_, err := svc.RegisterParticipant(context.Background(), 7, 5, testForm(), "", "")

	assert.ErrorIs(t, err, ErrPaymentRequired)
	assert.Empty(t, repo.registrations)
	assert.Empty(t, mailer.sentTo)
}

func TestVerifyCode(t *testing.T) {
	svc, repo, _ := newRegistrationFixture()

	created, err := svc.RegisterParticipant(context.Background(), 7, 3, testForm(), "", "")
	require.NoError(t, err)

	summary, err := svc.VerifyCode(context.Background(), created.Registration.AttendanceCode)

	require.NoError(t, err)
	assert.Equal(t, "Hack2025", summary.EventTitle)
	assert.Equal(t, "Asha R", summary.ParticipantName)
	assert.False(t, summary.IsPresent)
	assert.False(t, repo.registrations[0].IsPresent, "verification must not mark anyone present")
}

func TestVerifyCode_Unknown(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	_, err := svc.VerifyCode(context.Background(), "ZZZZZZ")

	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestMarkAttendance_TogglesBothWays(t *testing.T) {
	svc, repo, _ := newRegistrationFixture()

	created, err := svc.RegisterParticipant(context.Background(), 7, 3, testForm(), "", "")
	require.NoError(t, err)
	code := created.Registration.AttendanceCode

	summary, err := svc.MarkAttendance(context.Background(), code, true)
	require.NoError(t, err)
	assert.True(t, summary.IsPresent)
	assert.True(t, repo.registrations[0].IsPresent)

	// Marking present twice is idempotent.
	summary, err = svc.MarkAttendance(context.Background(), code, true)
	require.NoError(t, err)
	assert.True(t, summary.IsPresent)

	summary, err = svc.MarkAttendance(context.Background(), code, false)
	require.NoError(t, err)
	assert.False(t, summary.IsPresent)
	assert.False(t, repo.registrations[0].IsPresent)
}

func TestGetAttendanceSummary(t *testing.T) {
	svc, repo, _ := newRegistrationFixture()

	repo.registrations = []domain.Registration{
		{ID: 1, EventID: 3, ParticipantID: 1, ParticipantName: "A", IsPresent: true},
		{ID: 2, EventID: 3, ParticipantID: 2, ParticipantName: "B", IsPresent: false},
		{ID: 3, EventID: 3, ParticipantID: 4, ParticipantName: "C", IsPresent: true},
	}

	summary, err := svc.GetAttendanceSummary(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Present)
	assert.Equal(t, 1, summary.Absent)
	assert.Len(t, summary.Registrations, 3)
	assert.Equal(t, "Hack2025", summary.Registrations[0].EventTitle)
}

func TestMonthlyParticipants(t *testing.T) {
	svc, repo, _ := newRegistrationFixture()

	march := time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)
	december := time.Date(2025, time.December, 24, 18, 0, 0, 0, time.UTC)
	repo.registrations = []domain.Registration{
		{ID: 1, OrganizationID: 11, RegistrationTime: march, IsPresent: true},
		{ID: 2, OrganizationID: 11, RegistrationTime: march, IsPresent: false},
		{ID: 3, OrganizationID: 11, RegistrationTime: december, IsPresent: true},
		{ID: 4, OrganizationID: 99, RegistrationTime: march, IsPresent: true},
	}

	buckets, err := svc.MonthlyParticipants(context.Background(), 11)

	require.NoError(t, err)
	require.Len(t, buckets, 12, "every month appears, zero counts included")

	assert.Equal(t, "Jan", buckets[0].Month)
	assert.Zero(t, buckets[0].Participants)

	assert.Equal(t, "Mar", buckets[2].Month)
	assert.Equal(t, 2, buckets[2].Participants)
	assert.Equal(t, 1, buckets[2].Present)
	assert.Equal(t, 1, buckets[2].Absent)

	assert.Equal(t, "Dec", buckets[11].Month)
	assert.Equal(t, 1, buckets[11].Participants)
}

func TestMonthlyParticipants_UnknownOrganization(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	_, err := svc.MonthlyParticipants(context.Background(), 404)

	assert.ErrorIs(t, err, ErrOrganizationNotFound)
}

func TestGetRegisteredEvents(t *testing.T) {
	svc, repo, _ := newRegistrationFixture()

	repo.registrations = []domain.Registration{
		{ID: 1, ParticipantID: 7, EventID: 3},
	}

	events, err := svc.GetRegisteredEvents(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Hack2025", events[0].Title)
}

func TestIsRegistered(t *testing.T) {
	svc, repo, _ := newRegistrationFixture()

	registered, err := svc.IsRegistered(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.False(t, registered)

	repo.registrations = []domain.Registration{{ID: 1, ParticipantID: 7, EventID: 3}}

	registered, err = svc.IsRegistered(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.True(t, registered)
}
