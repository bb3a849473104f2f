package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/repository"
)

var (
	ErrAlreadyRegistered    = repository.ErrAlreadyRegistered
	ErrEventFull            = repository.ErrEventFull
	ErrRegistrationNotFound = repository.ErrRegistrationNotFound

	ErrPaymentRequired = errors.New("event charges a registration fee, register through the payment flow")
)

// attendanceCodeAttempts bounds the retry loop on the rare collision of the
// 6-character code's unique index.
const attendanceCodeAttempts = 5

// RegistrationForm carries the free-form fields the participant filled in at
// registration time.
type RegistrationForm struct {
	ParticipantName   string
	ContactEmail      string
	PhoneNumber       string
	YearOrDesignation string
	Expectation       string
}

// RegistrationResult reports a committed registration plus the outcome of the
// best-effort QR notification. NotificationErr being non-nil never means the
// registration failed; it is surfaced so callers can log or test the warning
// path.
type RegistrationResult struct {
	Registration    domain.Registration
	NotificationErr error
}

type RegistrationRepository interface {
	Create(ctx context.Context, registration domain.Registration) (domain.Registration, error)
	Exists(ctx context.Context, participantID, eventID uint) (bool, error)
	FindByAttendanceCode(ctx context.Context, code string) (domain.Registration, error)
	FindByEventID(ctx context.Context, eventID uint) ([]domain.Registration, error)
	FindByParticipantID(ctx context.Context, participantID uint) ([]domain.Registration, error)
	FindByOrganizationID(ctx context.Context, orgID uint) ([]domain.Registration, error)
	SetPresence(ctx context.Context, id uint, isPresent bool) error
}

type RegistrationParticipantRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Participant, error)
}

type RegistrationEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

type RegistrationOrganizationRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Organization, error)
}

// AttendanceQRMailer encodes the attendance code as a QR image and emails it
// with the event details.
type AttendanceQRMailer interface {
	SendAttendanceQR(to, name string, event domain.Event, attendanceCode string) error
}

type RegistrationService struct {
	repo            RegistrationRepository
	participantRepo RegistrationParticipantRepository
	eventRepo       RegistrationEventRepository
	orgRepo         RegistrationOrganizationRepository
	mailer          AttendanceQRMailer
	now             func() time.Time
}

func NewRegistrationService(
	repo RegistrationRepository,
	participantRepo RegistrationParticipantRepository,
	eventRepo RegistrationEventRepository,
	orgRepo RegistrationOrganizationRepository,
	mailer AttendanceQRMailer,
) *RegistrationService {
	return &RegistrationService{
		repo:            repo,
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		orgRepo:         orgRepo,
		mailer:          mailer,
		now:             time.Now,
	}
}

// RegisterParticipant runs the registration workflow: duplicate check,
// existence checks, capacity check, persist (registration row, event counter
// and participant counter in one transaction), then the best-effort QR email.
// The duplicate check runs before any mutation so a retry is rejected
// idempotently. paymentID and orderID are empty for free events; a paid event
// without a paymentID is rejected with ErrPaymentRequired.
func (s *RegistrationService) RegisterParticipant(
	ctx context.Context,
	participantID, eventID uint,
	form RegistrationForm,
	paymentID, orderID string,
) (RegistrationResult, error) {
	exists, err := s.repo.Exists(ctx, participantID, eventID)
	if err != nil {
		return RegistrationResult{}, fmt.Errorf("s.repo.Exists -> %w", err)
	}
	if exists {
		return RegistrationResult{}, ErrAlreadyRegistered
	}

	participant, err := s.participantRepo.FindByID(ctx, participantID)
	if err != nil {
		return RegistrationResult{}, fmt.Errorf("s.participantRepo.FindByID -> %w", err)
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return RegistrationResult{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	if event.RemainingSeats() <= 0 {
		return RegistrationResult{}, ErrEventFull
	}

	if !event.IsFree() && paymentID == "" {
		return RegistrationResult{}, ErrPaymentRequired
	}

	registration := domain.Registration{
		ParticipantID:     participant.ID,
		EventID:           event.ID,
		OrganizationID:    event.OrganizationID,
		ParticipantName:   form.ParticipantName,
		RegisteredEmail:   form.ContactEmail,
		ContactEmail:      form.ContactEmail,
		PhoneNumber:       form.PhoneNumber,
		YearOrDesignation: form.YearOrDesignation,
		Expectation:       form.Expectation,
		RegistrationTime:  s.now(),
		IsPresent:         false,
		PaymentID:         paymentID,
		OrderID:           orderID,
	}

	var created domain.Registration
	for attempt := 0; ; attempt++ {
		registration.AttendanceCode = newAttendanceCode()

		created, err = s.repo.Create(ctx, registration)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrAttendanceCodeTaken) && attempt < attendanceCodeAttempts-1 {
			continue
		}

		return RegistrationResult{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	result := RegistrationResult{Registration: created}

	if form.ContactEmail != "" {
		if mailErr := s.mailer.SendAttendanceQR(form.ContactEmail, participant.Name, event, created.AttendanceCode); mailErr != nil {
			zap.L().Error("registration committed but QR email failed",
				zap.Uint("registration_id", created.ID),
				zap.String("email", form.ContactEmail),
				zap.Error(mailErr))
			result.NotificationErr = mailErr
		}
	}

	return result, nil
}

// IsRegistered reports whether the (participant, event) pair already holds a
// registration.
func (s *RegistrationService) IsRegistered(ctx context.Context, participantID, eventID uint) (bool, error) {
	exists, err := s.repo.Exists(ctx, participantID, eventID)
	if err != nil {
		return false, fmt.Errorf("s.repo.Exists -> %w", err)
	}

	return exists, nil
}

// GetRegisteredEvents lists the events a participant has registered for.
func (s *RegistrationService) GetRegisteredEvents(ctx context.Context, participantID uint) ([]domain.Event, error) {
	if _, err := s.participantRepo.FindByID(ctx, participantID); err != nil {
		return nil, fmt.Errorf("s.participantRepo.FindByID -> %w", err)
	}

	registrations, err := s.repo.FindByParticipantID(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByParticipantID -> %w", err)
	}

	events := make([]domain.Event, 0, len(registrations))
	for _, reg := range registrations {
		event, err := s.eventRepo.FindByID(ctx, reg.EventID)
		if err != nil {
			return nil, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
		}
		events = append(events, event)
	}

	return events, nil
}

// GetEventRegistrations lists all registrations of an event.
func (s *RegistrationService) GetEventRegistrations(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	registrations, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEventID -> %w", err)
	}

	return registrations, nil
}

// VerifyCode looks a registration up by exact attendance-code match. It never
// mutates state.
func (s *RegistrationService) VerifyCode(ctx context.Context, code string) (domain.RegistrationSummary, error) {
	registration, err := s.repo.FindByAttendanceCode(ctx, code)
	if err != nil {
		return domain.RegistrationSummary{}, fmt.Errorf("s.repo.FindByAttendanceCode -> %w", err)
	}

	return s.summarize(ctx, registration)
}

// MarkAttendance sets the present flag to the supplied value. The operation is
// idempotent and supports toggling in both directions.
func (s *RegistrationService) MarkAttendance(ctx context.Context, code string, isPresent bool) (domain.RegistrationSummary, error) {
	registration, err := s.repo.FindByAttendanceCode(ctx, code)
	if err != nil {
		return domain.RegistrationSummary{}, fmt.Errorf("s.repo.FindByAttendanceCode -> %w", err)
	}

	if err = s.repo.SetPresence(ctx, registration.ID, isPresent); err != nil {
		return domain.RegistrationSummary{}, fmt.Errorf("s.repo.SetPresence -> %w", err)
	}
	registration.IsPresent = isPresent

	return s.summarize(ctx, registration)
}

// GetAttendanceSummary aggregates attendance for a single event.
func (s *RegistrationService) GetAttendanceSummary(ctx context.Context, eventID uint) (domain.AttendanceSummary, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return domain.AttendanceSummary{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	registrations, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return domain.AttendanceSummary{}, fmt.Errorf("s.repo.FindByEventID -> %w", err)
	}

	summary := domain.AttendanceSummary{
		EventID:       event.ID,
		Total:         len(registrations),
		Registrations: make([]domain.RegistrationSummary, 0, len(registrations)),
	}
	for _, reg := range registrations {
		if reg.IsPresent {
			summary.Present++
		} else {
			summary.Absent++
		}
		summary.Registrations = append(summary.Registrations, domain.RegistrationSummary{
			RegistrationID:  reg.ID,
			ParticipantName: reg.ParticipantName,
			RegisteredEmail: reg.RegisteredEmail,
			EventID:         event.ID,
			EventTitle:      event.Title,
			IsPresent:       reg.IsPresent,
		})
	}

	return summary, nil
}

var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthlyParticipants buckets all of an organization's registrations by the
// calendar month of their registration time. Every month appears, zero counts
// included.
func (s *RegistrationService) MonthlyParticipants(ctx context.Context, orgID uint) ([]domain.MonthlyParticipants, error) {
	if _, err := s.orgRepo.FindByID(ctx, orgID); err != nil {
		return nil, fmt.Errorf("s.orgRepo.FindByID -> %w", err)
	}

	registrations, err := s.repo.FindByOrganizationID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByOrganizationID -> %w", err)
	}

	buckets := make([]domain.MonthlyParticipants, 12)
	for i := range buckets {
		buckets[i].Month = monthNames[i]
	}

	for _, reg := range registrations {
		month := int(reg.RegistrationTime.Month()) - 1
		buckets[month].Participants++
		if reg.IsPresent {
			buckets[month].Present++
		} else {
			buckets[month].Absent++
		}
	}

	return buckets, nil
}

func (s *RegistrationService) summarize(ctx context.Context, registration domain.Registration) (domain.RegistrationSummary, error) {
	event, err := s.eventRepo.FindByID(ctx, registration.EventID)
	if err != nil {
		return domain.RegistrationSummary{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	return domain.RegistrationSummary{
		RegistrationID:  registration.ID,
		ParticipantName: registration.ParticipantName,
		RegisteredEmail: registration.RegisteredEmail,
		EventID:         event.ID,
		EventTitle:      event.Title,
		IsPresent:       registration.IsPresent,
	}, nil
}

// newAttendanceCode issues a 6-character uppercase alphanumeric token.
func newAttendanceCode() string {
	return strings.ToUpper(uuid.NewString()[:6])
}
