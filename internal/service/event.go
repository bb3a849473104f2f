package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/repository"
)

var ErrEventNotFound = repository.ErrEventNotFound

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	FindByOrganizationID(ctx context.Context, orgID uint) ([]domain.Event, error)
	FindByOrganizationIDAndTitle(ctx context.Context, orgID uint, title string) (domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
}

type EventParticipantRepository interface {
	FindAll(ctx context.Context) ([]domain.Participant, error)
}

type TagMatchMailer interface {
	SendTagMatchEmail(to, name string, event domain.Event, matchedTags []string) error
}

type EventService struct {
	repo            EventRepository
	participantRepo EventParticipantRepository
	mailer          TagMatchMailer
}

func NewEventService(repo EventRepository, participantRepo EventParticipantRepository, mailer TagMatchMailer) *EventService {
	return &EventService{
		repo:            repo,
		participantRepo: participantRepo,
		mailer:          mailer,
	}
}

// CreateEvent persists the event (bumping the owner's counter) and then
// broadcasts interest-match alerts. The broadcast is fire-and-forget: its
// failures are logged and never fail event creation.
func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.broadcastInterestMatches(ctx, created)

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) GetAllEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) GetEventsByOrganization(ctx context.Context, orgID uint) ([]domain.Event, error) {
	events, err := s.repo.FindByOrganizationID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByOrganizationID -> %w", err)
	}

	return events, nil
}

func (s *EventService) GetEventByOrganizationAndTitle(ctx context.Context, orgID uint, title string) (domain.Event, error) {
	event, err := s.repo.FindByOrganizationIDAndTitle(ctx, orgID, title)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByOrganizationIDAndTitle -> %w", err)
	}

	return event, nil
}

// UpdateEvent applies the editable fields onto the stored event. Lookups are
// scoped to orgID, so an event owned by another organization reads as not
// found. The registration counter, the owner and the stored image never
// change here.
func (s *EventService) UpdateEvent(ctx context.Context, orgID, eventID uint, update domain.Event) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if event.OrganizationID != orgID {
		return domain.Event{}, ErrEventNotFound
	}

	event.Title = update.Title
	event.Description = update.Description
	event.Type = update.Type
	event.EventDate = update.EventDate
	event.LastRegistrationDate = update.LastRegistrationDate
	event.Location = update.Location
	event.RegistrationFee = update.RegistrationFee
	event.MaxParticipants = update.MaxParticipants
	event.Tags = update.Tags
	event.Speakers = update.Speakers
	event.Judges = update.Judges
	event.Prizes = update.Prizes
	event.Schedule = update.Schedule

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteEvent removes an event owned by orgID and returns the removed record
// so the caller can release attached resources such as the stored image.
func (s *EventService) DeleteEvent(ctx context.Context, orgID, eventID uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if event.OrganizationID != orgID {
		return domain.Event{}, ErrEventNotFound
	}

	if err := s.repo.Delete(ctx, eventID); err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return event, nil
}

// broadcastInterestMatches emails every participant whose interest tags
// intersect the event's tags, matching case-insensitively. The matched tags
// reported to the participant keep the participant's original casing.
func (s *EventService) broadcastInterestMatches(ctx context.Context, event domain.Event) {
	if len(event.Tags) == 0 {
		return
	}

	eventTags := make(map[string]struct{}, len(event.Tags))
	for _, tag := range event.Tags {
		eventTags[strings.ToLower(tag)] = struct{}{}
	}

	participants, err := s.participantRepo.FindAll(ctx)
	if err != nil {
		zap.L().Warn("interest-match broadcast skipped",
			zap.Uint("event_id", event.ID),
			zap.Error(err))
		return
	}

	for _, participant := range participants {
		var matched []string
		for _, interest := range participant.Interests {
			if _, ok := eventTags[strings.ToLower(interest)]; ok {
				matched = append(matched, interest)
			}
		}

		if len(matched) == 0 {
			continue
		}

		if err := s.mailer.SendTagMatchEmail(participant.Email, participant.Name, event, matched); err != nil {
			zap.L().Warn("failed to send interest-match email",
				zap.Uint("event_id", event.ID),
				zap.String("email", participant.Email),
				zap.Error(err))
		}
	}
}
