package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindAll(ctx context.Context) ([]dao.Event, error)
	FindByOrganizationID(ctx context.Context, orgID uint) ([]dao.Event, error)
	FindByOrganizationIDAndTitle(ctx context.Context, orgID uint, title string) (dao.Event, error)
	FindByEventDateBetween(ctx context.Context, from, to time.Time) ([]dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	Delete(ctx context.Context, id uint) error
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daoSliceToDomain(found), nil
}

func (r *EventRepository) FindByOrganizationID(ctx context.Context, orgID uint) ([]domain.Event, error) {
	found, err := r.dao.FindByOrganizationID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByOrganizationID -> %w", err)
	}

	return r.daoSliceToDomain(found), nil
}

func (r *EventRepository) FindByOrganizationIDAndTitle(ctx context.Context, orgID uint, title string) (domain.Event, error) {
	found, err := r.dao.FindByOrganizationIDAndTitle(ctx, orgID, title)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByOrganizationIDAndTitle -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) FindStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	found, err := r.dao.FindByEventDateBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventDateBetween -> %w", err)
	}

	return r.daoSliceToDomain(found), nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) daoSliceToDomain(events []dao.Event) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		out = append(out, r.daoToDomain(e))
	}

	return out
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	speakers := make([]domain.Speaker, 0, len(e.Speakers))
	for _, s := range e.Speakers {
		speakers = append(speakers, domain.Speaker(s))
	}

	judges := make([]domain.Speaker, 0, len(e.Judges))
	for _, j := range e.Judges {
		judges = append(judges, domain.Speaker(j))
	}

	schedule := make([]domain.ScheduleItem, 0, len(e.Schedule))
	for _, item := range e.Schedule {
		schedule = append(schedule, domain.ScheduleItem(item))
	}

	return domain.Event{
		ID:                   e.ID,
		Title:                e.Title,
		Description:          e.Description,
		Type:                 e.Type,
		EventDate:            e.EventDate,
		LastRegistrationDate: e.LastRegistrationDate,
		Location:             e.Location,
		RegistrationFee:      e.RegistrationFee,
		MaxParticipants:      e.MaxParticipants,
		CurrentParticipants:  e.CurrentParticipants,
		ImageRef:             e.ImageRef,
		Tags:                 e.Tags,
		Speakers:             speakers,
		Judges:               judges,
		Prizes:               domain.Prize(e.Prizes),
		Schedule:             schedule,
		OrganizationID:       e.OrganizationID,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

func (r *EventRepository) domainToDAO(e domain.Event) dao.Event {
	speakers := make([]dao.Speaker, 0, len(e.Speakers))
	for _, s := range e.Speakers {
		speakers = append(speakers, dao.Speaker(s))
	}

	judges := make([]dao.Speaker, 0, len(e.Judges))
	for _, j := range e.Judges {
		judges = append(judges, dao.Speaker(j))
	}

	schedule := make([]dao.ScheduleItem, 0, len(e.Schedule))
	for _, item := range e.Schedule {
		schedule = append(schedule, dao.ScheduleItem(item))
	}

	return dao.Event{
		ID:                   e.ID,
		Title:                e.Title,
		Description:          e.Description,
		Type:                 e.Type,
		EventDate:            e.EventDate,
		LastRegistrationDate: e.LastRegistrationDate,
		Location:             e.Location,
		RegistrationFee:      e.RegistrationFee,
		MaxParticipants:      e.MaxParticipants,
		CurrentParticipants:  e.CurrentParticipants,
		ImageRef:             e.ImageRef,
		Tags:                 e.Tags,
		Speakers:             speakers,
		Judges:               judges,
		Prizes:               dao.Prize(e.Prizes),
		Schedule:             schedule,
		OrganizationID:       e.OrganizationID,
		// Save writes every column, so created_at must ride along or
		// updates would reset it to the zero time.
		CreatedAt: e.CreatedAt,
	}
}
