package repository

import (
	"context"
	"fmt"

	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/repository/dao"
)

var (
	ErrRegistrationNotFound = dao.ErrRegistrationNotFound
	ErrAlreadyRegistered    = dao.ErrAlreadyRegistered
	ErrEventFull            = dao.ErrEventFull
	ErrAttendanceCodeTaken  = dao.ErrAttendanceCodeTaken
)

type RegistrationDAO interface {
	Insert(ctx context.Context, registration dao.Registration) (dao.Registration, error)
	ExistsByParticipantIDAndEventID(ctx context.Context, participantID, eventID uint) (bool, error)
	FindByAttendanceCode(ctx context.Context, code string) (dao.Registration, error)
	FindByEventID(ctx context.Context, eventID uint) ([]dao.Registration, error)
	FindByParticipantID(ctx context.Context, participantID uint) ([]dao.Registration, error)
	FindByOrganizationID(ctx context.Context, orgID uint) ([]dao.Registration, error)
	UpdatePresence(ctx context.Context, id uint, isPresent bool) error
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

func (r *RegistrationRepository) Create(ctx context.Context, registration domain.Registration) (domain.Registration, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(registration))
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RegistrationRepository) Exists(ctx context.Context, participantID, eventID uint) (bool, error) {
	exists, err := r.dao.ExistsByParticipantIDAndEventID(ctx, participantID, eventID)
	if err != nil {
		return false, fmt.Errorf("r.dao.ExistsByParticipantIDAndEventID -> %w", err)
	}

	return exists, nil
}

func (r *RegistrationRepository) FindByAttendanceCode(ctx context.Context, code string) (domain.Registration, error) {
	found, err := r.dao.FindByAttendanceCode(ctx, code)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.FindByAttendanceCode -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RegistrationRepository) FindByEventID(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	found, err := r.dao.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventID -> %w", err)
	}

	return r.daoSliceToDomain(found), nil
}

func (r *RegistrationRepository) FindByParticipantID(ctx context.Context, participantID uint) ([]domain.Registration, error) {
	found, err := r.dao.FindByParticipantID(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByParticipantID -> %w", err)
	}

	return r.daoSliceToDomain(found), nil
}

func (r *RegistrationRepository) FindByOrganizationID(ctx context.Context, orgID uint) ([]domain.Registration, error) {
	found, err := r.dao.FindByOrganizationID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByOrganizationID -> %w", err)
	}

	return r.daoSliceToDomain(found), nil
}

func (r *RegistrationRepository) SetPresence(ctx context.Context, id uint, isPresent bool) error {
	if err := r.dao.UpdatePresence(ctx, id, isPresent); err != nil {
		return fmt.Errorf("r.dao.UpdatePresence -> %w", err)
	}

	return nil
}

func (r *RegistrationRepository) daoSliceToDomain(registrations []dao.Registration) []domain.Registration {
	out := make([]domain.Registration, 0, len(registrations))
	for _, reg := range registrations {
		out = append(out, r.daoToDomain(reg))
	}

	return out
}

func (r *RegistrationRepository) daoToDomain(reg dao.Registration) domain.Registration {
	return domain.Registration{
		ID:                reg.ID,
		ParticipantID:     reg.ParticipantID,
		EventID:           reg.EventID,
		OrganizationID:    reg.OrganizationID,
		ParticipantName:   reg.ParticipantName,
		RegisteredEmail:   reg.RegisteredEmail,
		ContactEmail:      reg.ContactEmail,
		PhoneNumber:       reg.PhoneNumber,
		YearOrDesignation: reg.YearOrDesignation,
		Expectation:       reg.Expectation,
		RegistrationTime:  reg.RegistrationTime,
		IsPresent:         reg.IsPresent,
		AttendanceCode:    reg.AttendanceCode,
		PaymentID:         reg.PaymentID,
		OrderID:           reg.OrderID,
	}
}

func (r *RegistrationRepository) domainToDAO(reg domain.Registration) dao.Registration {
	return dao.Registration{
		ID:                reg.ID,
		ParticipantID:     reg.ParticipantID,
		EventID:           reg.EventID,
		OrganizationID:    reg.OrganizationID,
		ParticipantName:   reg.ParticipantName,
		RegisteredEmail:   reg.RegisteredEmail,
		ContactEmail:      reg.ContactEmail,
		PhoneNumber:       reg.PhoneNumber,
		YearOrDesignation: reg.YearOrDesignation,
		Expectation:       reg.Expectation,
		RegistrationTime:  reg.RegistrationTime,
		IsPresent:         reg.IsPresent,
		AttendanceCode:    reg.AttendanceCode,
		PaymentID:         reg.PaymentID,
		OrderID:           reg.OrderID,
	}
}
