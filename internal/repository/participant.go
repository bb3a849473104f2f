package repository

import (
	"context"
	"fmt"

	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/repository/dao"
)

var (
	ErrParticipantEmailExists = dao.ErrParticipantEmailExists
	ErrParticipantNotFound    = dao.ErrParticipantNotFound
)

type ParticipantDAO interface {
	Insert(ctx context.Context, participant dao.Participant) (dao.Participant, error)
	FindByID(ctx context.Context, id uint) (dao.Participant, error)
	FindByEmail(ctx context.Context, email string) (dao.Participant, error)
	FindAll(ctx context.Context) ([]dao.Participant, error)
	Update(ctx context.Context, participant dao.Participant) (dao.Participant, error)
	Delete(ctx context.Context, id uint) error
}

type ParticipantRepository struct {
	dao ParticipantDAO
}

func NewParticipantRepository(dao ParticipantDAO) *ParticipantRepository {
	return &ParticipantRepository{
		dao: dao,
	}
}

func (r *ParticipantRepository) Create(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(participant))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ParticipantRepository) FindByID(ctx context.Context, id uint) (domain.Participant, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ParticipantRepository) FindByEmail(ctx context.Context, email string) (domain.Participant, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ParticipantRepository) FindAll(ctx context.Context) ([]domain.Participant, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	participants := make([]domain.Participant, 0, len(found))
	for _, p := range found {
		participants = append(participants, r.daoToDomain(p))
	}

	return participants, nil
}

func (r *ParticipantRepository) Update(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(participant))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ParticipantRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ParticipantRepository) daoToDomain(p dao.Participant) domain.Participant {
	return domain.Participant{
		ID:                    p.ID,
		Name:                  p.Name,
		Email:                 p.Email,
		Password:              p.Password,
		Role:                  p.Role,
		University:            p.University,
		Course:                p.Course,
		CurrentlyStudying:     p.CurrentlyStudying,
		ProfileImageRef:       p.ProfileImageRef,
		TotalEventsRegistered: p.TotalEventsRegistered,
		Interests:             p.Interests,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func (r *ParticipantRepository) domainToDAO(p domain.Participant) dao.Participant {
	return dao.Participant{
		ID:                    p.ID,
		Name:                  p.Name,
		Email:                 p.Email,
		Password:              p.Password,
		Role:                  domain.RoleParticipant,
		University:            p.University,
		Course:                p.Course,
		CurrentlyStudying:     p.CurrentlyStudying,
		ProfileImageRef:       p.ProfileImageRef,
		TotalEventsRegistered: p.TotalEventsRegistered,
		Interests:             p.Interests,
		// Save writes every column, so created_at must ride along or
		// updates would reset it to the zero time.
		CreatedAt: p.CreatedAt,
	}
}
