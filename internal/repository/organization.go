package repository

import (
	"context"
	"fmt"

	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/repository/dao"
)

var (
	ErrOrganizationEmailExists = dao.ErrOrganizationEmailExists
	ErrOrganizationNotFound    = dao.ErrOrganizationNotFound
)

type OrganizationDAO interface {
	Insert(ctx context.Context, org dao.Organization) (dao.Organization, error)
	FindByID(ctx context.Context, id uint) (dao.Organization, error)
	FindByEmail(ctx context.Context, email string) (dao.Organization, error)
	FindAll(ctx context.Context) ([]dao.Organization, error)
	SearchByName(ctx context.Context, name string) ([]dao.Organization, error)
	Update(ctx context.Context, org dao.Organization) (dao.Organization, error)
	Delete(ctx context.Context, id uint) error
}

type OrganizationRepository struct {
	dao OrganizationDAO
}

func NewOrganizationRepository(dao OrganizationDAO) *OrganizationRepository {
	return &OrganizationRepository{
		dao: dao,
	}
}

func (r *OrganizationRepository) Create(ctx context.Context, org domain.Organization) (domain.Organization, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(org))
	if err != nil {
		return domain.Organization{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uint) (domain.Organization, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *OrganizationRepository) FindByEmail(ctx context.Context, email string) (domain.Organization, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *OrganizationRepository) FindAll(ctx context.Context) ([]domain.Organization, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	orgs := make([]domain.Organization, 0, len(found))
	for _, org := range found {
		orgs = append(orgs, r.daoToDomain(org))
	}

	return orgs, nil
}

func (r *OrganizationRepository) SearchByName(ctx context.Context, name string) ([]domain.Organization, error) {
	found, err := r.dao.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("r.dao.SearchByName -> %w", err)
	}

	orgs := make([]domain.Organization, 0, len(found))
	for _, org := range found {
		orgs = append(orgs, r.daoToDomain(org))
	}

	return orgs, nil
}

func (r *OrganizationRepository) Update(ctx context.Context, org domain.Organization) (domain.Organization, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(org))
	if err != nil {
		return domain.Organization{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *OrganizationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *OrganizationRepository) daoToDomain(o dao.Organization) domain.Organization {
	return domain.Organization{
		ID:                   o.ID,
		Name:                 o.Name,
		Type:                 o.Type,
		Location:             o.Location,
		Email:                o.Email,
		Password:             o.Password,
		Role:                 o.Role,
		Since:                o.Since,
		About:                o.About,
		Contact:              o.Contact,
		ProfileImageRef:      o.ProfileImageRef,
		TotalOrganizedEvents: o.TotalOrganizedEvents,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}

func (r *OrganizationRepository) domainToDAO(o domain.Organization) dao.Organization {
	return dao.Organization{
		ID:                   o.ID,
		Name:                 o.Name,
		Type:                 o.Type,
		Location:             o.Location,
		Email:                o.Email,
		Password:             o.Password,
		Role:                 domain.RoleOrganization,
		Since:                o.Since,
		About:                o.About,
		Contact:              o.Contact,
		ProfileImageRef:      o.ProfileImageRef,
		TotalOrganizedEvents: o.TotalOrganizedEvents,
		// Save writes every column, so created_at must ride along or
		// updates would reset it to the zero time.
		CreatedAt: o.CreatedAt,
	}
}
