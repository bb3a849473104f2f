package service

import (
	"context"
	"fmt"

	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/repository"
)

var ErrOrganizationNotFound = repository.ErrOrganizationNotFound

type OrganizationRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Organization, error)
	FindAll(ctx context.Context) ([]domain.Organization, error)
	SearchByName(ctx context.Context, name string) ([]domain.Organization, error)
	Update(ctx context.Context, org domain.Organization) (domain.Organization, error)
	Delete(ctx context.Context, id uint) error
}

type OrganizationService struct {
	repo OrganizationRepository
}

func NewOrganizationService(repo OrganizationRepository) *OrganizationService {
	return &OrganizationService{
		repo: repo,
	}
}

func (s *OrganizationService) GetOrganization(ctx context.Context, id uint) (domain.Organization, error) {
	org, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return org, nil
}

func (s *OrganizationService) GetAllOrganizations(ctx context.Context) ([]domain.Organization, error) {
	orgs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return orgs, nil
}

func (s *OrganizationService) SearchOrganizations(ctx context.Context, name string) ([]domain.Organization, error) {
	orgs, err := s.repo.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("s.repo.SearchByName -> %w", err)
	}

	return orgs, nil
}

// UpdateOrganization applies profile fields onto the stored record. Email,
// password, role and counters are not touched here.
func (s *OrganizationService) UpdateOrganization(ctx context.Context, id uint, update domain.Organization) (domain.Organization, error) {
	org, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	org.Name = update.Name
	org.Type = update.Type
	org.Location = update.Location
	org.Since = update.Since
	org.About = update.About
	org.Contact = update.Contact
	if update.ProfileImageRef != "" {
		org.ProfileImageRef = update.ProfileImageRef
	}

	updated, err := s.repo.Update(ctx, org)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *OrganizationService) DeleteOrganization(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
