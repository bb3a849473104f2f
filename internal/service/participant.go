package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/repository"
)

var (
	ErrParticipantNotFound = repository.ErrParticipantNotFound
	ErrWrongOldPassword    = errors.New("old password is incorrect")
	ErrInterestExists      = errors.New("interest already exists")
	ErrInterestNotFound    = errors.New("interest not found")
)

type ParticipantRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Participant, error)
	Update(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	Delete(ctx context.Context, id uint) error
}

type ParticipantService struct {
	repo ParticipantRepository
}

func NewParticipantService(repo ParticipantRepository) *ParticipantService {
	return &ParticipantService{
		repo: repo,
	}
}

func (s *ParticipantService) GetParticipant(ctx context.Context, id uint) (domain.Participant, error) {
	participant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return participant, nil
}

// UpdateParticipant applies profile fields. Email, password, role, interests
// and counters are managed elsewhere.
func (s *ParticipantService) UpdateParticipant(ctx context.Context, id uint, update domain.Participant) (domain.Participant, error) {
	participant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	participant.Name = update.Name
	participant.University = update.University
	participant.Course = update.Course
	participant.CurrentlyStudying = update.CurrentlyStudying
	if update.ProfileImageRef != "" {
		participant.ProfileImageRef = update.ProfileImageRef
	}

	updated, err := s.repo.Update(ctx, participant)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ParticipantService) DeleteParticipant(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// ChangePassword verifies the old password before hashing and storing the new
// one.
func (s *ParticipantService) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error {
	participant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(participant.Password), []byte(oldPassword)); err != nil {
		return ErrWrongOldPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}
	participant.Password = string(hash)

	if _, err = s.repo.Update(ctx, participant); err != nil {
		return fmt.Errorf("s.repo.Update -> %w", err)
	}

	return nil
}

func (s *ParticipantService) GetInterests(ctx context.Context, id uint) ([]string, error) {
	participant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return participant.Interests, nil
}

// ReplaceInterests overwrites the participant's interest tags, preserving the
// given casing.
func (s *ParticipantService) ReplaceInterests(ctx context.Context, id uint, interests []string) ([]string, error) {
	participant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	participant.Interests = interests

	updated, err := s.repo.Update(ctx, participant)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated.Interests, nil
}

// AddInterest appends a tag, rejecting case-insensitive duplicates while
// storing the original casing.
func (s *ParticipantService) AddInterest(ctx context.Context, id uint, interest string) ([]string, error) {
	participant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	for _, existing := range participant.Interests {
		if strings.EqualFold(existing, interest) {
			return nil, ErrInterestExists
		}
	}

	participant.Interests = append(participant.Interests, interest)

	updated, err := s.repo.Update(ctx, participant)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated.Interests, nil
}

// RemoveInterest drops a tag, matching case-insensitively.
func (s *ParticipantService) RemoveInterest(ctx context.Context, id uint, interest string) ([]string, error) {
	participant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	kept := make([]string, 0, len(participant.Interests))
	removed := false
	for _, existing := range participant.Interests {
		if strings.EqualFold(existing, interest) {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}

	if !removed {
		return nil, ErrInterestNotFound
	}

	participant.Interests = kept

	updated, err := s.repo.Update(ctx, participant)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated.Interests, nil
}
