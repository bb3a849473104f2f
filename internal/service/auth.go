package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/repository"
)

var (
	ErrOrganizationEmailExists = repository.ErrOrganizationEmailExists
	ErrParticipantEmailExists  = repository.ErrParticipantEmailExists

	// ErrInvalidCredentials deliberately covers both "no such account" and
	// "wrong password" so callers cannot tell which part failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Identity is what a successful authentication yields: the subject email and
// a single role claim, plus the matched account.
type Identity struct {
	AccountID    uint
	Email        string
	Role         string
	Organization domain.Organization
	Participant  domain.Participant
}

type AuthOrganizationRepository interface {
	Create(ctx context.Context, org domain.Organization) (domain.Organization, error)
	FindByEmail(ctx context.Context, email string) (domain.Organization, error)
}

type AuthParticipantRepository interface {
	Create(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	FindByEmail(ctx context.Context, email string) (domain.Participant, error)
}

// OtpVerifier gates account creation on proof of email ownership.
type OtpVerifier interface {
	ValidateOtp(email, otp string) bool
}

type WelcomeMailer interface {
	SendWelcomeEmail(to, name string) error
}

type AuthService struct {
	orgRepo         AuthOrganizationRepository
	participantRepo AuthParticipantRepository
	otp             OtpVerifier
	mailer          WelcomeMailer
}

func NewAuthService(orgRepo AuthOrganizationRepository, participantRepo AuthParticipantRepository, otp OtpVerifier, mailer WelcomeMailer) *AuthService {
	return &AuthService{
		orgRepo:         orgRepo,
		participantRepo: participantRepo,
		otp:             otp,
		mailer:          mailer,
	}
}

// Authenticate verifies credentials against the organization store first and
// the participant store second; the first email match wins.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (Identity, error) {
	org, err := s.orgRepo.FindByEmail(ctx, email)
	if err == nil {
		if verifyErr := bcrypt.CompareHashAndPassword([]byte(org.Password), []byte(password)); verifyErr != nil {
			return Identity{}, ErrInvalidCredentials
		}

		return Identity{
			AccountID:    org.ID,
			Email:        org.Email,
			Role:         domain.RoleOrganization,
			Organization: org,
		}, nil
	}
	if !errors.Is(err, repository.ErrOrganizationNotFound) {
		return Identity{}, fmt.Errorf("s.orgRepo.FindByEmail -> %w", err)
	}

	participant, err := s.participantRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return Identity{}, ErrInvalidCredentials
		}

		return Identity{}, fmt.Errorf("s.participantRepo.FindByEmail -> %w", err)
	}

	if verifyErr := bcrypt.CompareHashAndPassword([]byte(participant.Password), []byte(password)); verifyErr != nil {
		return Identity{}, ErrInvalidCredentials
	}

	return Identity{
		AccountID:   participant.ID,
		Email:       participant.Email,
		Role:        domain.RoleParticipant,
		Participant: participant,
	}, nil
}

// SignupOrganization creates an organization account after the OTP gate.
func (s *AuthService) SignupOrganization(ctx context.Context, org domain.Organization, otp string) (domain.Organization, error) {
	if !s.otp.ValidateOtp(org.Email, otp) {
		return domain.Organization{}, ErrInvalidOtp
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(org.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}
	org.Password = string(hash)
	org.Role = domain.RoleOrganization

	created, err := s.orgRepo.Create(ctx, org)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("s.orgRepo.Create -> %w", err)
	}

	if mailErr := s.mailer.SendWelcomeEmail(created.Email, created.Name); mailErr != nil {
		zap.L().Warn("failed to send welcome email",
			zap.String("email", created.Email),
			zap.Error(mailErr))
	}

	return created, nil
}

// SignupParticipant creates a participant account after the OTP gate.
func (s *AuthService) SignupParticipant(ctx context.Context, participant domain.Participant, otp string) (domain.Participant, error) {
	if !s.otp.ValidateOtp(participant.Email, otp) {
		return domain.Participant{}, ErrInvalidOtp
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(participant.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}
	participant.Password = string(hash)
	participant.Role = domain.RoleParticipant

	created, err := s.participantRepo.Create(ctx, participant)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.participantRepo.Create -> %w", err)
	}

	if mailErr := s.mailer.SendWelcomeEmail(created.Email, created.Name); mailErr != nil {
		zap.L().Warn("failed to send welcome email",
			zap.String("email", created.Email),
			zap.Error(mailErr))
	}

	return created, nil
}
