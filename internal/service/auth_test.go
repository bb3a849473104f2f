package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/repository"
)

type fakeAuthOrgRepo struct {
	byEmail map[string]domain.Organization
	created []domain.Organization
}

func (f *fakeAuthOrgRepo) Create(_ context.Context, org domain.Organization) (domain.Organization, error) {
	org.ID = uint(len(f.created) + 1)
	f.created = append(f.created, org)

	return org, nil
}

func (f *fakeAuthOrgRepo) FindByEmail(_ context.Context, email string) (domain.Organization, error) {
	org, ok := f.byEmail[email]
	if !ok {
		return domain.Organization{}, repository.ErrOrganizationNotFound
	}

	return org, nil
}

type fakeAuthParticipantRepo struct {
	byEmail map[string]domain.Participant
	created []domain.Participant
}

func (f *fakeAuthParticipantRepo) Create(_ context.Context, participant domain.Participant) (domain.Participant, error) {
	participant.ID = uint(len(f.created) + 1)
	f.created = append(f.created, participant)

	return participant, nil
}

func (f *fakeAuthParticipantRepo) FindByEmail(_ context.Context, email string) (domain.Participant, error) {
	participant, ok := f.byEmail[email]
	if !ok {
		return domain.Participant{}, repository.ErrParticipantNotFound
	}

	return participant, nil
}

type fakeOtpVerifier struct {
	valid bool
}

func (f *fakeOtpVerifier) ValidateOtp(_, _ string) bool {
	return f.valid
}

type fakeWelcomeMailer struct {
	sentTo []string
	err    error
}

func (f *fakeWelcomeMailer) SendWelcomeEmail(to, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = append(f.sentTo, to)

	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return string(hash)
}

func TestAuthenticate_Organization(t *testing.T) {
	orgRepo := &fakeAuthOrgRepo{byEmail: map[string]domain.Organization{
		"org@example.com": {ID: 5, Email: "org@example.com", Password: mustHash(t, "secret123")},
	}}
	svc := NewAuthService(orgRepo, &fakeAuthParticipantRepo{}, &fakeOtpVerifier{}, &fakeWelcomeMailer{})

	identity, err := svc.Authenticate(context.Background(), "org@example.com", "secret123")

	require.NoError(t, err)
	assert.Equal(t, uint(5), identity.AccountID)
	assert.Equal(t, domain.RoleOrganization, identity.Role)
}

func TestAuthenticate_Participant(t *testing.T) {
	participantRepo := &fakeAuthParticipantRepo{byEmail: map[string]domain.Participant{
		"p@example.com": {ID: 9, Email: "p@example.com", Password: mustHash(t, "secret123")},
	}}
	svc := NewAuthService(&fakeAuthOrgRepo{}, participantRepo, &fakeOtpVerifier{}, &fakeWelcomeMailer{})

	identity, err := svc.Authenticate(context.Background(), "p@example.com", "secret123")

	require.NoError(t, err)
	assert.Equal(t, uint(9), identity.AccountID)
	assert.Equal(t, domain.RoleParticipant, identity.Role)
}

func TestAuthenticate_FailuresAreIndistinguishable(t *testing.T) {
	orgRepo := &fakeAuthOrgRepo{byEmail: map[string]domain.Organization{
		"org@example.com": {ID: 5, Email: "org@example.com", Password: mustHash(t, "secret123")},
	}}
	svc := NewAuthService(orgRepo, &fakeAuthParticipantRepo{}, &fakeOtpVerifier{}, &fakeWelcomeMailer{})

	_, unknownErr := svc.Authenticate(context.Background(), "ghost@example.com", "secret123")
	_, wrongPasswordErr := svc.Authenticate(context.Background(), "org@example.com", "nope")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPasswordErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPasswordErr.Error(),
		"unknown email and wrong password must read identically")
}

func TestSignupParticipant(t *testing.T) {
	participantRepo := &fakeAuthParticipantRepo{}
	mailer := &fakeWelcomeMailer{}
	svc := NewAuthService(&fakeAuthOrgRepo{}, participantRepo, &fakeOtpVerifier{valid: true}, mailer)

	created, err := svc.SignupParticipant(context.Background(), domain.Participant{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "plaintext-secret",
	}, "123456")

	require.NoError(t, err)
	assert.Equal(t, domain.RoleParticipant, created.Role)

	// The stored password is a hash, never the plaintext.
	stored := participantRepo.created[0]
	assert.NotEqual(t, "plaintext-secret", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("plaintext-secret")))

	assert.Equal(t, []string{"asha@example.com"}, mailer.sentTo)
}

func TestSignupParticipant_InvalidOtp(t *testing.T) {
	participantRepo := &fakeAuthParticipantRepo{}
	svc := NewAuthService(&fakeAuthOrgRepo{}, participantRepo, &fakeOtpVerifier{valid: false}, &fakeWelcomeMailer{})

	_, err := svc.SignupParticipant(context.Background(), domain.Participant{
		Email:    "asha@example.com",
		Password: "plaintext-secret",
	}, "000000")

	assert.ErrorIs(t, err, ErrInvalidOtp)
	assert.Empty(t, participantRepo.created)
}

func TestSignupOrganization(t *testing.T) {
	orgRepo := &fakeAuthOrgRepo{}
	svc := NewAuthService(orgRepo, &fakeAuthParticipantRepo{}, &fakeOtpVerifier{valid: true}, &fakeWelcomeMailer{})

	created, err := svc.SignupOrganization(context.Background(), domain.Organization{
		Name:     "TechOrg",
		Email:    "org@example.com",
		Password: "plaintext-secret",
	}, "123456")

	require.NoError(t, err)
	assert.Equal(t, domain.RoleOrganization, created.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(orgRepo.created[0].Password), []byte("plaintext-secret")))
}

func TestSignupOrganization_WelcomeMailFailureIsNotFatal(t *testing.T) {
	orgRepo := &fakeAuthOrgRepo{}
	mailer := &fakeWelcomeMailer{err: assert.AnError}
	svc := NewAuthService(orgRepo, &fakeAuthParticipantRepo{}, &fakeOtpVerifier{valid: true}, mailer)

	_, err := svc.SignupOrganization(context.Background(), domain.Organization{
		Email:    "org@example.com",
		Password: "plaintext-secret",
	}, "123456")

	assert.NoError(t, err)
	assert.Len(t, orgRepo.created, 1)
}
