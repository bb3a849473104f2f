package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/repository/dao"
)

type fakeOrganizationDAO struct {
	updated dao.Organization
}

func (f *fakeOrganizationDAO) Insert(_ context.Context, org dao.Organization) (dao.Organization, error) {
	return org, nil
}

func (f *fakeOrganizationDAO) FindByID(context.Context, uint) (dao.Organization, error) {
	return dao.Organization{}, nil
}

func (f *fakeOrganizationDAO) FindByEmail(context.Context, string) (dao.Organization, error) {
	return dao.Organization{}, nil
}

func (f *fakeOrganizationDAO) FindAll(context.Context) ([]dao.Organization, error) {
	return nil, nil
}

func (f *fakeOrganizationDAO) SearchByName(context.Context, string) ([]dao.Organization, error) {
	return nil, nil
}

func (f *fakeOrganizationDAO) Update(_ context.Context, org dao.Organization) (dao.Organization, error) {
	f.updated = org
	return org, nil
}

func (f *fakeOrganizationDAO) Delete(context.Context, uint) error {
	return nil
}

type fakeParticipantDAO struct {
	updated dao.Participant
}

func (f *fakeParticipantDAO) Insert(_ context.Context, participant dao.Participant) (dao.Participant, error) {
	return participant, nil
}

func (f *fakeParticipantDAO) FindByID(context.Context, uint) (dao.Participant, error) {
	return dao.Participant{}, nil
}

func (f *fakeParticipantDAO) FindByEmail(context.Context, string) (dao.Participant, error) {
	return dao.Participant{}, nil
}

func (f *fakeParticipantDAO) FindAll(context.Context) ([]dao.Participant, error) {
	return nil, nil
}

func (f *fakeParticipantDAO) Update(_ context.Context, participant dao.Participant) (dao.Participant, error) {
	f.updated = participant
	return participant, nil
}

func (f *fakeParticipantDAO) Delete(context.Context, uint) error {
	return nil
}

type fakeEventDAO struct {
	updated dao.Event
}

func (f *fakeEventDAO) Insert(_ context.Context, event dao.Event) (dao.Event, error) {
	return event, nil
}

func (f *fakeEventDAO) FindByID(context.Context, uint) (dao.Event, error) {
	return dao.Event{}, nil
}

func (f *fakeEventDAO) FindAll(context.Context) ([]dao.Event, error) {
	return nil, nil
}

func (f *fakeEventDAO) FindByOrganizationID(context.Context, uint) ([]dao.Event, error) {
	return nil, nil
}

func (f *fakeEventDAO) FindByOrganizationIDAndTitle(context.Context, uint, string) (dao.Event, error) {
	return dao.Event{}, nil
}

func (f *fakeEventDAO) FindByEventDateBetween(context.Context, time.Time, time.Time) ([]dao.Event, error) {
	return nil, nil
}

func (f *fakeEventDAO) Update(_ context.Context, event dao.Event) (dao.Event, error) {
	f.updated = event
	return event, nil
}

func (f *fakeEventDAO) Delete(context.Context, uint) error {
	return nil
}

// The DAO layer persists updates with Save, which writes every column. These
// tests pin that the record handed to the DAO still carries the original
// created_at, so an update cannot reset it to the zero time.

func TestOrganizationUpdate_KeepsCreatedAt(t *testing.T) {
	created := time.Date(2024, time.February, 10, 9, 30, 0, 0, time.UTC)
	fake := &fakeOrganizationDAO{}
	repo := NewOrganizationRepository(fake)

	updated, err := repo.Update(context.Background(), domain.Organization{
		ID:        7,
		Name:      "TechOrg",
		Email:     "hello@techorg.example",
		CreatedAt: created,
	})

	require.NoError(t, err)
	require.Equal(t, created, fake.updated.CreatedAt)
	require.Equal(t, created, updated.CreatedAt)
}

func TestParticipantUpdate_KeepsCreatedAt(t *testing.T) {
	created := time.Date(2024, time.February, 10, 9, 30, 0, 0, time.UTC)
	fake := &fakeParticipantDAO{}
	repo := NewParticipantRepository(fake)

	updated, err := repo.Update(context.Background(), domain.Participant{
		ID:        7,
		Name:      "Asha",
		Email:     "asha@students.example",
		Interests: []string{"AI"},
		CreatedAt: created,
	})

	require.NoError(t, err)
	require.Equal(t, created, fake.updated.CreatedAt)
	require.Equal(t, created, updated.CreatedAt)
}

func TestEventUpdate_KeepsCreatedAt(t *testing.T) {
	created := time.Date(2024, time.February, 10, 9, 30, 0, 0, time.UTC)
	fake := &fakeEventDAO{}
	repo := NewEventRepository(fake)

	updated, err := repo.Update(context.Background(), domain.Event{
		ID:             3,
		Title:          "Hack2025",
		OrganizationID: 11,
		CreatedAt:      created,
	})

	require.NoError(t, err)
	require.Equal(t, created, fake.updated.CreatedAt)
	require.Equal(t, created, updated.CreatedAt)
}
