package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyRegistered    = errors.New("participant is already registered for this event")
	ErrEventFull            = errors.New("event has reached its maximum number of participants")
	ErrAttendanceCodeTaken  = errors.New("attendance code already in use")
)

type Registration struct {
	ID uint `gorm:"primaryKey"`

	ParticipantID uint `gorm:"not null;uniqueIndex:idx_registrations_participant_event"`
	EventID       uint `gorm:"not null;uniqueIndex:idx_registrations_participant_event;index"`

	// Snapshot of the event's organizer at registration time.
	OrganizationID uint `gorm:"not null;index"`

	ParticipantName   string `gorm:"not null"`
	RegisteredEmail   string `gorm:"not null"`
	ContactEmail      string `gorm:"not null"`
	PhoneNumber       string `gorm:"not null"`
	YearOrDesignation string `gorm:"not null"`
	Expectation       string

	RegistrationTime time.Time `gorm:"not null"`
	IsPresent        bool      `gorm:"not null;default:false"`

	AttendanceCode string `gorm:"uniqueIndex:idx_registrations_attendance_code;not null"`

	// Only set for paid events.
	PaymentID string
	OrderID   string
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

// Insert persists a registration and keeps both sides of the relation
// consistent in a single transaction: the event's participant counter is
// bumped with a conditional update so the capacity invariant holds even under
// concurrent requests, and the participant's registered-events counter is
// bumped alongside. A zero-row conditional update means the event was full.
func (d *RegistrationDAO) Insert(ctx context.Context, registration Registration) (Registration, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := claimEventSeat(tx, registration.EventID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventFull
		}

		if err := tx.Create(&registration).Error; err != nil {
			return mapRegistrationConflict(err)
		}

		result = tx.Model(&Participant{}).
			Where("id = ?", registration.ParticipantID).
			Update("total_events_registered", gorm.Expr("total_events_registered + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrParticipantNotFound
		}

		return nil
	})
	if err != nil {
		return Registration{}, err
	}

	return registration, nil
}

// claimEventSeat bumps the event's participant counter only while a seat
// remains, so two concurrent inserts can never overshoot the capacity.
func claimEventSeat(tx *gorm.DB, eventID uint) *gorm.DB {
	return tx.Model(&Event{}).
		Where("id = ? AND current_participants < max_participants", eventID).
		Update("current_participants", gorm.Expr("current_participants + 1"))
}

// mapRegistrationConflict translates a unique violation by constraint name.
// The attendance-code collision stays distinct from the duplicate
// registration so the caller can retry with a fresh code.
func mapRegistrationConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		if strings.Contains(pgErr.Message, "idx_registrations_participant_event") {
			return ErrAlreadyRegistered
		}
		if strings.Contains(pgErr.Message, "idx_registrations_attendance_code") {
			return ErrAttendanceCodeTaken
		}
	}

	return err
}

func (d *RegistrationDAO) ExistsByParticipantIDAndEventID(ctx context.Context, participantID, eventID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Registration{}).
		Where("participant_id = ? AND event_id = ?", participantID, eventID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *RegistrationDAO) FindByAttendanceCode(ctx context.Context, code string) (Registration, error) {
	var registration Registration

	result := d.db.WithContext(ctx).First(&registration, "attendance_code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) FindByEventID(ctx context.Context, eventID uint) ([]Registration, error) {
	var registrations []Registration

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("registration_time").
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

func (d *RegistrationDAO) FindByParticipantID(ctx context.Context, participantID uint) ([]Registration, error) {
	var registrations []Registration

	result := d.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("registration_time").
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

// FindByOrganizationID serves the monthly analytics read path off the
// denormalized organizer snapshot.
func (d *RegistrationDAO) FindByOrganizationID(ctx context.Context, orgID uint) ([]Registration, error) {
	var registrations []Registration

	result := d.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

// UpdatePresence sets the present flag. It is idempotent.
func (d *RegistrationDAO) UpdatePresence(ctx context.Context, id uint, isPresent bool) error {
	result := d.db.WithContext(ctx).Model(&Registration{}).
		Where("id = ?", id).
		Update("is_present", isPresent)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}
