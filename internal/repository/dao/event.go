package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Speaker struct {
	Name    string `json:"name"`
	Company string `json:"company"`
}

type Prize struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Third  string `json:"third"`
}

type ScheduleItem struct {
	Time    string `json:"time"`
	Title   string `json:"title"`
	Speaker string `json:"speaker"`
}

type Event struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	Type        string `gorm:"not null"` // "conference", "workshop" or "seminar"

	EventDate            time.Time `gorm:"not null;index"`
	LastRegistrationDate time.Time `gorm:"not null"`

	Location        string  `gorm:"not null"`
	RegistrationFee float64 `gorm:"not null;default:0"`

	MaxParticipants     int `gorm:"not null"`
	CurrentParticipants int `gorm:"not null;default:0"`

	ImageRef string

	Tags     []string       `gorm:"serializer:json"`
	Speakers []Speaker      `gorm:"serializer:json"`
	Judges   []Speaker      `gorm:"serializer:json"`
	Prizes   Prize          `gorm:"serializer:json"`
	Schedule []ScheduleItem `gorm:"serializer:json"`

	OrganizationID uint `gorm:"not null;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

// Insert creates the event and bumps the owning organization's counter in the
// same transaction.
func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		result := tx.Model(&Organization{}).
			Where("id = ?", event.OrganizationID).
			Update("total_organized_events", gorm.Expr("total_organized_events + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOrganizationNotFound
		}

		return nil
	})
	if err != nil {
		return Event{}, err
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Order("event_date").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindByOrganizationID(ctx context.Context, orgID uint) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("event_date").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindByOrganizationIDAndTitle(ctx context.Context, orgID uint, title string) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).
		Where("organization_id = ? AND title = ?", orgID, title).
		First(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// FindByEventDateBetween returns events starting inside [from, to), used by the
// daily reminder sweep.
func (d *EventDAO) FindByEventDateBetween(ctx context.Context, from, to time.Time) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).
		Where("event_date >= ? AND event_date < ?", from, to).
		Order("event_date").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Save(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}
