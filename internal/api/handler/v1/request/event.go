package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/eventfesta/eventfesta-api/internal/domain"
)

type SpeakerPayload struct {
	Name    string `json:"name"`
	Company string `json:"company"`
}

type PrizePayload struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Third  string `json:"third"`
}

type ScheduleItemPayload struct {
	Time    string `json:"time"`
	Title   string `json:"title"`
	Speaker string `json:"speaker"`
}

type CreateEventRequest struct {
	Title                string                `json:"title"`
	Description          string                `json:"description"`
	Type                 string                `json:"type"`
	EventDate            time.Time             `json:"event_date"`
	LastRegistrationDate time.Time             `json:"last_registration_date"`
	Location             string                `json:"location"`
	RegistrationFee      float64               `json:"registration_fee"`
	MaxParticipants      int                   `json:"max_participants"`
	Tags                 []string              `json:"tags"`
	Speakers             []SpeakerPayload      `json:"speakers"`
	Judges               []SpeakerPayload      `json:"judges"`
	Prizes               PrizePayload          `json:"prizes"`
	Schedule             []ScheduleItemPayload `json:"schedule"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required),
		validation.Field(&req.Description, validation.Required),
		validation.Field(&req.Type, validation.Required, validation.In(
			domain.EventTypeConference,
			domain.EventTypeWorkshop,
			domain.EventTypeSeminar,
		)),
		validation.Field(&req.EventDate, validation.Required),
		validation.Field(&req.LastRegistrationDate, validation.Required),
		validation.Field(&req.Location, validation.Required),
		validation.Field(&req.RegistrationFee, validation.Min(0.0)),
		validation.Field(&req.MaxParticipants, validation.Required, validation.Min(1)),
	)
}

func (req *CreateEventRequest) ToDomain(orgID uint) domain.Event {
	speakers := make([]domain.Speaker, 0, len(req.Speakers))
	for _, s := range req.Speakers {
		speakers = append(speakers, domain.Speaker(s))
	}

	judges := make([]domain.Speaker, 0, len(req.Judges))
	for _, j := range req.Judges {
		judges = append(judges, domain.Speaker(j))
	}

	schedule := make([]domain.ScheduleItem, 0, len(req.Schedule))
	for _, item := range req.Schedule {
		schedule = append(schedule, domain.ScheduleItem(item))
	}

	return domain.Event{
		Title:                req.Title,
		Description:          req.Description,
		Type:                 req.Type,
		EventDate:            req.EventDate,
		LastRegistrationDate: req.LastRegistrationDate,
		Location:             req.Location,
		RegistrationFee:      req.RegistrationFee,
		MaxParticipants:      req.MaxParticipants,
		Tags:                 req.Tags,
		Speakers:             speakers,
		Judges:               judges,
		Prizes:               domain.Prize(req.Prizes),
		Schedule:             schedule,
		OrganizationID:       orgID,
	}
}
