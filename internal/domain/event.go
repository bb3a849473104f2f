package domain

import "time"

// Event types.
const (
	EventTypeConference = "conference"
	EventTypeWorkshop   = "workshop"
	EventTypeSeminar    = "seminar"
)

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
	ID                   uint           `json:"id"`
	Title                string         `json:"title"`
	Description          string         `json:"description"`
	Type                 string         `json:"type"`
	EventDate            time.Time      `json:"event_date"`
	LastRegistrationDate time.Time      `json:"last_registration_date"`
	Location             string         `json:"location"`
	RegistrationFee      float64        `json:"registration_fee"`
	MaxParticipants      int            `json:"max_participants"`
	CurrentParticipants  int            `json:"current_participants"`
	ImageRef             string         `json:"image_ref"`
	Tags                 []string       `json:"tags"`
	Speakers             []Speaker      `json:"speakers"`
	Judges               []Speaker      `json:"judges"`
	Prizes               Prize          `json:"prizes"`
	Schedule             []ScheduleItem `json:"schedule"`
	OrganizationID       uint           `json:"organization_id"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

func (e Event) RemainingSeats() int {
	return e.MaxParticipants - e.CurrentParticipants
}

func (e Event) IsFree() bool {
	return e.RegistrationFee == 0
}
