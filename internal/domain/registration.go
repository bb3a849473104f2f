package domain

import "time"

// Registration is the join record linking one participant to one event.
// OrganizationID is a denormalized snapshot of the event's organizer at
// creation time.
type Registration struct {
	ID                uint      `json:"id"`
	ParticipantID     uint      `json:"participant_id"`
	EventID           uint      `json:"event_id"`
	OrganizationID    uint      `json:"organization_id"`
	ParticipantName   string    `json:"participant_name"`
	RegisteredEmail   string    `json:"registered_email"`
	ContactEmail      string    `json:"contact_email"`
	PhoneNumber       string    `json:"phone_number"`
	YearOrDesignation string    `json:"year_or_designation"`
	Expectation       string    `json:"expectation"`
	RegistrationTime  time.Time `json:"registration_time"`
	IsPresent         bool      `json:"is_present"`
	AttendanceCode    string    `json:"attendance_code"`
	PaymentID         string    `json:"payment_id,omitempty"`
	OrderID           string    `json:"order_id,omitempty"`
}

// RegistrationSummary is what the attendance desk sees when a code is scanned.
type RegistrationSummary struct {
	RegistrationID  uint   `json:"registration_id"`
	ParticipantName string `json:"participant_name"`
	RegisteredEmail string `json:"registered_email"`
	EventID         uint   `json:"event_id"`
	EventTitle      string `json:"event_title"`
	IsPresent       bool   `json:"is_present"`
}

// MonthlyParticipants is one bucket of the per-organization analytics series.
type MonthlyParticipants struct {
	Month        string `json:"month"`
	Participants int    `json:"participants"`
	Present      int    `json:"present"`
	Absent       int    `json:"absent"`
}

// AttendanceSummary aggregates attendance for a single event.
type AttendanceSummary struct {
	EventID       uint                  `json:"event_id"`
	Total         int                   `json:"total"`
	Present       int                   `json:"present"`
	Absent        int                   `json:"absent"`
	Registrations []RegistrationSummary `json:"registrations"`
}
