package domain

import "time"

type Participant struct {
	ID                    uint      `json:"id"`
	Name                  string    `json:"name"`
	Email                 string    `json:"email"`
	Password              string    `json:"-"`
	Role                  string    `json:"role"`
	University            string    `json:"university"`
	Course                string    `json:"course"`
	CurrentlyStudying     bool      `json:"currently_studying"`
	ProfileImageRef       string    `json:"profile_image_ref"`
	TotalEventsRegistered int       `json:"total_events_registered"`
	Interests             []string  `json:"interests"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
