package domain

import "time"

const (
	RoleOrganization = "ORGANIZATION"
	RoleParticipant  = "PARTICIPANT"
)

// Organization account types.
const (
	OrgTypeEducational = "educational"
	OrgTypeGovernment  = "government"
	OrgTypeCorporate   = "corporate"
	OrgTypeOther       = "other"
)

type Organization struct {
	ID                   uint      `json:"id"`
	Name                 string    `json:"name"`
	Type                 string    `json:"type"`
	Location             string    `json:"location"`
	Email                string    `json:"email"`
	Password             string    `json:"-"`
	Role                 string    `json:"role"`
	Since                int       `json:"since"`
	About                string    `json:"about"`
	Contact              string    `json:"contact"`
	ProfileImageRef      string    `json:"profile_image_ref"`
	TotalOrganizedEvents int       `json:"total_organized_events"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
