package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/eventfesta/eventfesta-api/internal/domain"
)

type SignupOrganizationRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Location string `json:"location"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Since    int    `json:"since"`
	About    string `json:"about"`
	Contact  string `json:"contact"`
}

func (req *SignupOrganizationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Type, validation.Required, validation.In(
			domain.OrgTypeEducational,
			domain.OrgTypeGovernment,
			domain.OrgTypeCorporate,
			domain.OrgTypeOther,
		)),
		validation.Field(&req.Location, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.Length(8, 0)),
		validation.Field(&req.Since, validation.Required, validation.Min(1800)),
	)
}

type SignupParticipantRequest struct {
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Password          string   `json:"password"`
	University        string   `json:"university"`
	Course            string   `json:"course"`
	CurrentlyStudying bool     `json:"currently_studying"`
	Interests         []string `json:"interests"`
}

func (req *SignupParticipantRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.Length(8, 0)),
		validation.Field(&req.University, validation.Required),
		validation.Field(&req.Course, validation.Required),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}
