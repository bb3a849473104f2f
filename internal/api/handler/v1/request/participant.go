package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type UpdateParticipantRequest struct {
	Name              string `json:"name"`
	University        string `json:"university"`
	Course            string `json:"course"`
	CurrentlyStudying bool   `json:"currently_studying"`
}

func (req *UpdateParticipantRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.University, validation.Required),
		validation.Field(&req.Course, validation.Required),
	)
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (req *ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.OldPassword, validation.Required),
		validation.Field(&req.NewPassword, validation.Required, validation.Length(8, 0)),
	)
}

type ReplaceInterestsRequest struct {
	Interests []string `json:"interests"`
}

func (req *ReplaceInterestsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Interests, validation.NotNil),
	)
}

type AddInterestRequest struct {
	Interest string `json:"interest"`
}

func (req *AddInterestRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Interest, validation.Required),
	)
}
