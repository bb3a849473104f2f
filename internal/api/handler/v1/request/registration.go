package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type RegisterForEventRequest struct {
	ParticipantName   string `json:"participant_name"`
	ContactEmail      string `json:"contact_email"`
	PhoneNumber       string `json:"phone_number"`
	YearOrDesignation string `json:"year_or_designation"`
	Expectation       string `json:"expectation"`
}

func (req *RegisterForEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ParticipantName, validation.Required),
		validation.Field(&req.ContactEmail, validation.Required, is.Email),
		validation.Field(&req.PhoneNumber, validation.Required),
		validation.Field(&req.YearOrDesignation, validation.Required),
	)
}

type VerifyAttendanceRequest struct {
	AttendanceCode string `json:"attendance_code"`
}

func (req *VerifyAttendanceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.AttendanceCode, validation.Required, validation.Length(6, 6)),
	)
}

type MarkAttendanceRequest struct {
	AttendanceCode string `json:"attendance_code"`
	IsPresent      *bool  `json:"is_present"`
}

func (req *MarkAttendanceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.AttendanceCode, validation.Required, validation.Length(6, 6)),
		validation.Field(&req.IsPresent, validation.NotNil),
	)
}
