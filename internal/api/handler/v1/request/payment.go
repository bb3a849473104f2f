package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateOrderRequest struct {
	Amount float64 `json:"amount"`
}

func (req *CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Amount, validation.Required, validation.Min(0.01)),
	)
}

type VerifyAndRegisterRequest struct {
	RazorpayOrderID   string                  `json:"razorpay_order_id"`
	RazorpayPaymentID string                  `json:"razorpay_payment_id"`
	RazorpaySignature string                  `json:"razorpay_signature"`
	ParticipantID     uint                    `json:"participant_id"`
	EventID           uint                    `json:"event_id"`
	RegistrationData  RegisterForEventRequest `json:"registration_data"`
}

func (req *VerifyAndRegisterRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.RazorpayOrderID, validation.Required),
		validation.Field(&req.RazorpayPaymentID, validation.Required),
		validation.Field(&req.RazorpaySignature, validation.Required),
		validation.Field(&req.ParticipantID, validation.Required),
		validation.Field(&req.EventID, validation.Required),
	); err != nil {
		return err
	}

	return req.RegistrationData.Validate()
}
