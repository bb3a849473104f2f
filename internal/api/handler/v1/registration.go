package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventfesta/eventfesta-api/internal/api/handler/v1/request"
	"github.com/eventfesta/eventfesta-api/internal/api/handler/v1/response"
	"github.com/eventfesta/eventfesta-api/internal/service"
)

type RegistrationService interface {
	RegisterParticipant(
		ctx context.Context,
		participantID, eventID uint,
		form service.RegistrationForm,
		paymentID, orderID string,
	) (service.RegistrationResult, error)
}

type RegistrationHandler struct {
	svc RegistrationService
}

func NewRegistrationHandler(svc RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		svc: svc,
	}
}

// HandleRegisterForEvent godoc
// @Summary      Register a participant for a free event
// @Description  Paid events go through the payment endpoints instead.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        participantID  path      int                             true  "participant ID"
// @Param        eventID        path      int                             true  "event ID"
// @Param        request        body      request.RegisterForEventRequest true  "request body"
// @Success      201            {object}  response.Envelope{data=domain.Registration}
// @Failure      400            {object}  response.Envelope
// @Failure      403            {object}  response.Envelope
// @Failure      404            {object}  response.Envelope
// @Failure      409            {object}  response.Envelope
// @Failure      500            {object}  response.Envelope
// @Router       /participants/{participantID}/events/{eventID}/register [post]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleRegisterForEvent(ctx *gin.Context) {
	participantID, respErr := parseUintParam(ctx, "participantID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireOwnAccount(ctx, participantID); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseUintParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	req := request.RegisterForEventRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	form := service.RegistrationForm{
		ParticipantName:   req.ParticipantName,
		ContactEmail:      req.ContactEmail,
		PhoneNumber:       req.PhoneNumber,
		YearOrDesignation: req.YearOrDesignation,
		Expectation:       req.Expectation,
	}

	result, err := h.svc.RegisterParticipant(ctx.Request.Context(), participantID, eventID, form, "", "")
	if err != nil {
		response.RenderErr(ctx, registrationErr(err, participantID, eventID, "v1.HandleRegisterForEvent"))
		return
	}

	message := "registered successfully"
	if result.NotificationErr != nil {
		message = "registered successfully, but the confirmation email could not be sent"
	}

	response.Render(ctx, http.StatusCreated, message, result.Registration)
}

// registrationErr maps the registration workflow's sentinel errors onto HTTP
// responses.
func registrationErr(err error, participantID, eventID uint, op string) *response.Err {
	switch {
	case errors.Is(err, service.ErrAlreadyRegistered):
		return response.ErrConflict(service.ErrAlreadyRegistered)
	case errors.Is(err, service.ErrEventFull):
		return response.ErrConflict(service.ErrEventFull)
	case errors.Is(err, service.ErrPaymentRequired):
		return response.ErrBadRequest(service.ErrPaymentRequired)
	case errors.Is(err, service.ErrEventNotFound):
		return response.ErrNotFound("event", "ID", eventID)
	case errors.Is(err, service.ErrParticipantNotFound):
		return response.ErrNotFound("participant", "ID", participantID)
	default:
		return response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err))
	}
}
