package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventfesta/eventfesta-api/internal/api/handler/v1/request"
	"github.com/eventfesta/eventfesta-api/internal/api/handler/v1/response"
	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/service"
)

type ParticipantService interface {
	GetParticipant(ctx context.Context, id uint) (domain.Participant, error)
	UpdateParticipant(ctx context.Context, id uint, update domain.Participant) (domain.Participant, error)
	DeleteParticipant(ctx context.Context, id uint) error
	ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error
	GetInterests(ctx context.Context, id uint) ([]string, error)
	ReplaceInterests(ctx context.Context, id uint, interests []string) ([]string, error)
	AddInterest(ctx context.Context, id uint, interest string) ([]string, error)
	RemoveInterest(ctx context.Context, id uint, interest string) ([]string, error)
}

type ParticipantRegistrationService interface {
	IsRegistered(ctx context.Context, participantID, eventID uint) (bool, error)
	GetRegisteredEvents(ctx context.Context, participantID uint) ([]domain.Event, error)
}

type ParticipantHandler struct {
	svc           ParticipantService
	registrations ParticipantRegistrationService
}

func NewParticipantHandler(svc ParticipantService, registrations ParticipantRegistrationService) *ParticipantHandler {
	return &ParticipantHandler{
		svc:           svc,
		registrations: registrations,
	}
}

// HandleGetParticipant godoc
// @Summary      Get a participant's profile
// @Tags         participants
// @Produce      json
// @Param        participantID  path      int  true  "participant ID"
// @Success      200            {object}  response.Envelope{data=domain.Participant}
// @Failure      403            {object}  response.Envelope
// @Failure      404            {object}  response.Envelope
// @Failure      500            {object}  response.Envelope
// @Router       /participants/{participantID} [get]
// @Security     BearerAuth
func (h *ParticipantHandler) HandleGetParticipant(ctx *gin.Context) {
	participantID, respErr := h.ownParticipantID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	participant, err := h.svc.GetParticipant(ctx.Request.Context(), participantID)
	if err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("participant", "ID", participantID))
			return
		}

		err = fmt.Errorf("v1.HandleGetParticipant -> h.svc.GetParticipant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "participant retrieved successfully", participant)
}

// HandleUpdateParticipant godoc
// @Summary      Update a participant's profile
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        participantID  path      int                               true  "participant ID"
// @Param        request        body      request.UpdateParticipantRequest  true  "request body"
// @Success      200            {object}  response.Envelope{data=domain.Participant}
// @Failure      400            {object}  response.Envelope
// @Failure      403            {object}  response.Envelope
// @Failure      404            {object}  response.Envelope
// @Failure      500            {object}  response.Envelope
// @Router       /participants/{participantID} [put]
// @Security     BearerAuth
func (h *ParticipantHandler) HandleUpdateParticipant(ctx *gin.Context) {
	participantID, respErr := h.ownParticipantID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	req := request.UpdateParticipantRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	update := domain.Participant{
		Name:              req.Name,
		University:        req.University,
		Course:            req.Course,
		CurrentlyStudying: req.CurrentlyStudying,
	}

	updated, err := h.svc.UpdateParticipant(ctx.Request.Context(), participantID, update)
	if err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("participant", "ID", participantID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateParticipant -> h.svc.UpdateParticipant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "participant updated successfully", updated)
}

// HandleDeleteParticipant godoc
// @Summary      Delete a participant account
// @Tags         participants
// @Produce      json
// @Param        participantID  path      int  true  "participant ID"
// @Success      200            {object}  response.Envelope
// @Failure      403            {object}  response.Envelope
// @Failure      404            {object}  response.Envelope
// @Failure      500            {object}  response.Envelope
// @Router       /participants/{participantID} [delete]
// @Security     BearerAuth
func (h *ParticipantHandler) HandleDeleteParticipant(ctx *gin.Context) {
	participantID, respErr := h.ownParticipantID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteParticipant(ctx.Request.Context(), participantID); err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("participant", "ID", participantID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteParticipant -> h.svc.DeleteParticipant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "participant deleted successfully", nil)
}

// HandleChangePassword godoc
// @Summary      Change a participant's password
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        participantID  path      int                            true  "participant ID"
// @Param        request        body      request.ChangePasswordRequest  true  "request body"
// @Success      200            {object}  response.Envelope
// @Failure      400            {object}  response.Envelope
// @Failure      403            {object}  response.Envelope
// @Failure      500            {object}  response.Envelope
// @Router       /participants/{participantID}/change-password [patch]
// @Security     BearerAuth
func (h *ParticipantHandler) HandleChangePassword(ctx *gin.Context) {
	participantID, respErr := h.ownParticipantID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	req := request.ChangePasswordRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.ChangePassword(ctx.Request.Context(), participantID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWrongOldPassword) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrWrongOldPassword))
			return
		}

		err = fmt.Errorf("v1.HandleChangePassword -> h.svc.ChangePassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "password changed successfully", nil)
}

// HandleGetRegisteredEvents godoc
// @Summary      List the events a participant has registered for
// @Tags         participants
// @Produce      json
// @Param        participantID  path      int  true  "participant ID"
// @Success      200            {object}  response.Envelope{data=[]domain.Event}
// @Failure      403            {object}  response.Envelope
// @Failure      500            {object}  response.Envelope
// @Router       /participants/{participantID}/events [get]
// @Security     BearerAuth
func (h *ParticipantHandler) HandleGetRegisteredEvents(ctx *gin.Context) {
	participantID, respErr := h.ownParticipantID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	events, err := h.registrations.GetRegisteredEvents(ctx.Request.Context(), participantID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetRegisteredEvents -> h.registrations.GetRegisteredEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "registered events retrieved successfully", events)
}

// HandleIsRegistered godoc
// @Summary      Check whether a participant is registered for an event
// @Tags         participants
// @Produce      json
// @Param        participantID  path      int  true  "participant ID"
// @Param        eventID        path      int  true  "event ID"
// @Success      200            {object}  response.Envelope{data=bool}
// @Failure      403            {object}  response.Envelope
// @Failure      500            {object}  response.Envelope
// @Router       /participants/{participantID}/events/{eventID}/is-registered [get]
// @Security     BearerAuth
func (h *ParticipantHandler) HandleIsRegistered(ctx *gin.Context) {
	participantID, respErr := h.ownParticipantID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseUintParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	registered, err := h.registrations.IsRegistered(ctx.Request.Context(), participantID, eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleIsRegistered -> h.registrations.IsRegistered -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "registration status retrieved successfully", registered)
}

// HandleGetInterests godoc
// @Summary      List a participant's interest tags
// @Tags         participants
// @Produce      json
// @Param        participantID  path      int  true  "participant ID"
// @Success      200            {object}  response.Envelope{data=[]string}
// @Failure      403            {object}  response.Envelope
// @Failure      500            {object}  response.Envelope
// @Router       /participants/{participantID}/interests [get]
// @Security     BearerAuth
func (h *ParticipantHandler) HandleGetInterests(ctx *gin.Context) {
	participantID, respErr := h.ownParticipantID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	interests, err := h.svc.GetInterests(ctx.Request.Context(), participantID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetInterests -> h.svc.GetInterests -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "interests retrieved successfully", interests)
}

// HandleReplaceInterests godoc
// @Summary      Replace a participant's interest tags
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        participantID  path      int                              true  "participant ID"
// @Param        request        body      request.ReplaceInterestsRequest  true  "request body"
// @Success      200            {object}  response.Envelope{data=[]string}
// @Failure      400            {object}  response.Envelope
// @Failure      403            {object}  response.Envelope
// @Failure      500            {object}  response.Envelope
// @Router       /participants/{participantID}/interests [put]
// @Security     BearerAuth
func (h *ParticipantHandler) HandleReplaceInterests(ctx *gin.Context) {
	participantID, respErr := h.ownParticipantID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	req := request.ReplaceInterestsRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	interests, err := h.svc.ReplaceInterests(ctx.Request.Context(), participantID, req.Interests)
	if err != nil {
		err = fmt.Errorf("v1.HandleReplaceInterests -> h.svc.ReplaceInterests -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "interests updated successfully", interests)
}

// HandleAddInterest godoc
// @Summary      Add an interest tag
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        participantID  path      int                         true  "participant ID"
// @Param        request        body      request.AddInterestRequest  true  "request body"
// @Success      200            {object}  response.Envelope{data=[]string}
// @Failure      400            {object}  response.Envelope
// @Failure      403            {object}  response.Envelope
// @Failure      409            {object}  response.Envelope
// @Failure      500            {object}  response.Envelope
// @Router       /participants/{participantID}/interests [post]
// @Security     BearerAuth
func (h *ParticipantHandler) HandleAddInterest(ctx *gin.Context) {
	participantID, respErr := h.ownParticipantID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	req := request.AddInterestRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	interests, err := h.svc.AddInterest(ctx.Request.Context(), participantID, req.Interest)
	if err != nil {
		if errors.Is(err, service.ErrInterestExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrInterestExists))
			return
		}

		err = fmt.Errorf("v1.HandleAddInterest -> h.svc.AddInterest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "interest added successfully", interests)
}

// HandleRemoveInterest godoc
// @Summary      Remove an interest tag
// @Tags         participants
// @Produce      json
// @Param        participantID  path      int     true  "participant ID"
// @Param        interest       path      string  true  "interest tag"
// @Success      200            {object}  response.Envelope{data=[]string}
// @Failure      403            {object}  response.Envelope
// @Failure      404            {object}  response.Envelope
// @Failure      500            {object}  response.Envelope
// @Router       /participants/{participantID}/interests/{interest} [delete]
// @Security     BearerAuth
func (h *ParticipantHandler) HandleRemoveInterest(ctx *gin.Context) {
	participantID, respErr := h.ownParticipantID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	interest := ctx.Param("interest")

	interests, err := h.svc.RemoveInterest(ctx.Request.Context(), participantID, interest)
	if err != nil {
		if errors.Is(err, service.ErrInterestNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("interest", "tag", interest))
			return
		}

		err = fmt.Errorf("v1.HandleRemoveInterest -> h.svc.RemoveInterest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "interest removed successfully", interests)
}

// ownParticipantID parses the path ID and rejects sessions addressing another
// participant's resources.
func (h *ParticipantHandler) ownParticipantID(ctx *gin.Context) (uint, *response.Err) {
	participantID, respErr := parseUintParam(ctx, "participantID")
	if respErr != nil {
		return 0, respErr
	}

	if respErr = requireOwnAccount(ctx, participantID); respErr != nil {
		return 0, respErr
	}

	return participantID, nil
}
