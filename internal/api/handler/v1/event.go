package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventfesta/eventfesta-api/internal/api/handler/v1/response"
	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/service"
)

type EventService interface {
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	GetAllEvents(ctx context.Context) ([]domain.Event, error)
}

type EventHandler struct {
	svc EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{
		svc: svc,
	}
}

// HandleGetEvents godoc
// @Summary      List all events
// @Tags         events
// @Produce      json
// @Success      200  {object}  response.Envelope{data=[]domain.Event}
// @Failure      500  {object}  response.Envelope
// @Router       /events [get]
func (h *EventHandler) HandleGetEvents(ctx *gin.Context) {
	events, err := h.svc.GetAllEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEvents -> h.svc.GetAllEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "events retrieved successfully", events)
}

// HandleGetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {object}  response.Envelope{data=domain.Event}
// @Failure      404      {object}  response.Envelope
// @Failure      500      {object}  response.Envelope
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, respErr := parseUintParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "event retrieved successfully", event)
}

func parseUintParam(ctx *gin.Context, name string) (uint, *response.Err) {
	raw := ctx.Param(name)

	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %v %q", name, raw))
	}

	return uint(parsed), nil
}
