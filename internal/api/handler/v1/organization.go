package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eventfesta/eventfesta-api/internal/api/handler/v1/request"
	"github.com/eventfesta/eventfesta-api/internal/api/handler/v1/response"
	"github.com/eventfesta/eventfesta-api/internal/api/middleware"
	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/service"
)

type OrganizationService interface {
	GetOrganization(ctx context.Context, id uint) (domain.Organization, error)
	GetAllOrganizations(ctx context.Context) ([]domain.Organization, error)
	SearchOrganizations(ctx context.Context, name string) ([]domain.Organization, error)
	UpdateOrganization(ctx context.Context, id uint, update domain.Organization) (domain.Organization, error)
	DeleteOrganization(ctx context.Context, id uint) error
}

type OrganizationEventService interface {
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	GetEventsByOrganization(ctx context.Context, orgID uint) ([]domain.Event, error)
	GetEventByOrganizationAndTitle(ctx context.Context, orgID uint, title string) (domain.Event, error)
	UpdateEvent(ctx context.Context, orgID, eventID uint, update domain.Event) (domain.Event, error)
	DeleteEvent(ctx context.Context, orgID, eventID uint) (domain.Event, error)
}

type OrganizationRegistrationService interface {
	GetEventRegistrations(ctx context.Context, eventID uint) ([]domain.Registration, error)
	GetAttendanceSummary(ctx context.Context, eventID uint) (domain.AttendanceSummary, error)
	MonthlyParticipants(ctx context.Context, orgID uint) ([]domain.MonthlyParticipants, error)
}

type OrganizationHandler struct {
	svc           OrganizationService
	eventSvc      OrganizationEventService
	registrations OrganizationRegistrationService
	images        ImageStore
}

func NewOrganizationHandler(
	svc OrganizationService,
	eventSvc OrganizationEventService,
	registrations OrganizationRegistrationService,
	images ImageStore,
) *OrganizationHandler {
	return &OrganizationHandler{
		svc:           svc,
		eventSvc:      eventSvc,
		registrations: registrations,
		images:        images,
	}
}

// HandleGetOrganizations godoc
// @Summary      List all organizations, or search by name
// @Tags         organizations
// @Produce      json
// @Param        name  query     string  false  "name fragment to search for"
// @Success      200   {object}  response.Envelope{data=[]domain.Organization}
// @Failure      500   {object}  response.Envelope
// @Router       /organizations [get]
func (h *OrganizationHandler) HandleGetOrganizations(ctx *gin.Context) {
	var (
		orgs []domain.Organization
		err  error
	)

	if name := ctx.Query("name"); name != "" {
		orgs, err = h.svc.SearchOrganizations(ctx.Request.Context(), name)
	} else {
		orgs, err = h.svc.GetAllOrganizations(ctx.Request.Context())
	}
	if err != nil {
		err = fmt.Errorf("v1.HandleGetOrganizations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "organizations retrieved successfully", orgs)
}

// HandleGetOrganization godoc
// @Summary      Get an organization by ID
// @Tags         organizations
// @Produce      json
// @Param        orgID  path      int  true  "organization ID"
// @Success      200    {object}  response.Envelope{data=domain.Organization}
// @Failure      404    {object}  response.Envelope
// @Failure      500    {object}  response.Envelope
// @Router       /organizations/{orgID} [get]
func (h *OrganizationHandler) HandleGetOrganization(ctx *gin.Context) {
	orgID, respErr := parseUintParam(ctx, "orgID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	org, err := h.svc.GetOrganization(ctx.Request.Context(), orgID)
	if err != nil {
		if errors.Is(err, service.ErrOrganizationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("organization", "ID", orgID))
			return
		}

		err = fmt.Errorf("v1.HandleGetOrganization -> h.svc.GetOrganization -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "organization retrieved successfully", org)
}

// HandleUpdateOrganization godoc
// @Summary      Update an organization's profile
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        orgID    path      int                                true  "organization ID"
// @Param        request  body      request.UpdateOrganizationRequest  true  "request body"
// @Success      200      {object}  response.Envelope{data=domain.Organization}
// @Failure      400      {object}  response.Envelope
// @Failure      403      {object}  response.Envelope
// @Failure      404      {object}  response.Envelope
// @Failure      500      {object}  response.Envelope
// @Router       /organizations/{orgID} [put]
// @Security     BearerAuth
func (h *OrganizationHandler) HandleUpdateOrganization(ctx *gin.Context) {
	orgID, respErr := parseUintParam(ctx, "orgID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireOwnAccount(ctx, orgID); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	req := request.UpdateOrganizationRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	update := domain.Organization{
		Name:     req.Name,
		Type:     req.Type,
		Location: req.Location,
		Since:    req.Since,
		About:    req.About,
		Contact:  req.Contact,
	}

	updated, err := h.svc.UpdateOrganization(ctx.Request.Context(), orgID, update)
	if err != nil {
		if errors.Is(err, service.ErrOrganizationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("organization", "ID", orgID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateOrganization -> h.svc.UpdateOrganization -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "organization updated successfully", updated)
}

// HandleDeleteOrganization godoc
// @Summary      Delete an organization account
// @Tags         organizations
// @Produce      json
// @Param        orgID  path      int  true  "organization ID"
// @Success      200    {object}  response.Envelope
// @Failure      403    {object}  response.Envelope
// @Failure      404    {object}  response.Envelope
// @Failure      500    {object}  response.Envelope
// @Router       /organizations/{orgID} [delete]
// @Security     BearerAuth
func (h *OrganizationHandler) HandleDeleteOrganization(ctx *gin.Context) {
	orgID, respErr := parseUintParam(ctx, "orgID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireOwnAccount(ctx, orgID); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteOrganization(ctx.Request.Context(), orgID); err != nil {
		if errors.Is(err, service.ErrOrganizationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("organization", "ID", orgID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteOrganization -> h.svc.DeleteOrganization -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "organization deleted successfully", nil)
}

// HandleCreateEvent godoc
// @Summary      Create and publish an event
// @Description  Multipart form: "event" (JSON), optional "image".
// @Tags         organizations
// @Accept       multipart/form-data
// @Produce      json
// @Param        orgID  path      int  true  "organization ID"
// @Success      201    {object}  response.Envelope{data=domain.Event}
// @Failure      400    {object}  response.Envelope
// @Failure      403    {object}  response.Envelope
// @Failure      500    {object}  response.Envelope
// @Router       /organizations/{orgID}/create-event [post]
// @Security     BearerAuth
func (h *OrganizationHandler) HandleCreateEvent(ctx *gin.Context) {
	orgID, respErr := parseUintParam(ctx, "orgID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireOwnAccount(ctx, orgID); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateEventRequest
	if err := json.Unmarshal([]byte(ctx.PostForm("event")), &req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event := req.ToDomain(orgID)

	if file, err := ctx.FormFile("image"); err == nil {
		ref, saveErr := h.images.Save(file)
		if saveErr != nil {
			saveErr = fmt.Errorf("v1.HandleCreateEvent -> h.images.Save -> %w", saveErr)
			response.RenderErr(ctx, response.ErrInternalServerError(saveErr))
			return
		}
		event.ImageRef = ref
	}

	created, err := h.eventSvc.CreateEvent(ctx.Request.Context(), event)
	if err != nil {
		h.removeImage(event.ImageRef)
		err = fmt.Errorf("v1.HandleCreateEvent -> h.eventSvc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusCreated, "event created successfully", created)
}

// HandleUpdateEvent godoc
// @Summary      Update one of the organization's events
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        orgID    path      int                         true  "organization ID"
// @Param        eventID  path      int                         true  "event ID"
// @Param        request  body      request.CreateEventRequest  true  "request body"
// @Success      200      {object}  response.Envelope{data=domain.Event}
// @Failure      400      {object}  response.Envelope
// @Failure      403      {object}  response.Envelope
// @Failure      404      {object}  response.Envelope
// @Failure      500      {object}  response.Envelope
// @Router       /organizations/{orgID}/events/{eventID} [put]
// @Security     BearerAuth
func (h *OrganizationHandler) HandleUpdateEvent(ctx *gin.Context) {
	orgID, respErr := parseUintParam(ctx, "orgID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireOwnAccount(ctx, orgID); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	eventID, respErr := parseUintParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.eventSvc.UpdateEvent(ctx.Request.Context(), orgID, eventID, req.ToDomain(orgID))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateEvent -> h.eventSvc.UpdateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "event updated successfully", updated)
}

// HandleDeleteEvent godoc
// @Summary      Delete one of the organization's events
// @Tags         organizations
// @Produce      json
// @Param        orgID    path      int  true  "organization ID"
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {object}  response.Envelope
// @Failure      400      {object}  response.Envelope
// @Failure      403      {object}  response.Envelope
// @Failure      404      {object}  response.Envelope
// @Failure      500      {object}  response.Envelope
// @Router       /organizations/{orgID}/events/{eventID} [delete]
// @Security     BearerAuth
func (h *OrganizationHandler) HandleDeleteEvent(ctx *gin.Context) {
	orgID, respErr := parseUintParam(ctx, "orgID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireOwnAccount(ctx, orgID); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	eventID, respErr := parseUintParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	deleted, err := h.eventSvc.DeleteEvent(ctx.Request.Context(), orgID, eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteEvent -> h.eventSvc.DeleteEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.removeImage(deleted.ImageRef)

	response.Render(ctx, http.StatusOK, "event deleted successfully", nil)
}

// removeImage drops a stored image ref, best effort. The record change has
// already been committed when this runs, so a failure is only logged.
func (h *OrganizationHandler) removeImage(ref string) {
	if ref == "" {
		return
	}
	if err := h.images.Remove(ref); err != nil {
		zap.L().Warn("stored image not removed", zap.String("ref", ref), zap.Error(err))
	}
}

// HandleGetOrganizationEvents godoc
// @Summary      List an organization's events, or look one up by title
// @Tags         organizations
// @Produce      json
// @Param        orgID  path      int     true   "organization ID"
// @Param        title  query     string  false  "exact event title to look up"
// @Success      200    {object}  response.Envelope
// @Failure      404    {object}  response.Envelope
// @Failure      500    {object}  response.Envelope
// @Router       /organizations/{orgID}/events [get]
// @Security     BearerAuth
func (h *OrganizationHandler) HandleGetOrganizationEvents(ctx *gin.Context) {
	orgID, respErr := parseUintParam(ctx, "orgID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if title := ctx.Query("title"); title != "" {
		event, err := h.eventSvc.GetEventByOrganizationAndTitle(ctx.Request.Context(), orgID, title)
		if err != nil {
			if errors.Is(err, service.ErrEventNotFound) {
				response.RenderErr(ctx, response.ErrNotFound("event", "title", title))
				return
			}

			err = fmt.Errorf("v1.HandleGetOrganizationEvents -> h.eventSvc.GetEventByOrganizationAndTitle -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}

		response.Render(ctx, http.StatusOK, "event retrieved successfully", event)
		return
	}

	events, err := h.eventSvc.GetEventsByOrganization(ctx.Request.Context(), orgID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetOrganizationEvents -> h.eventSvc.GetEventsByOrganization -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "events retrieved successfully", events)
}

// HandleGetEventParticipants godoc
// @Summary      List the registrations of an event
// @Tags         organizations
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {object}  response.Envelope{data=[]domain.Registration}
// @Failure      404      {object}  response.Envelope
// @Failure      500      {object}  response.Envelope
// @Router       /organizations/events/{eventID}/participants [get]
// @Security     BearerAuth
func (h *OrganizationHandler) HandleGetEventParticipants(ctx *gin.Context) {
	eventID, respErr := parseUintParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	registrations, err := h.registrations.GetEventRegistrations(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEventParticipants -> h.registrations.GetEventRegistrations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "registrations retrieved successfully", registrations)
}

// HandleGetAttendanceSummary godoc
// @Summary      Attendance summary for an event
// @Tags         organizations
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {object}  response.Envelope{data=domain.AttendanceSummary}
// @Failure      404      {object}  response.Envelope
// @Failure      500      {object}  response.Envelope
// @Router       /organizations/events/{eventID}/attendance-summary [get]
// @Security     BearerAuth
func (h *OrganizationHandler) HandleGetAttendanceSummary(ctx *gin.Context) {
	eventID, respErr := parseUintParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	summary, err := h.registrations.GetAttendanceSummary(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetAttendanceSummary -> h.registrations.GetAttendanceSummary -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "attendance summary retrieved successfully", summary)
}

// HandleMonthlyParticipants godoc
// @Summary      Monthly participation analytics for an organization
// @Description  One bucket per calendar month, zero counts included.
// @Tags         organizations
// @Produce      json
// @Param        orgID  path      int  true  "organization ID"
// @Success      200    {object}  response.Envelope{data=[]domain.MonthlyParticipants}
// @Failure      403    {object}  response.Envelope
// @Failure      404    {object}  response.Envelope
// @Failure      500    {object}  response.Envelope
// @Router       /organizations/{orgID}/analytics/monthly-participants [get]
// @Security     BearerAuth
func (h *OrganizationHandler) HandleMonthlyParticipants(ctx *gin.Context) {
	orgID, respErr := parseUintParam(ctx, "orgID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireOwnAccount(ctx, orgID); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	buckets, err := h.registrations.MonthlyParticipants(ctx.Request.Context(), orgID)
	if err != nil {
		if errors.Is(err, service.ErrOrganizationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("organization", "ID", orgID))
			return
		}

		err = fmt.Errorf("v1.HandleMonthlyParticipants -> h.registrations.MonthlyParticipants -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "monthly participants retrieved successfully", buckets)
}

// requireOwnAccount rejects requests whose session does not belong to the
// account addressed by the path.
func requireOwnAccount(ctx *gin.Context, accountID uint) *response.Err {
	claims := middleware.SessionClaims(ctx)
	if claims == nil || claims.AccountID != accountID {
		return response.ErrPermissionDenied(errors.New("account does not own this resource"))
	}

	return nil
}
