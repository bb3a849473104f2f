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

type AttendanceService interface {
	VerifyCode(ctx context.Context, code string) (domain.RegistrationSummary, error)
	MarkAttendance(ctx context.Context, code string, isPresent bool) (domain.RegistrationSummary, error)
}

type AttendanceHandler struct {
	svc AttendanceService
}

func NewAttendanceHandler(svc AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		svc: svc,
	}
}

// HandleVerifyAttendance godoc
// @Summary      Look a registration up by attendance code
// @Description  Read-only: verifying a code never changes the present flag.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        request  body      request.VerifyAttendanceRequest  true  "request body"
// @Success      200      {object}  response.Envelope{data=domain.RegistrationSummary}
// @Failure      400      {object}  response.Envelope
// @Failure      404      {object}  response.Envelope
// @Failure      500      {object}  response.Envelope
// @Router       /organizations/attendance/verify [post]
// @Security     BearerAuth
func (h *AttendanceHandler) HandleVerifyAttendance(ctx *gin.Context) {
	req := request.VerifyAttendanceRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	summary, err := h.svc.VerifyCode(ctx.Request.Context(), req.AttendanceCode)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("registration", "attendance code", req.AttendanceCode))
			return
		}

		err = fmt.Errorf("v1.HandleVerifyAttendance -> h.svc.VerifyCode -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "attendance code verified successfully", summary)
}

// HandleMarkAttendance godoc
// @Summary      Set the present flag for a registration
// @Description  Idempotent; the flag can be toggled in both directions.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        request  body      request.MarkAttendanceRequest  true  "request body"
// @Success      200      {object}  response.Envelope{data=domain.RegistrationSummary}
// @Failure      400      {object}  response.Envelope
// @Failure      404      {object}  response.Envelope
// @Failure      500      {object}  response.Envelope
// @Router       /organizations/attendance/mark [post]
// @Security     BearerAuth
func (h *AttendanceHandler) HandleMarkAttendance(ctx *gin.Context) {
	req := request.MarkAttendanceRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	summary, err := h.svc.MarkAttendance(ctx.Request.Context(), req.AttendanceCode, *req.IsPresent)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("registration", "attendance code", req.AttendanceCode))
			return
		}

		err = fmt.Errorf("v1.HandleMarkAttendance -> h.svc.MarkAttendance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "attendance updated successfully", summary)
}
