package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventfesta/eventfesta-api/internal/api/handler/v1/request"
	"github.com/eventfesta/eventfesta-api/internal/api/handler/v1/response"
	"github.com/eventfesta/eventfesta-api/internal/service"
)

type OtpService interface {
	SendOtp(email string) error
	ValidateOtp(email, otp string) bool
}

type OtpHandler struct {
	svc OtpService
}

func NewOtpHandler(svc OtpService) *OtpHandler {
	return &OtpHandler{
		svc: svc,
	}
}

// HandleSendOtp godoc
// @Summary      Send a one-time code to an email address
// @Tags         otp
// @Accept       json
// @Produce      json
// @Param        request  body      request.SendOtpRequest true "request body"
// @Success      200      {object}  response.Envelope
// @Failure      400      {object}  response.Envelope
// @Failure      500      {object}  response.Envelope
// @Router       /otp/send [post]
func (h *OtpHandler) HandleSendOtp(ctx *gin.Context) {
	var req request.SendOtpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.SendOtp(req.Email); err != nil {
		err = fmt.Errorf("v1.HandleSendOtp -> h.svc.SendOtp -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "OTP sent successfully", nil)
}

// HandleVerifyOtp godoc
// @Summary      Verify a one-time code
// @Tags         otp
// @Accept       json
// @Produce      json
// @Param        request  body      request.VerifyOtpRequest true "request body"
// @Success      200      {object}  response.Envelope
// @Failure      400      {object}  response.Envelope
// @Router       /otp/verify [post]
func (h *OtpHandler) HandleVerifyOtp(ctx *gin.Context) {
	var req request.VerifyOtpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if !h.svc.ValidateOtp(req.Email, req.Otp) {
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidOtp))
		return
	}

	response.Render(ctx, http.StatusOK, "OTP verified successfully", nil)
}
