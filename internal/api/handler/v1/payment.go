package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventfesta/eventfesta-api/internal/api/handler/v1/request"
	"github.com/eventfesta/eventfesta-api/internal/api/handler/v1/response"
	"github.com/eventfesta/eventfesta-api/internal/payment"
	"github.com/eventfesta/eventfesta-api/internal/service"
)

type PaymentGateway interface {
	CreateOrder(amount float64) (map[string]interface{}, error)
	VerifySignature(orderID, paymentID, signature string) error
}

type PaymentHandler struct {
	gateway       PaymentGateway
	registrations RegistrationService
}

func NewPaymentHandler(gateway PaymentGateway, registrations RegistrationService) *PaymentHandler {
	return &PaymentHandler{
		gateway:       gateway,
		registrations: registrations,
	}
}

// HandleCreateOrder godoc
// @Summary      Create a payment order for a paid event
// @Tags         payment
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateOrderRequest  true  "request body"
// @Success      200      {object}  response.Envelope
// @Failure      400      {object}  response.Envelope
// @Failure      500      {object}  response.Envelope
// @Router       /payment/create-order [post]
// @Security     BearerAuth
func (h *PaymentHandler) HandleCreateOrder(ctx *gin.Context) {
	req := request.CreateOrderRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	order, err := h.gateway.CreateOrder(req.Amount)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateOrder -> h.gateway.CreateOrder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusOK, "order created successfully", order)
}

// HandleVerifyAndRegister godoc
// @Summary      Verify a payment signature, then register the participant
// @Description  The registration only runs after the signature checks out. If
// @Description  the registration then fails, the response names the captured
// @Description  payment so support can reconcile it.
// @Tags         payment
// @Accept       json
// @Produce      json
// @Param        request  body      request.VerifyAndRegisterRequest  true  "request body"
// @Success      201      {object}  response.Envelope{data=domain.Registration}
// @Failure      400      {object}  response.Envelope
// @Failure      403      {object}  response.Envelope
// @Failure      409      {object}  response.Envelope
// @Failure      500      {object}  response.Envelope
// @Router       /payment/verify-and-register [post]
// @Security     BearerAuth
func (h *PaymentHandler) HandleVerifyAndRegister(ctx *gin.Context) {
	req := request.VerifyAndRegisterRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if respErr := requireOwnAccount(ctx, req.ParticipantID); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature); err != nil {
		if errors.Is(err, payment.ErrSignatureMismatch) {
			response.RenderErr(ctx, response.ErrBadRequest(payment.ErrSignatureMismatch))
			return
		}

		err = fmt.Errorf("v1.HandleVerifyAndRegister -> h.gateway.VerifySignature -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	form := service.RegistrationForm{
		ParticipantName:   req.RegistrationData.ParticipantName,
		ContactEmail:      req.RegistrationData.ContactEmail,
		PhoneNumber:       req.RegistrationData.PhoneNumber,
		YearOrDesignation: req.RegistrationData.YearOrDesignation,
		Expectation:       req.RegistrationData.Expectation,
	}

	result, err := h.registrations.RegisterParticipant(
		ctx.Request.Context(),
		req.ParticipantID,
		req.EventID,
		form,
		req.RazorpayPaymentID,
		req.RazorpayOrderID,
	)
	if err != nil {
		// The payment is already captured at this point, so the response
		// names it for reconciliation instead of a bare failure.
		respErr := registrationErr(err, req.ParticipantID, req.EventID, "v1.HandleVerifyAndRegister")
		respErr.Message = fmt.Sprintf("payment %v was captured but registration failed: %v",
			req.RazorpayPaymentID, respErr.Message)
		response.RenderErr(ctx, respErr)
		return
	}

	message := "payment verified and registered successfully"
	if result.NotificationErr != nil {
		message = "payment verified and registered successfully, but the confirmation email could not be sent"
	}

	response.Render(ctx, http.StatusCreated, message, result.Registration)
}
