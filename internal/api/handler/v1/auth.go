package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventfesta/eventfesta-api/internal/api/handler/v1/request"
	"github.com/eventfesta/eventfesta-api/internal/api/handler/v1/response"
	"github.com/eventfesta/eventfesta-api/internal/api/middleware"
	"github.com/eventfesta/eventfesta-api/internal/config"
	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/pkg/jwthelper"
	"github.com/eventfesta/eventfesta-api/internal/service"
)

const sessionCookieMaxAge = 24 * 60 * 60

type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (service.Identity, error)
	SignupOrganization(ctx context.Context, org domain.Organization, otp string) (domain.Organization, error)
	SignupParticipant(ctx context.Context, participant domain.Participant, otp string) (domain.Participant, error)
}

type ImageStore interface {
	Save(file *multipart.FileHeader) (string, error)
	Remove(ref string) error
}

type AuthHandler struct {
	conf   *config.APIConfig
	svc    AuthService
	images ImageStore
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService, images ImageStore) *AuthHandler {
	return &AuthHandler{
		conf:   conf,
		svc:    svc,
		images: images,
	}
}

// HandleSignupOrganization godoc
// @Summary      Register a new organization account
// @Description  Multipart form: "organization" (JSON), "otp", optional "photo".
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  response.Envelope{data=domain.Organization}
// @Failure      400  {object}  response.Envelope
// @Failure      500  {object}  response.Envelope
// @Router       /auth/register/organization [post]
func (h *AuthHandler) HandleSignupOrganization(ctx *gin.Context) {
	var req request.SignupOrganizationRequest
	if err := json.Unmarshal([]byte(ctx.PostForm("organization")), &req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	org := domain.Organization{
		Name:     req.Name,
		Type:     req.Type,
		Location: req.Location,
		Email:    req.Email,
		Password: req.Password,
		Since:    req.Since,
		About:    req.About,
		Contact:  req.Contact,
	}

	imageRef, respErr := h.saveUploadedPhoto(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	org.ProfileImageRef = imageRef

	created, err := h.svc.SignupOrganization(ctx.Request.Context(), org, ctx.PostForm("otp"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidOtp) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidOtp))
			return
		}
		if errors.Is(err, service.ErrOrganizationEmailExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrOrganizationEmailExists))
			return
		}

		err = fmt.Errorf("v1.HandleSignupOrganization -> h.svc.SignupOrganization -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusCreated, "organization registered successfully", created)
}

// HandleSignupParticipant godoc
// @Summary      Register a new participant account
// @Description  Multipart form: "participant" (JSON), "otp", optional "photo".
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  response.Envelope{data=domain.Participant}
// @Failure      400  {object}  response.Envelope
// @Failure      500  {object}  response.Envelope
// @Router       /auth/register/participant [post]
func (h *AuthHandler) HandleSignupParticipant(ctx *gin.Context) {
	var req request.SignupParticipantRequest
	if err := json.Unmarshal([]byte(ctx.PostForm("participant")), &req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	participant := domain.Participant{
		Name:              req.Name,
		Email:             req.Email,
		Password:          req.Password,
		University:        req.University,
		Course:            req.Course,
		CurrentlyStudying: req.CurrentlyStudying,
		Interests:         req.Interests,
	}

	imageRef, respErr := h.saveUploadedPhoto(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	participant.ProfileImageRef = imageRef

	created, err := h.svc.SignupParticipant(ctx.Request.Context(), participant, ctx.PostForm("otp"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidOtp) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidOtp))
			return
		}
		if errors.Is(err, service.ErrParticipantEmailExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrParticipantEmailExists))
			return
		}

		err = fmt.Errorf("v1.HandleSignupParticipant -> h.svc.SignupParticipant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Render(ctx, http.StatusCreated, "participant registered successfully", created)
}

// HandleLoginOrganization godoc
// @Summary      Login an organization
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.LoginRequest true "request body"
// @Success      200      {object}  response.LoginResponse
// @Failure      401      {object}  response.Envelope
// @Failure      500      {object}  response.Envelope
// @Router       /auth/login/organization [post]
func (h *AuthHandler) HandleLoginOrganization(ctx *gin.Context) {
	h.login(ctx, domain.RoleOrganization)
}

// HandleLoginParticipant godoc
// @Summary      Login a participant
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.LoginRequest true "request body"
// @Success      200      {object}  response.LoginResponse
// @Failure      401      {object}  response.Envelope
// @Failure      500      {object}  response.Envelope
// @Router       /auth/login/participant [post]
func (h *AuthHandler) HandleLoginParticipant(ctx *gin.Context) {
	h.login(ctx, domain.RoleParticipant)
}

// login authenticates and, when the matched account carries the expected
// role, issues the session token as an HttpOnly cookie and in the body.
// A role mismatch is reported as invalid credentials so the response never
// reveals which store the email lives in.
func (h *AuthHandler) login(ctx *gin.Context, expectedRole string) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	identity, err := h.svc.Authenticate(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.RenderErr(ctx, response.ErrWrongCredentials())
			return
		}

		err = fmt.Errorf("v1.login -> h.svc.Authenticate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if identity.Role != expectedRole {
		response.RenderErr(ctx, response.ErrWrongCredentials())
		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), identity.AccountID, identity.Email, identity.Role)
	if err != nil {
		err = fmt.Errorf("v1.login -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.SetCookie(middleware.SessionCookieName, token, sessionCookieMaxAge, "/", "", false, true)

	var account interface{}
	if identity.Role == domain.RoleOrganization {
		account = identity.Organization
	} else {
		account = identity.Participant
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token:   token,
		Account: account,
	})
}

func (h *AuthHandler) saveUploadedPhoto(ctx *gin.Context) (string, *response.Err) {
	file, err := ctx.FormFile("photo")
	if err != nil {
		// Photo is optional.
		return "", nil
	}

	ref, err := h.images.Save(file)
	if err != nil {
		err = fmt.Errorf("v1.saveUploadedPhoto -> h.images.Save -> %w", err)
		return "", response.ErrInternalServerError(err)
	}

	return ref, nil
}
