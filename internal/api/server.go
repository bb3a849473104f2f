package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/eventfesta/eventfesta-api/docs"
	v1 "github.com/eventfesta/eventfesta-api/internal/api/handler/v1"
	"github.com/eventfesta/eventfesta-api/internal/api/middleware"
	"github.com/eventfesta/eventfesta-api/internal/config"
	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/imagestore"
	"github.com/eventfesta/eventfesta-api/internal/notifier"
	"github.com/eventfesta/eventfesta-api/internal/payment"
	"github.com/eventfesta/eventfesta-api/internal/repository"
	"github.com/eventfesta/eventfesta-api/internal/repository/dao"
	"github.com/eventfesta/eventfesta-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB, mailer *notifier.Mailer, images *imagestore.LocalStore) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	orgRepo := repository.NewOrganizationRepository(dao.NewOrganizationDAO(db))
	participantRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	registrationRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))

	otpCache := gocache.New(5*time.Minute, 10*time.Minute)
	otpSvc := service.NewOtpService(otpCache, mailer)

	authSvc := service.NewAuthService(orgRepo, participantRepo, otpSvc, mailer)
	orgSvc := service.NewOrganizationService(orgRepo)
	participantSvc := service.NewParticipantService(participantRepo)
	eventSvc := service.NewEventService(eventRepo, participantRepo, mailer)
	registrationSvc := service.NewRegistrationService(registrationRepo, participantRepo, eventRepo, orgRepo, mailer)

	gateway := payment.NewRazorpayGateway(conf.Razorpay)

	s.MountHandlers(
		v1.NewOtpHandler(otpSvc),
		v1.NewAuthHandler(conf.API, authSvc, images),
		v1.NewEventHandler(eventSvc),
		v1.NewOrganizationHandler(orgSvc, eventSvc, registrationSvc, images),
		v1.NewParticipantHandler(participantSvc, registrationSvc),
		v1.NewRegistrationHandler(registrationSvc),
		v1.NewAttendanceHandler(registrationSvc),
		v1.NewPaymentHandler(gateway, registrationSvc),
	)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	otpHandler *v1.OtpHandler,
	authHandler *v1.AuthHandler,
	eventHandler *v1.EventHandler,
	orgHandler *v1.OrganizationHandler,
	participantHandler *v1.ParticipantHandler,
	registrationHandler *v1.RegistrationHandler,
	attendanceHandler *v1.AttendanceHandler,
	paymentHandler *v1.PaymentHandler,
) {
	const basePath = "/api"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	public := s.Router.Group(basePath)
	{
		public.POST("/otp/send", otpHandler.HandleSendOtp)
		public.POST("/otp/verify", otpHandler.HandleVerifyOtp)
		public.POST("/auth/register/organization", authHandler.HandleSignupOrganization)
		public.POST("/auth/register/participant", authHandler.HandleSignupParticipant)
		public.POST("/auth/login/organization", authHandler.HandleLoginOrganization)
		public.POST("/auth/login/participant", authHandler.HandleLoginParticipant)
		public.GET("/events", eventHandler.HandleGetEvents)
		public.GET("/events/:eventID", eventHandler.HandleGetEvent)
		public.GET("/organizations", orgHandler.HandleGetOrganizations)
		public.GET("/organizations/:orgID", orgHandler.HandleGetOrganization)
	}

	orgs := s.Router.Group(basePath,
		authenticator.VerifySession(),
		authenticator.RequireRole(domain.RoleOrganization))
	{
		orgs.POST("/organizations/:orgID/create-event", orgHandler.HandleCreateEvent)
		orgs.PUT("/organizations/:orgID", orgHandler.HandleUpdateOrganization)
		orgs.DELETE("/organizations/:orgID", orgHandler.HandleDeleteOrganization)
		orgs.GET("/organizations/:orgID/events", orgHandler.HandleGetOrganizationEvents)
		orgs.PUT("/organizations/:orgID/events/:eventID", orgHandler.HandleUpdateEvent)
		orgs.DELETE("/organizations/:orgID/events/:eventID", orgHandler.HandleDeleteEvent)
		orgs.GET("/organizations/events/:eventID/participants", orgHandler.HandleGetEventParticipants)
		orgs.GET("/organizations/events/:eventID/attendance-summary", orgHandler.HandleGetAttendanceSummary)
		orgs.GET("/organizations/:orgID/analytics/monthly-participants", orgHandler.HandleMonthlyParticipants)
		orgs.POST("/organizations/attendance/verify", attendanceHandler.HandleVerifyAttendance)
		orgs.POST("/organizations/attendance/mark", attendanceHandler.HandleMarkAttendance)
	}

	participants := s.Router.Group(basePath,
		authenticator.VerifySession(),
		authenticator.RequireRole(domain.RoleParticipant))
	{
		participants.GET("/participants/:participantID", participantHandler.HandleGetParticipant)
		participants.PUT("/participants/:participantID", participantHandler.HandleUpdateParticipant)
		participants.DELETE("/participants/:participantID", participantHandler.HandleDeleteParticipant)
		participants.PATCH("/participants/:participantID/change-password", participantHandler.HandleChangePassword)
		participants.GET("/participants/:participantID/events", participantHandler.HandleGetRegisteredEvents)
		participants.GET("/participants/:participantID/events/:eventID/is-registered", participantHandler.HandleIsRegistered)
		participants.GET("/participants/:participantID/interests", participantHandler.HandleGetInterests)
		participants.PUT("/participants/:participantID/interests", participantHandler.HandleReplaceInterests)
		participants.POST("/participants/:participantID/interests", participantHandler.HandleAddInterest)
		participants.DELETE("/participants/:participantID/interests/:interest", participantHandler.HandleRemoveInterest)
		participants.POST("/participants/:participantID/events/:eventID/register", registrationHandler.HandleRegisterForEvent)
		participants.POST("/payment/create-order", paymentHandler.HandleCreateOrder)
		participants.POST("/payment/verify-and-register", paymentHandler.HandleVerifyAndRegister)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "EventFesta API"
	docs.SwaggerInfo.Description = "Event management backend: organizations publish events, participants register and attend."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
