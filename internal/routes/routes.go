package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/audit"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/cache"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/config"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/fidelity"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barbersoft-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/middleware"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/notify"
	ucAppointment "github.com/BruksfildServices01/barbersoft-agenda/internal/usecase/appointment"
	ucClient "github.com/BruksfildServices01/barbersoft-agenda/internal/usecase/client"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	units *cache.UnitCache,
	logger *zap.Logger,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	clientRepo := infraRepo.NewClientGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	notifier := notify.NewEvolutionSender(cfg.EvolutionAPIURL, logger)
	fidelityChecker := fidelity.NewChecker(clientRepo, auditDispatcher, logger)

	// ======================================================
	// 🧠 USE CASES — CLIENTS
	// ======================================================
	resolveClientUC := ucClient.NewResolve(clientRepo, logger)
	checkClientUC := ucClient.NewCheck(clientRepo)
	registerClientUC := ucClient.NewRegister(clientRepo, auditDispatcher)
	updateClientUC := ucClient.NewUpdate(clientRepo, auditDispatcher)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)
	checkSlotUC := ucAppointment.NewCheckSlot(appointmentRepo)

	createUC := ucAppointment.NewCreate(
		appointmentRepo,
		resolveClientUC,
		auditDispatcher,
		notifier,
		logger,
	)

	confirmUC := ucAppointment.NewConfirm(appointmentRepo, auditDispatcher)

	completeUC := ucAppointment.NewComplete(
		appointmentRepo,
		clientRepo,
		fidelityChecker,
		auditDispatcher,
		logger,
	)

	cancelUC := ucAppointment.NewCancel(appointmentRepo, auditDispatcher, logger)
	noShowUC := ucAppointment.NewMarkNoShow(appointmentRepo, auditDispatcher, logger)
	deleteUC := ucAppointment.NewDelete(appointmentRepo, auditDispatcher, logger)
	listUC := ucAppointment.NewList(appointmentRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	unitHandler := handlers.NewUnitHandler(db, units)

	barberHandler := handlers.NewBarberHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		confirmUC,
		completeUC,
		cancelUC,
		noShowUC,
		deleteUC,
		listUC,
	)

	botHandler := handlers.NewBotHandler(
		appointmentRepo,
		units,
		availabilityUC,
		checkSlotUC,
		createUC,
		cancelUC,
		checkClientUC,
		registerClientUC,
		updateClientUC,
		logger,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	publicHandler := handlers.NewPublicHandler(db, availabilityUC)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🤖 CANAL CONVERSACIONAL
		// ------------------------------
		api.POST("/agenda", middleware.APIKeyMiddleware(cfg), botHandler.Handle)

		// ------------------------------
		// 🌐 API PÚBLICA (VITRINE)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA (PAINEL)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/unit", unitHandler.GetMeUnit)
			secured.PATCH("/me/unit", unitHandler.UpdateMeUnit)

			secured.GET("/me/barbers", barberHandler.List)
			secured.POST("/me/barbers", barberHandler.Create)
			secured.PATCH("/me/barbers/:id", barberHandler.Update)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/clients", clientHandler.List)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)
			secured.DELETE("/me/appointments/:id", appointmentHandler.Delete)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
