package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/odontolab/clinic-api/internal/audit"
	"github.com/odontolab/clinic-api/internal/config"
	"github.com/odontolab/clinic-api/internal/handlers"
	infraRepo "github.com/odontolab/clinic-api/internal/infra/repository"
	"github.com/odontolab/clinic-api/internal/lock"
	"github.com/odontolab/clinic-api/internal/middleware"
	"github.com/odontolab/clinic-api/internal/timezone"
	ucAppointment "github.com/odontolab/clinic-api/internal/usecase/appointment"
	ucReminder "github.com/odontolab/clinic-api/internal/usecase/reminder"
)

const dentistLockTTL = 10 * time.Second

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	dentistLocker := lock.NewRedisDentistLocker(rdb, dentistLockTTL)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	clinicTZ := timezone.Location(cfg.Timezone)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createUC := ucAppointment.NewCreateAppointment(appointmentRepo, dentistLocker, auditDispatcher)
	getUC := ucAppointment.NewGetAppointment(appointmentRepo)
	listUC := ucAppointment.NewListAppointments(appointmentRepo)
	updateUC := ucAppointment.NewUpdateAppointment(appointmentRepo, dentistLocker, auditDispatcher)
	statusUC := ucAppointment.NewUpdateStatus(appointmentRepo, auditDispatcher)
	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, auditDispatcher)
	deleteUC := ucAppointment.NewHardDeleteAppointment(appointmentRepo, auditDispatcher)
	availUC := ucAppointment.NewCheckAvailability(appointmentRepo)
	upcomingUC := ucAppointment.NewListUpcoming(appointmentRepo)
	statsUC := ucAppointment.NewGetStats(appointmentRepo)

	listDueUC := ucReminder.NewListDue(appointmentRepo)
	markSentUC := ucReminder.NewMarkSent(appointmentRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	contactHandler := handlers.NewContactHandler(db)
	recordHandler := handlers.NewMedicalRecordHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		getUC,
		listUC,
		updateUC,
		statusUC,
		cancelUC,
		deleteUC,
		availUC,
		upcomingUC,
		statsUC,
		clinicTZ,
	)

	reminderHandler := handlers.NewReminderHandler(listDueUC, markSentUC)

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/contact", contactHandler.Create)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/availability", appointmentHandler.Availability)
			secured.GET("/appointments/upcoming", appointmentHandler.Upcoming)
			secured.GET("/appointments/stats", appointmentHandler.Stats)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.DELETE("/appointments/:id", appointmentHandler.Cancel)
			secured.DELETE("/appointments/:id/hard", appointmentHandler.HardDelete)

			// ------------------------------
			// REMINDERS (dispatcher polling)
			// ------------------------------
			secured.GET("/reminders/due", reminderHandler.ListDue)
			secured.PATCH("/reminders/:id/sent", reminderHandler.MarkSent)

			// ------------------------------
			// PATIENTS
			// ------------------------------
			secured.POST("/patients", patientHandler.Create)
			secured.GET("/patients", patientHandler.List)
			secured.GET("/patients/:id", patientHandler.Get)

			// ------------------------------
			// MEDICAL RECORDS
			// ------------------------------
			secured.POST("/medical-records", recordHandler.Create)
			secured.GET("/medical-records", recordHandler.List)
			secured.GET("/medical-records/:id", recordHandler.Get)
			secured.PATCH("/medical-records/:id", recordHandler.Update)
			secured.DELETE("/medical-records/:id", recordHandler.Delete)

			// ------------------------------
			// CONTACT REQUESTS (staff)
			// ------------------------------
			secured.GET("/contact-requests", contactHandler.List)
			secured.PATCH("/contact-requests/:id/handled", contactHandler.MarkHandled)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
