package routes

import (
	"time"

	"consultorio/handlers"
	"consultorio/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterProfessionalRoutes registers account and session endpoints.
func RegisterProfessionalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/professionals")
	{
		api.POST("/register", hb.Professional.RegisterHandler)
		api.POST("/login", hb.Professional.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.ProfessionalRepo))
		api.POST("/logout", hb.Professional.LogoutHandler)
		api.PUT("/fcm-token", hb.Professional.UpdateFCMTokenHandler)
	}
}

// RegisterAvailabilityRoutes registers the weekly schedule endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.ProfessionalRepo))
		api.GET("", hb.Availability.GetAvailabilityHandler)
		api.PUT("", hb.Availability.UpdateAvailabilityHandler)
	}
}

// RegisterPatientRoutes registers the patient registry endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patients")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.ProfessionalRepo))
		api.POST("", hb.Patient.CreatePatientHandler)
		api.GET("", hb.Patient.ListPatientsHandler)
		api.GET("/:id", hb.Patient.GetPatientHandler)
		api.PUT("/:id", hb.Patient.UpdatePatientHandler)
		api.DELETE("/:id", hb.Patient.DeletePatientHandler)
		api.POST("/:id/notes", hb.Patient.AddClinicalNoteHandler)
		api.POST("/:id/files", hb.Patient.SaveFileReferenceHandler)
	}
}

// RegisterAppointmentRoutes registers the agenda and billing endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.ProfessionalRepo))
		api.POST("", hb.Appointment.CreateAppointmentHandler)
		api.GET("", hb.Appointment.ListAppointmentsHandler)
		api.GET("/report", hb.Appointment.MonthlyReportHandler)
		api.GET("/stats", hb.Appointment.DashboardStatsHandler)
		api.PUT("/:id/cancel", hb.Appointment.CancelAppointmentHandler)
		api.PUT("/:id/status", hb.Appointment.UpdateStatusHandler)
		api.PUT("/:id/payment", hb.Appointment.RegisterPaymentHandler)
		api.POST("/:id/payment-intent", hb.Appointment.CreatePaymentIntentHandler)
	}
}

// RegisterStorageRoutes registers signed upload and download endpoints.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/storage")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.ProfessionalRepo))
		api.POST("/authorize", hb.Storage.AuthorizeUploadHandler)
		api.GET("/download/:publicId", hb.Storage.GetDownloadURLHandler)
		api.DELETE("/:publicId", hb.Storage.DeleteFileHandler)
	}
}

// RegisterPublicRoutes registers the unauthenticated booking page endpoints.
// These are rate limited per client IP.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/public")
	{
		api.Use(middleware.RateLimitMiddleware())
		api.GET("/:professionalId", hb.Public.GetProfileHandler)
		api.GET("/:professionalId/availability", hb.Public.GetAvailabilityHandler)
		api.POST("/:professionalId/book", hb.Public.BookHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterProfessionalRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterPublicRoutes(r, hb)
	RegisterHealthRoute(r)
}
