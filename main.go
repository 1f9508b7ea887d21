package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"consultorio/config"
	"consultorio/cron"
	"consultorio/database"
	appointmentRepo "consultorio/database/repository/appointment"
	patientRepo "consultorio/database/repository/patient"
	professionalRepo "consultorio/database/repository/professional"
	"consultorio/handlers"
	"consultorio/routes"
	"consultorio/services/appointment"
	"consultorio/services/notification"
	"consultorio/services/patient"
	"consultorio/services/professional"
	"consultorio/services/schedule"
	"consultorio/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	profRepo := professionalRepo.NewMongoProfessionalRepo()
	patRepo := patientRepo.NewMongoPatientRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()

	// services.
	emailSender := notification.NewSMTPSender(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.EmailFrom,
	)
	notificationService, err := notification.NewDefaultNotificationService(emailSender)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	reminderScheduler := cron.NewReminderScheduler()

	professionalService := &professional.DefaultProfessionalService{
		Repo:  profRepo,
		Cache: utils.GetCacheClient(),
	}

	patientService := &patient.DefaultPatientService{
		Repo: patRepo,
	}

	appointmentService := &appointment.DefaultAppointmentService{
		Appointments:  apptRepo,
		Patients:      patRepo,
		Professionals: profRepo,
		Notifier:      notificationService,
		Reminders:     reminderScheduler,
	}

	publicBookingService := &schedule.DefaultPublicBookingService{
		Professionals: profRepo,
		Patients:      patRepo,
		Appointments:  apptRepo,
		Notifier:      notificationService,
		Cache:         utils.GetCacheClient(),
		HorizonDays:   config.AppConfig.PublicHorizonDays,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ProfessionalRepo: profRepo,
		Professional:     handlers.NewProfessionalHandler(professionalService),
		Availability:     handlers.NewAvailabilityHandler(professionalService),
		Patient:          handlers.NewPatientHandler(patientService),
		Appointment:      handlers.NewAppointmentHandler(appointmentService),
		Public:           handlers.NewPublicHandler(publicBookingService, professionalService),
		Storage:          handlers.NewStorageHandler(cloudinaryStorageService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background workers.
	cron.InitReminderWorker(notificationService)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
