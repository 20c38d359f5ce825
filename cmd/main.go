package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/edunexa/educenter-backend/internal/clients/redis"
	"github.com/edunexa/educenter-backend/internal/db"
	"github.com/edunexa/educenter-backend/internal/handlers"
	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/middleware"
	"github.com/edunexa/educenter-backend/internal/observability"
	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/server"
	"github.com/edunexa/educenter-backend/internal/services"
	"github.com/edunexa/educenter-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	serviceName := utils.GetEnv("SERVICE_NAME", "educenter-backend", log)

	// Tracing
	ctx := context.Background()
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: utils.GetEnv("ENVIRONMENT", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
	})
	if otelShutdown != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	teacherRepo := repos.NewTeacherRepo(thePG, log)
	parentRepo := repos.NewParentRepo(thePG, log)
	studentRepo := repos.NewStudentRepo(thePG, log)
	classRepo := repos.NewClassRepo(thePG, log)
	classSessionRepo := repos.NewClassSessionRepo(thePG, log)
	enrollmentRepo := repos.NewEnrollmentRepo(thePG, log)
	invoiceRepo := repos.NewInvoiceRepo(thePG, log)
	leaveRequestRepo := repos.NewLeaveRequestRepo(thePG, log)
	sessionChangeRepo := repos.NewSessionChangeRepo(thePG, log)
	feedbackRepo := repos.NewFeedbackRepo(thePG, log)
	feedbackAnalysisRepo := repos.NewFeedbackAnalysisRepo(thePG, log)
	settingRepo := repos.NewSettingRepo(thePG, log)
	transferRequestRepo := repos.NewTransferRequestRepo(thePG, log)

	// Alert bus (optional; sweeps run without it)
	var alertBus redis.AlertBus
	if bus, busErr := redis.NewAlertBus(log); busErr != nil {
		log.Warn("Alert bus unavailable, monitoring alerts will not be published", "error", busErr)
	} else {
		alertBus = bus
		defer bus.Close()
	}

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	userService := services.NewUserService(thePG, log, userRepo, parentRepo, studentRepo)
	teacherService := services.NewTeacherService(thePG, log, teacherRepo)
	classService := services.NewClassService(thePG, log, classRepo, classSessionRepo, teacherRepo)
	scheduleService := services.NewScheduleService(thePG, log, classSessionRepo)
	enrollmentService := services.NewEnrollmentService(thePG, log, enrollmentRepo, classRepo, studentRepo, invoiceRepo)
	billingService := services.NewBillingService(thePG, log, invoiceRepo, parentRepo)
	leaveService := services.NewLeaveService(thePG, log, leaveRequestRepo, studentRepo, classSessionRepo, parentRepo)
	sessionChangeService := services.NewSessionChangeService(thePG, log, sessionChangeRepo, classSessionRepo, classRepo)
	feedbackService := services.NewFeedbackService(thePG, log, feedbackRepo, feedbackAnalysisRepo, teacherRepo, parentRepo, studentRepo)
	settingsService := services.NewSettingsService(log, settingRepo)
	monitoringService := services.NewMonitoringService(thePG, log, teacherRepo, feedbackRepo, transferRequestRepo, settingsService, alertBus)
	transferService := services.NewTransferService(thePG, log, transferRequestRepo, teacherRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	teacherHandler := handlers.NewTeacherHandler(teacherService)
	classHandler := handlers.NewClassHandler(classService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentService)
	billingHandler := handlers.NewBillingHandler(billingService)
	leaveHandler := handlers.NewLeaveHandler(leaveService)
	sessionChangeHandler := handlers.NewSessionChangeHandler(sessionChangeService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService, settingsService)
	transferHandler := handlers.NewTransferHandler(transferService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware:       authMiddleware,
		AuthHandler:          authHandler,
		UserHandler:          userHandler,
		TeacherHandler:       teacherHandler,
		ClassHandler:         classHandler,
		ScheduleHandler:      scheduleHandler,
		EnrollmentHandler:    enrollmentHandler,
		BillingHandler:       billingHandler,
		LeaveHandler:         leaveHandler,
		SessionChangeHandler: sessionChangeHandler,
		FeedbackHandler:      feedbackHandler,
		MonitoringHandler:    monitoringHandler,
		TransferHandler:      transferHandler,
		ServiceName:          serviceName,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
