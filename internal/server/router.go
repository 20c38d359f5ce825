package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/edunexa/educenter-backend/internal/handlers"
	"github.com/edunexa/educenter-backend/internal/middleware"
	"github.com/edunexa/educenter-backend/internal/types"
)

type RouterConfig struct {
	AuthMiddleware       *middleware.AuthMiddleware
	AuthHandler          *handlers.AuthHandler
	UserHandler          *handlers.UserHandler
	TeacherHandler       *handlers.TeacherHandler
	ClassHandler         *handlers.ClassHandler
	ScheduleHandler      *handlers.ScheduleHandler
	EnrollmentHandler    *handlers.EnrollmentHandler
	BillingHandler       *handlers.BillingHandler
	LeaveHandler         *handlers.LeaveHandler
	SessionChangeHandler *handlers.SessionChangeHandler
	FeedbackHandler      *handlers.FeedbackHandler
	MonitoringHandler    *handlers.MonitoringHandler
	TransferHandler      *handlers.TransferHandler
	ServiceName          string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/refresh", cfg.AuthHandler.Refresh)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	// Teachers (directory readable by any signed-in user)
	protected.GET("/teachers", cfg.TeacherHandler.List)
	protected.GET("/teachers/:teacherId", cfg.TeacherHandler.Get)
	// Classes and schedule
	protected.GET("/classes", cfg.ClassHandler.List)
	protected.GET("/classes/:classId", cfg.ClassHandler.Get)
	protected.GET("/schedule", cfg.ScheduleHandler.View)
	// Feedback (parents submit, staff read via monitoring routes)
	protected.POST("/feedback", cfg.AuthMiddleware.RequireRole(types.RoleParent), cfg.FeedbackHandler.Submit)
	// Leave requests
	protected.POST("/leave-requests", cfg.AuthMiddleware.RequireRole(types.RoleParent), cfg.LeaveHandler.Submit)
	protected.GET("/leave-requests", cfg.LeaveHandler.List)
	// Session change requests
	protected.POST("/session-change-requests", cfg.AuthMiddleware.RequireRole(types.RoleTeacher, types.RoleAdmin), cfg.SessionChangeHandler.Submit)
	protected.GET("/session-change-requests", cfg.SessionChangeHandler.List)

	// ===============
	// || Admin     ||
	// ===============
	admin := router.Group("/admin-center")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireRole(types.RoleAdmin))
	// Teacher management
	admin.POST("/teachers", cfg.TeacherHandler.Create)
	admin.PUT("/teachers/:teacherId", cfg.TeacherHandler.Update)
	admin.DELETE("/teachers/:teacherId", cfg.TeacherHandler.Deactivate)
	// Class management
	admin.POST("/classes", cfg.ClassHandler.Create)
	admin.PUT("/classes/:classId", cfg.ClassHandler.Update)
	admin.DELETE("/classes/:classId", cfg.ClassHandler.Archive)
	admin.POST("/classes/:classId/sessions", cfg.ClassHandler.CreateSession)
	admin.DELETE("/sessions/:sessionId", cfg.ClassHandler.CancelSession)
	// Enrollment
	admin.POST("/enrollments", cfg.EnrollmentHandler.Enroll)
	admin.DELETE("/enrollments/:enrollmentId", cfg.EnrollmentHandler.Withdraw)
	admin.GET("/classes/:classId/enrollments", cfg.EnrollmentHandler.ListByClass)
	admin.GET("/students/:studentId/enrollments", cfg.EnrollmentHandler.ListByStudent)
	// Billing
	admin.POST("/invoices", cfg.BillingHandler.Create)
	admin.GET("/invoices", cfg.BillingHandler.List)
	admin.POST("/invoices/:invoiceId/pay", cfg.BillingHandler.MarkPaid)
	admin.GET("/parents/:parentId/outstanding", cfg.BillingHandler.Outstanding)
	// Request decisions
	admin.POST("/leave-requests/:requestId/decide", cfg.LeaveHandler.Decide)
	admin.POST("/session-change-requests/:requestId/decide", cfg.SessionChangeHandler.Decide)
	// Feedback review and analysis ingest
	admin.GET("/feedback", cfg.FeedbackHandler.List)
	admin.POST("/feedback/:feedbackId/analysis", cfg.FeedbackHandler.IngestAnalysis)
	// Transfer requests
	admin.POST("/transfer-requests", cfg.TransferHandler.Create)
	admin.GET("/transfer-requests", cfg.TransferHandler.List)
	admin.POST("/transfer-requests/:requestId/decide", cfg.TransferHandler.Decide)
	// Feedback monitoring
	monitoring := admin.Group("/feedback-monitoring")
	monitoring.POST("/check-teacher/:teacherId", cfg.MonitoringHandler.CheckTeacher)
	monitoring.GET("/teachers-at-risk", cfg.MonitoringHandler.TeachersAtRisk)
	monitoring.GET("/auto-transfer-settings", cfg.MonitoringHandler.GetSettings)
	monitoring.POST("/auto-transfer-settings", cfg.MonitoringHandler.UpdateSettings)
	monitoring.POST("/monitor-all", cfg.MonitoringHandler.MonitorAll)
	monitoring.GET("/teacher/:teacherId/feedbacks", cfg.MonitoringHandler.TeacherFeedbacks)

	return router
}
