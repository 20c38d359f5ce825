package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edunexa/educenter-backend/internal/services"
)

type EnrollmentHandler struct {
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

func (eh *EnrollmentHandler) Enroll(c *gin.Context) {
	var req struct {
		ClassID      string `json:"class_id"`
		StudentID    string `json:"student_id"`
		TuitionCents int64  `json:"tuition_cents"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	enrollment, err := eh.enrollmentService.Enroll(c.Request.Context(), classID, studentID, req.TuitionCents)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondCreated(c, enrollment)
}

func (eh *EnrollmentHandler) Withdraw(c *gin.Context) {
	enrollmentID, err := uuid.Parse(c.Param("enrollmentId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := eh.enrollmentService.Withdraw(c.Request.Context(), enrollmentID); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondMessage(c, "enrollment withdrawn")
}

func (eh *EnrollmentHandler) ListByClass(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("classId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	enrollments, err := eh.enrollmentService.ListByClass(c.Request.Context(), classID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}
	RespondOK(c, enrollments)
}

func (eh *EnrollmentHandler) ListByStudent(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("studentId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	enrollments, err := eh.enrollmentService.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}
	RespondOK(c, enrollments)
}
