package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/services"
)

type LeaveHandler struct {
	leaveService services.LeaveService
}

func NewLeaveHandler(leaveService services.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

func (lh *LeaveHandler) Submit(c *gin.Context) {
	var req struct {
		StudentID string `json:"student_id"`
		SessionID string `json:"session_id"`
		Reason    string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	request, err := lh.leaveService.Submit(c.Request.Context(), studentID, sessionID, req.Reason)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondCreated(c, request)
}

func (lh *LeaveHandler) List(c *gin.Context) {
	page, limit := PageParams(c)
	filter := repos.LeaveRequestFilter{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}
	if sid := c.Query("studentId"); sid != "" {
		studentID, err := uuid.Parse(sid)
		if err != nil {
			RespondError(c, http.StatusBadRequest, err)
			return
		}
		filter.StudentID = &studentID
	}
	requests, total, err := lh.leaveService.List(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}
	RespondPage(c, requests, total, page, limit)
}

func (lh *LeaveHandler) Decide(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	var req struct {
		Approve bool   `json:"approve"`
		Note    string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := lh.leaveService.Decide(c.Request.Context(), requestID, req.Approve, req.Note); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondMessage(c, "leave request decided")
}
