package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/services"
	"github.com/edunexa/educenter-backend/internal/types"
)

type SessionChangeHandler struct {
	sessionChangeService services.SessionChangeService
}

func NewSessionChangeHandler(sessionChangeService services.SessionChangeService) *SessionChangeHandler {
	return &SessionChangeHandler{sessionChangeService: sessionChangeService}
}

func (sch *SessionChangeHandler) Submit(c *gin.Context) {
	var req struct {
		SessionID        string    `json:"session_id"`
		ProposedStartsAt time.Time `json:"proposed_starts_at"`
		ProposedEndsAt   time.Time `json:"proposed_ends_at"`
		Reason           string    `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	request := types.SessionChangeRequest{
		ClassSessionID:   sessionID,
		ProposedStartsAt: req.ProposedStartsAt,
		ProposedEndsAt:   req.ProposedEndsAt,
		Reason:           req.Reason,
	}
	created, err := sch.sessionChangeService.Submit(c.Request.Context(), &request)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondCreated(c, created)
}

func (sch *SessionChangeHandler) List(c *gin.Context) {
	page, limit := PageParams(c)
	filter := repos.SessionChangeFilter{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}
	if tid := c.Query("teacherId"); tid != "" {
		teacherID, err := uuid.Parse(tid)
		if err != nil {
			RespondError(c, http.StatusBadRequest, err)
			return
		}
		filter.TeacherID = &teacherID
	}
	requests, total, err := sch.sessionChangeService.List(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}
	RespondPage(c, requests, total, page, limit)
}

func (sch *SessionChangeHandler) Decide(c *gin.Context) {
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
	if err := sch.sessionChangeService.Decide(c.Request.Context(), requestID, req.Approve, req.Note); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondMessage(c, "session change request decided")
}
