package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/services"
)

type TransferHandler struct {
	transferService services.TransferService
}

func NewTransferHandler(transferService services.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

func (th *TransferHandler) Create(c *gin.Context) {
	var req struct {
		TeacherID string `json:"teacher_id"`
		Reason    string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	teacherID, err := uuid.Parse(req.TeacherID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	request, err := th.transferService.CreateManual(c.Request.Context(), teacherID, req.Reason)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondCreated(c, request)
}

func (th *TransferHandler) List(c *gin.Context) {
	page, limit := PageParams(c)
	filter := repos.TransferRequestFilter{
		Status: c.Query("status"),
		Source: c.Query("source"),
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
	requests, total, err := th.transferService.List(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}
	RespondPage(c, requests, total, page, limit)
}

func (th *TransferHandler) Decide(c *gin.Context) {
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
	if err := th.transferService.Decide(c.Request.Context(), requestID, req.Approve, req.Note); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondMessage(c, "transfer request decided")
}
