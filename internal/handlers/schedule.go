package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edunexa/educenter-backend/internal/services"
)

type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(scheduleService services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// View serves /schedule?view=week&date=2026-09-01 with optional
// classId and teacherId filters.
func (sh *ScheduleHandler) View(c *gin.Context) {
	view := c.DefaultQuery("view", services.ScheduleViewWeek)

	anchor := time.Now()
	if date := c.Query("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			RespondError(c, http.StatusBadRequest, err)
			return
		}
		anchor = parsed
	}

	var classID, teacherID *uuid.UUID
	if cid := c.Query("classId"); cid != "" {
		parsed, err := uuid.Parse(cid)
		if err != nil {
			RespondError(c, http.StatusBadRequest, err)
			return
		}
		classID = &parsed
	}
	if tid := c.Query("teacherId"); tid != "" {
		parsed, err := uuid.Parse(tid)
		if err != nil {
			RespondError(c, http.StatusBadRequest, err)
			return
		}
		teacherID = &parsed
	}

	window, err := sh.scheduleService.View(c.Request.Context(), view, anchor, classID, teacherID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondOK(c, window)
}
