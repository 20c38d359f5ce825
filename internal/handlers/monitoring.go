package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/requestdata"
	"github.com/edunexa/educenter-backend/internal/services"
	"github.com/edunexa/educenter-backend/internal/types"
)

type MonitoringHandler struct {
	monitoringService services.MonitoringService
	settingsService   services.SettingsService
}

func NewMonitoringHandler(monitoringService services.MonitoringService, settingsService services.SettingsService) *MonitoringHandler {
	return &MonitoringHandler{
		monitoringService: monitoringService,
		settingsService:   settingsService,
	}
}

// CheckTeacher runs a one-off threshold evaluation for a teacher. The
// optional classId and periodDays query parameters narrow the window;
// the call never creates a transfer request.
func (mh *MonitoringHandler) CheckTeacher(c *gin.Context) {
	teacherID, err := uuid.Parse(c.Param("teacherId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	opts := services.EvaluateOptions{}
	if cid := c.Query("classId"); cid != "" {
		classID, err := uuid.Parse(cid)
		if err != nil {
			RespondError(c, http.StatusBadRequest, err)
			return
		}
		opts.ClassID = &classID
	}
	if pd := c.Query("periodDays"); pd != "" {
		periodDays, err := strconv.Atoi(pd)
		if err != nil || periodDays < 1 {
			RespondError(c, http.StatusBadRequest, err)
			return
		}
		opts.PeriodDays = periodDays
	}
	result, err := mh.monitoringService.EvaluateTeacher(c.Request.Context(), teacherID, opts)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}
	RespondOK(c, result)
}

func (mh *MonitoringHandler) TeachersAtRisk(c *gin.Context) {
	page, limit := PageParams(c)
	flagged, total, err := mh.monitoringService.TeachersAtRisk(c.Request.Context(), page, limit)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}
	RespondPage(c, flagged, total, page, limit)
}

func (mh *MonitoringHandler) GetSettings(c *gin.Context) {
	cfg, err := mh.settingsService.GetTransferThresholds(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}
	RespondOK(c, cfg)
}

func (mh *MonitoringHandler) UpdateSettings(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "missing caller identity"})
		return
	}
	var cfg types.ThresholdConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := mh.settingsService.UpdateTransferThresholds(c.Request.Context(), cfg, rd.UserID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondOK(c, updated)
}

func (mh *MonitoringHandler) MonitorAll(c *gin.Context) {
	summary, err := mh.monitoringService.MonitorAll(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}
	RespondOK(c, summary)
}

// TeacherFeedbacks lets an admin review the raw feedback rows behind a
// teacher's metrics, with the current threshold decision attached.
func (mh *MonitoringHandler) TeacherFeedbacks(c *gin.Context) {
	teacherID, err := uuid.Parse(c.Param("teacherId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	page, limit := PageParams(c)
	filter := repos.FeedbackFilter{Page: page, Limit: limit}
	if cid := c.Query("classId"); cid != "" {
		classID, err := uuid.Parse(cid)
		if err != nil {
			RespondError(c, http.StatusBadRequest, err)
			return
		}
		filter.ClassID = &classID
	}
	review, err := mh.monitoringService.TeacherFeedbacks(c.Request.Context(), teacherID, filter)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}
	RespondPage(c, review, review.Total, page, limit)
}
