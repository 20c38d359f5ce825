package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/services"
	"github.com/edunexa/educenter-backend/internal/types"
)

type FeedbackHandler struct {
	feedbackService services.FeedbackService
}

func NewFeedbackHandler(feedbackService services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (fh *FeedbackHandler) Submit(c *gin.Context) {
	var req struct {
		TeacherID   string         `json:"teacher_id"`
		ClassID     string         `json:"class_id"`
		StudentID   string         `json:"student_id"`
		Rating      int            `json:"rating"`
		Comment     string         `json:"comment"`
		Categories  datatypes.JSON `json:"categories"`
		IsAnonymous bool           `json:"is_anonymous"`
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
	feedback := types.Feedback{
		TeacherID:   teacherID,
		Rating:      req.Rating,
		Comment:     req.Comment,
		Categories:  req.Categories,
		IsAnonymous: req.IsAnonymous,
	}
	if req.ClassID != "" {
		classID, err := uuid.Parse(req.ClassID)
		if err != nil {
			RespondError(c, http.StatusBadRequest, err)
			return
		}
		feedback.ClassID = &classID
	}
	if req.StudentID != "" {
		studentID, err := uuid.Parse(req.StudentID)
		if err != nil {
			RespondError(c, http.StatusBadRequest, err)
			return
		}
		feedback.StudentID = &studentID
	}
	created, err := fh.feedbackService.Submit(c.Request.Context(), &feedback)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondCreated(c, created)
}

func (fh *FeedbackHandler) List(c *gin.Context) {
	page, limit := PageParams(c)
	filter := repos.FeedbackFilter{Page: page, Limit: limit}
	if tid := c.Query("teacherId"); tid != "" {
		teacherID, err := uuid.Parse(tid)
		if err != nil {
			RespondError(c, http.StatusBadRequest, err)
			return
		}
		filter.TeacherID = &teacherID
	}
	if cid := c.Query("classId"); cid != "" {
		classID, err := uuid.Parse(cid)
		if err != nil {
			RespondError(c, http.StatusBadRequest, err)
			return
		}
		filter.ClassID = &classID
	}
	feedbacks, total, err := fh.feedbackService.List(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}
	RespondPage(c, feedbacks, total, page, limit)
}

// IngestAnalysis receives the result of the external sentiment worker.
func (fh *FeedbackHandler) IngestAnalysis(c *gin.Context) {
	feedbackID, err := uuid.Parse(c.Param("feedbackId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	var analysis types.FeedbackAnalysis
	if err := c.ShouldBindJSON(&analysis); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	analysis.FeedbackID = feedbackID
	if err := fh.feedbackService.IngestAnalysis(c.Request.Context(), &analysis); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondMessage(c, "analysis stored")
}
