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

type ClassHandler struct {
	classService services.ClassService
}

func NewClassHandler(classService services.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

func (ch *ClassHandler) Create(c *gin.Context) {
	var class types.Class
	if err := c.ShouldBindJSON(&class); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := ch.classService.CreateClass(c.Request.Context(), &class)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondCreated(c, created)
}

func (ch *ClassHandler) Get(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("classId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	class, err := ch.classService.GetClass(c.Request.Context(), classID)
	if err != nil {
		RespondError(c, http.StatusNotFound, err)
		return
	}
	RespondOK(c, class)
}

func (ch *ClassHandler) List(c *gin.Context) {
	page, limit := PageParams(c)
	filter := repos.ClassFilter{
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
	classes, total, err := ch.classService.ListClasses(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}
	RespondPage(c, classes, total, page, limit)
}

func (ch *ClassHandler) Update(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("classId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	var class types.Class
	if err := c.ShouldBindJSON(&class); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	class.ID = classID
	updated, err := ch.classService.UpdateClass(c.Request.Context(), &class)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondOK(c, updated)
}

func (ch *ClassHandler) Archive(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("classId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := ch.classService.ArchiveClass(c.Request.Context(), classID); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondMessage(c, "class archived")
}

func (ch *ClassHandler) CreateSession(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("classId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	var req struct {
		Room     string    `json:"room"`
		Topic    string    `json:"topic"`
		StartsAt time.Time `json:"starts_at"`
		EndsAt   time.Time `json:"ends_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	session := types.ClassSession{
		ClassID:  classID,
		Room:     req.Room,
		Topic:    req.Topic,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}
	created, err := ch.classService.CreateSession(c.Request.Context(), &session)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondCreated(c, created)
}

func (ch *ClassHandler) CancelSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := ch.classService.CancelSession(c.Request.Context(), sessionID); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondMessage(c, "session cancelled")
}
