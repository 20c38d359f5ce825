package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/services"
	"github.com/edunexa/educenter-backend/internal/types"
)

type TeacherHandler struct {
	teacherService services.TeacherService
}

func NewTeacherHandler(teacherService services.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherService: teacherService}
}

func (th *TeacherHandler) Create(c *gin.Context) {
	var req struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Subject  string `json:"subject"`
		UserID   string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	teacher := types.Teacher{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Subject:  req.Subject,
	}
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			RespondError(c, http.StatusBadRequest, err)
			return
		}
		teacher.UserID = &userID
	}
	created, err := th.teacherService.CreateTeacher(c.Request.Context(), &teacher)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondCreated(c, created)
}

func (th *TeacherHandler) Get(c *gin.Context) {
	teacherID, err := uuid.Parse(c.Param("teacherId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	teacher, err := th.teacherService.GetTeacher(c.Request.Context(), teacherID)
	if err != nil {
		RespondError(c, http.StatusNotFound, err)
		return
	}
	RespondOK(c, teacher)
}

func (th *TeacherHandler) List(c *gin.Context) {
	page, limit := PageParams(c)
	filter := repos.TeacherFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}
	teachers, total, err := th.teacherService.ListTeachers(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}
	RespondPage(c, teachers, total, page, limit)
}

func (th *TeacherHandler) Update(c *gin.Context) {
	teacherID, err := uuid.Parse(c.Param("teacherId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	var teacher types.Teacher
	if err := c.ShouldBindJSON(&teacher); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	teacher.ID = teacherID
	updated, err := th.teacherService.UpdateTeacher(c.Request.Context(), &teacher)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondOK(c, updated)
}

func (th *TeacherHandler) Deactivate(c *gin.Context) {
	teacherID, err := uuid.Parse(c.Param("teacherId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := th.teacherService.DeactivateTeacher(c.Request.Context(), teacherID); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondMessage(c, "teacher deactivated")
}
