package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edunexa/educenter-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	profile, err := uh.userService.GetMe(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusNotFound, err)
		return
	}
	RespondOK(c, profile)
}
