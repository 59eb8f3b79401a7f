package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prevenio/prevenio-backend/internal/services"
	"github.com/prevenio/prevenio-backend/internal/types"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	user, err := uh.userService.GetMe(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondOK(c, user)
}

func (uh *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	role, err := types.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user := types.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	}
	created, err := uh.userService.CreateUser(c.Request.Context(), &user)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondCreated(c, created)
}

func (uh *UserHandler) ListSupervisors(c *gin.Context) {
	supervisors, err := uh.userService.ListSupervisors(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondOK(c, supervisors)
}

func (uh *UserHandler) AssignSupervisor(c *gin.Context) {
	var req struct {
		SupervisorID    string `json:"supervisor_id"`
		PreventionistID string `json:"preventionist_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	supervisorID, err := uuid.Parse(req.SupervisorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supervisor_id"})
		return
	}
	preventionistID, err := uuid.Parse(req.PreventionistID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preventionist_id"})
		return
	}
	assignment, err := uh.userService.AssignSupervisor(c.Request.Context(), supervisorID, preventionistID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondOK(c, assignment)
}
