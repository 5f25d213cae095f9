package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pomodoroclock/backend/internal/errors"
	"pomodoroclock/backend/internal/middleware"
	"pomodoroclock/backend/internal/model"
	"pomodoroclock/backend/internal/service"
)

type UserHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

type createUserRequest struct {
	registerRequest
	IsAdmin *bool `json:"isAdmin"`
}

type updateUserRequest struct {
	Password  *string `json:"password" binding:"omitempty,min=5,max=72"`
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=30"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,max=30"`
	Email     *string `json:"email" binding:"omitempty,email,max=60"`
	Avatar    *string `json:"avatar" binding:"omitempty,max=255"`
	IsAdmin   *bool   `json:"isAdmin"`
}

func NewUserHandler(authService *service.AuthService, userService *service.UserService) *UserHandler {
	return &UserHandler{authService: authService, userService: userService}
}

// Create lets an admin add a user, possibly another admin: {user, token}.
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}

	input := req.toModel()
	if req.IsAdmin != nil {
		input.IsAdmin = *req.IsAdmin
	}

	result, apiErr := h.authService.CreateUser(c.Request.Context(), input)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *UserHandler) List(c *gin.Context) {
	users, apiErr := h.userService.FindAll(c.Request.Context(), c.Query("nameLike"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) Get(c *gin.Context) {
	user, apiErr := h.userService.Get(c.Request.Context(), c.Param("username"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Update applies a partial profile change. Only admins may touch isAdmin.
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.IsAdmin != nil && !middleware.Claims(c).IsAdmin {
		writeError(c, apperrors.Forbidden("only admins may change isAdmin"))
		return
	}

	user, apiErr := h.userService.Update(c.Request.Context(), c.Param("username"), model.UserPatch{
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Avatar:    req.Avatar,
		IsAdmin:   req.IsAdmin,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) IncrementPomodoros(c *gin.Context) {
	user, apiErr := h.userService.IncrementPomodoros(c.Request.Context(), c.Param("username"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) Delete(c *gin.Context) {
	username := c.Param("username")
	if apiErr := h.userService.Remove(c.Request.Context(), username); apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": username})
}
