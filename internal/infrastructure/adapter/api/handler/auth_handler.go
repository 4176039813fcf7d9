package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/api/dto"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/api/middleware"
)

// AuthHandler handles registration and login HTTP requests
type AuthHandler struct {
	authService usecase.AuthUseCase
	logger      coreport.Logger
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(authService usecase.AuthUseCase, logger coreport.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// userToResponse maps a user entity to its API representation
func userToResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		UUID:      user.UUID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// Register handles the POST /auth/register endpoint
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), usecase.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Token: result.Token,
		User:  userToResponse(result.User),
	})
}

// Login handles the POST /auth/login endpoint
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token: result.Token,
		User:  userToResponse(result.User),
	})
}

// SetBanned handles the PUT /admin/users/:id/ban endpoint
func (h *AuthHandler) SetBanned(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.authService.SetBanned(c.Request.Context(), userID, *req.Banned); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteUser handles the DELETE /admin/users/:id endpoint
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor, _ := middleware.CurrentUser(c)

	if err := h.authService.DeleteUser(c.Request.Context(), actor.ID, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Me handles the GET /me endpoint
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}
