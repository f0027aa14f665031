package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopflow/internal/application/service"
	"github.com/sangkips/shopflow/internal/presentation/http/dto/request"
	"github.com/sangkips/shopflow/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles user login
// @Summary Login
// @Description Log in as one of the shop accounts and return a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Username"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"user":         output.User,
		"capabilities": output.Capabilities,
		"access_token": output.AccessToken,
		"token_type":   "Bearer",
	})
}

// Logout ends the current session
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Logout successful", nil)
}

// Me returns the logged-in user
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := GetUser(c)
	if user == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	response.OK(c, "User retrieved successfully", gin.H{
		"user":         user,
		"capabilities": user.Role.Capabilities(),
	})
}
