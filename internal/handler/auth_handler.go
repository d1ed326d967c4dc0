package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"maktab/internal/middleware"
	"maktab/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService          service.AuthService
	userService          service.UserService
	passwordResetService service.PasswordResetService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, userService service.UserService, passwordResetService service.PasswordResetService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService, passwordResetService: passwordResetService}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), input, c.ClientIP())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Logout handles POST /api/v1/auth/logout. Tokens are stateless, so the
// server has nothing to revoke; the client discards its token.
func (h *AuthHandler) Logout(c *gin.Context) {
	RespondOK(c, gin.H{"message": "logged out"})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// ChangePassword handles POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	var input service.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, input); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "password changed successfully"})
}

// ForgotPassword handles POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input service.ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.passwordResetService.ForgotPassword(c.Request.Context(), input); err != nil {
		// Never leak information about account existence
		log.Printf("forgot-password internal error: %v", err)
	}

	RespondOK(c, gin.H{"message": "if the account exists, a password reset link has been sent to its email"})
}

// ResetPassword handles POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input service.ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.passwordResetService.ResetPassword(c.Request.Context(), input); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "password has been reset successfully"})
}
