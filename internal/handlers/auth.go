package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"carbontrack/internal/auth"
	"carbontrack/internal/logger"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	if !emailRegex.MatchString(req.Email) {
		respondError(c, http.StatusBadRequest, "Please enter a valid email address")
		return
	}
	if len(req.Username) < 3 || len(req.Username) > 30 {
		respondError(c, http.StatusBadRequest, "Username must be between 3 and 30 characters")
		return
	}
	if len(req.Password) < 8 {
		respondError(c, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	user, err := getAuth(c).Register(req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			respondError(c, http.StatusConflict, "An account with this email already exists")
			return
		}
		logger.Error("Registration failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	respondOK(c, gin.H{"user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := getAuth(c).Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			respondError(c, http.StatusUnauthorized, "No account found for this email")
		case errors.Is(err, auth.ErrWrongPassword):
			respondError(c, http.StatusUnauthorized, "Wrong password")
		default:
			logger.Error("Login failed", "error", err)
			respondError(c, http.StatusInternalServerError, "Failed to log in")
		}
		return
	}

	respondOK(c, gin.H{"user": user})
}

func handleLogout(c *gin.Context) {
	if err := getAuth(c).Logout(); err != nil {
		logger.Error("Logout failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to log out")
		return
	}
	respondOK(c, gin.H{})
}

func handleMe(c *gin.Context) {
	manager := getAuth(c)
	respondOK(c, gin.H{
		"user":    manager.CurrentUser(),
		"profile": manager.CurrentProfile(),
	})
}

type resetRequestRequest struct {
	Email string `json:"email"`
}

// handleRequestPasswordReset reports success whether or not the email is
// known, so the endpoint cannot be used to probe for accounts.
func handleRequestPasswordReset(c *gin.Context) {
	var req resetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := getAuth(c).RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		logger.Error("Password reset request failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to process reset request")
		return
	}

	respondOK(c, gin.H{"message": "If the email is registered, a reset link has been sent"})
}

type resetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func handleResetPassword(c *gin.Context) {
	var req resetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Password) < 8 {
		respondError(c, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	err := getAuth(c).ResetPassword(req.Token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidResetToken):
			respondError(c, http.StatusBadRequest, "Invalid reset token")
		case errors.Is(err, auth.ErrResetTokenExpired):
			respondError(c, http.StatusBadRequest, "Reset token has expired")
		default:
			logger.Error("Password reset failed", "error", err)
			respondError(c, http.StatusInternalServerError, "Failed to reset password")
		}
		return
	}

	respondOK(c, gin.H{"message": "Password has been reset"})
}
