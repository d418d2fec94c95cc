package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carbontrack/internal/logger"
	"carbontrack/internal/models"
)

type updateProfileRequest struct {
	FullName      string `json:"full_name"`
	BirthDate     string `json:"birth_date"` // YYYY-MM-DD, optional
	Country       string `json:"country"`
	City          string `json:"city"`
	HouseholdSize int    `json:"household_size"`
	IncomeLevel   string `json:"income_level"`
}

func handleUpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.HouseholdSize < 1 {
		respondError(c, http.StatusBadRequest, "Household size must be at least 1")
		return
	}
	switch req.IncomeLevel {
	case models.IncomeLow, models.IncomeMedium, models.IncomeHigh:
	default:
		respondError(c, http.StatusBadRequest, "Income level must be low, medium or high")
		return
	}

	profile := &models.Profile{
		FullName:      req.FullName,
		Country:       req.Country,
		City:          req.City,
		HouseholdSize: req.HouseholdSize,
		IncomeLevel:   req.IncomeLevel,
	}

	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Birth date must be YYYY-MM-DD")
			return
		}
		profile.BirthDate = &birthDate
	}

	manager := getAuth(c)
	if err := manager.UpdateProfile(profile); err != nil {
		logger.Error("Profile update failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	respondOK(c, gin.H{"profile": manager.CurrentProfile()})
}

type updatePictureRequest struct {
	Image string `json:"image"`
}

func handleUpdateProfilePicture(c *gin.Context) {
	var req updatePictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := getAuth(c).UpdateProfilePicture(req.Image); err != nil {
		logger.Error("Profile picture update failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to update profile picture")
		return
	}

	respondOK(c, gin.H{})
}
