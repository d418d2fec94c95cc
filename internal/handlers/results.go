package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carbontrack/internal/database"
	"carbontrack/internal/logger"
	"carbontrack/internal/scoring"
)

type submitResultRequest struct {
	SessionID int `json:"session_id"`
}

// handleSubmitResult scores the attempt, stores the result and closes the
// session. A session that still has unanswered active questions is rejected
// without side effects.
func handleSubmitResult(c *gin.Context) {
	var req submitResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	db := getDB(c)
	user := getUser(c)

	if !sessionBelongsToUser(c, db, req.SessionID) {
		return
	}

	result, err := scoring.Calculate(db, user.ID, req.SessionID)
	if err != nil {
		if errors.Is(err, scoring.ErrIncompleteSurvey) {
			respondError(c, http.StatusBadRequest, "Survey is not complete yet")
			return
		}
		logger.Error("Failed to calculate result", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to calculate result")
		return
	}

	if _, err := database.SaveResult(db, result); err != nil {
		logger.Error("Failed to save result", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to save result")
		return
	}

	if err := database.CompleteSurveySession(db, req.SessionID); err != nil {
		logger.Error("Failed to complete session", "error", err, "sessionID", req.SessionID)
		respondError(c, http.StatusInternalServerError, "Failed to complete survey")
		return
	}

	logger.Info("Footprint calculated",
		"userID", user.ID,
		"total", result.TotalCarbonFootprint)

	respondOK(c, gin.H{"result": result})
}

func handleListResults(c *gin.Context) {
	results, err := database.GetResultsByUser(getDB(c), getUser(c).ID)
	if err != nil {
		logger.Error("Failed to load results", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to load results")
		return
	}

	respondOK(c, gin.H{"results": results})
}

func handleLatestResult(c *gin.Context) {
	result, err := database.GetLatestResult(getDB(c), getUser(c).ID)
	if err != nil {
		logger.Error("Failed to load latest result", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to load latest result")
		return
	}

	respondOK(c, gin.H{"result": result})
}
