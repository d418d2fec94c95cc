package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"carbontrack/internal/database"
	"carbontrack/internal/logger"
	"carbontrack/internal/models"
)

func handleCategories(c *gin.Context) {
	categories, err := database.GetCategories(getDB(c))
	if err != nil {
		logger.Error("Failed to load categories", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to load categories")
		return
	}

	respondOK(c, gin.H{"categories": categories})
}

type questionWithOptions struct {
	models.Question
	Options []models.QuestionOption `json:"options"`
}

func handleCategoryQuestions(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid category id")
		return
	}

	db := getDB(c)
	questions, err := database.GetQuestionsByCategory(db, categoryID)
	if err != nil {
		logger.Error("Failed to load questions", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to load questions")
		return
	}

	out := make([]questionWithOptions, 0, len(questions))
	for _, q := range questions {
		options, err := database.GetOptionsByQuestion(db, q.ID)
		if err != nil {
			logger.Error("Failed to load options", "error", err, "questionID", q.ID)
			respondError(c, http.StatusInternalServerError, "Failed to load questions")
			return
		}
		out = append(out, questionWithOptions{Question: q, Options: options})
	}

	respondOK(c, gin.H{"questions": out})
}

// handleStartSession returns the user's in-progress attempt if one exists,
// otherwise starts a new one. Answers given so far stay attached to the
// running attempt.
func handleStartSession(c *gin.Context) {
	db := getDB(c)
	user := getUser(c)

	session, err := database.GetActiveSurveySession(db, user.ID)
	if err != nil {
		logger.Error("Failed to check active session", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to start survey")
		return
	}
	if session != nil {
		respondOK(c, gin.H{"session": session, "resumed": true})
		return
	}

	session, err = database.CreateSurveySession(db, user.ID)
	if err != nil {
		logger.Error("Failed to create session", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to start survey")
		return
	}

	respondOK(c, gin.H{"session": session, "resumed": false})
}

func handleActiveSession(c *gin.Context) {
	session, err := database.GetActiveSurveySession(getDB(c), getUser(c).ID)
	if err != nil {
		logger.Error("Failed to load active session", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to load survey state")
		return
	}

	respondOK(c, gin.H{"session": session})
}

type sessionProgressRequest struct {
	CurrentCategoryIndex int `json:"current_category_index"`
}

func handleSessionProgress(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid session id")
		return
	}

	var req sessionProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	db := getDB(c)
	if !sessionBelongsToUser(c, db, sessionID) {
		return
	}

	if err := database.UpdateSurveySessionProgress(db, sessionID, req.CurrentCategoryIndex); err != nil {
		logger.Error("Failed to update session progress", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to save progress")
		return
	}

	respondOK(c, gin.H{})
}

type saveAnswerRequest struct {
	QuestionID int `json:"question_id"`
	OptionID   int `json:"option_id"`
	SessionID  int `json:"session_id"`
}

func handleSaveAnswer(c *gin.Context) {
	var req saveAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	db := getDB(c)
	user := getUser(c)

	if !sessionBelongsToUser(c, db, req.SessionID) {
		return
	}

	option, err := database.GetOptionByID(db, req.OptionID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Unknown option")
		return
	}
	if option.QuestionID != req.QuestionID {
		respondError(c, http.StatusBadRequest, "Option does not belong to this question")
		return
	}

	answer := &models.Answer{
		UserID:     user.ID,
		QuestionID: req.QuestionID,
		OptionID:   req.OptionID,
		SessionID:  req.SessionID,
	}
	if _, err := database.SaveAnswer(db, answer); err != nil {
		logger.Error("Failed to save answer", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to save answer")
		return
	}

	respondOK(c, gin.H{"answer": answer})
}

func handleSessionAnswers(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid session id")
		return
	}

	answers, err := database.GetAnswersBySession(getDB(c), getUser(c).ID, sessionID)
	if err != nil {
		logger.Error("Failed to load answers", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to load answers")
		return
	}

	respondOK(c, gin.H{"answers": answers})
}

// sessionBelongsToUser writes the error response itself and returns false
// unless sessionID is the caller's current in-progress attempt. Finished
// sessions and other users' sessions are rejected the same way.
func sessionBelongsToUser(c *gin.Context, db *sql.DB, sessionID int) bool {
	session, err := database.GetActiveSurveySession(db, getUser(c).ID)
	if err != nil {
		logger.Error("Failed to verify session", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to verify survey session")
		return false
	}
	if session == nil || session.ID != sessionID {
		respondError(c, http.StatusForbidden, "Not an active survey session")
		return false
	}
	return true
}
