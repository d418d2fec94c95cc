package database

import (
	"database/sql"
	"fmt"
	"time"

	"carbontrack/internal/models"
)

// CreateSurveySession starts a new survey attempt. One active session per
// user is expected at a time but not enforced here; callers should check
// GetActiveSurveySession first.
func CreateSurveySession(db *sql.DB, userID int) (*models.SurveySession, error) {
	session := &models.SurveySession{
		UserID:    userID,
		StartedAt: time.Now(),
	}

	query := `
		INSERT INTO survey_sessions (user_id, started_at, current_category_index, is_complete)
		VALUES (?, ?, 0, FALSE)
	`

	res, err := db.Exec(query, session.UserID, session.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create survey session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get session ID: %w", err)
	}

	session.ID = int(id)
	return session, nil
}

// GetActiveSurveySession returns the user's in-progress session, or nil when
// every attempt is complete.
func GetActiveSurveySession(db *sql.DB, userID int) (*models.SurveySession, error) {
	session := &models.SurveySession{}
	var completedAt sql.NullTime

	query := `
		SELECT id, user_id, started_at, completed_at, current_category_index, is_complete
		FROM survey_sessions
		WHERE user_id = ? AND is_complete = FALSE
		ORDER BY started_at DESC
		LIMIT 1
	`

	err := db.QueryRow(query, userID).Scan(
		&session.ID,
		&session.UserID,
		&session.StartedAt,
		&completedAt,
		&session.CurrentCategoryIndex,
		&session.IsComplete,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query active session: %w", err)
	}

	if completedAt.Valid {
		t := completedAt.Time
		session.CompletedAt = &t
	}

	return session, nil
}

// UpdateSurveySessionProgress records how far into the category list the
// user has moved.
func UpdateSurveySessionProgress(db *sql.DB, sessionID, categoryIndex int) error {
	query := `UPDATE survey_sessions SET current_category_index = ? WHERE id = ?`
	_, err := db.Exec(query, categoryIndex, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update session progress: %w", err)
	}
	return nil
}

// CompleteSurveySession closes the attempt after its result is stored.
func CompleteSurveySession(db *sql.DB, sessionID int) error {
	query := `UPDATE survey_sessions SET completed_at = ?, is_complete = TRUE WHERE id = ?`
	_, err := db.Exec(query, time.Now(), sessionID)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	return nil
}
