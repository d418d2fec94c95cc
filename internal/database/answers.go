package database

import (
	"database/sql"
	"fmt"
	"time"

	"carbontrack/internal/models"
)

// SaveAnswer upserts by (user, question, session): a later selection for the
// same question in the same survey attempt replaces the earlier one. The
// UNIQUE index on the triple backstops the check-then-write.
func SaveAnswer(db *sql.DB, answer *models.Answer) (int, error) {
	answer.AnsweredAt = time.Now()

	var existingID int
	err := db.QueryRow(
		`SELECT id FROM answers WHERE user_id = ? AND question_id = ? AND session_id = ?`,
		answer.UserID, answer.QuestionID, answer.SessionID,
	).Scan(&existingID)

	switch {
	case err == sql.ErrNoRows:
		result, err := db.Exec(
			`INSERT INTO answers (user_id, question_id, option_id, session_id, answered_at)
			 VALUES (?, ?, ?, ?, ?)`,
			answer.UserID, answer.QuestionID, answer.OptionID, answer.SessionID, answer.AnsweredAt,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert answer: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get answer ID: %w", err)
		}
		answer.ID = int(id)
		return answer.ID, nil

	case err != nil:
		return 0, fmt.Errorf("failed to look up answer: %w", err)

	default:
		_, err := db.Exec(
			`UPDATE answers SET option_id = ?, answered_at = ? WHERE id = ?`,
			answer.OptionID, answer.AnsweredAt, existingID,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to update answer: %w", err)
		}
		answer.ID = existingID
		return existingID, nil
	}
}

// GetAnswersBySession returns a user's answers for one survey attempt.
func GetAnswersBySession(db *sql.DB, userID, sessionID int) ([]models.Answer, error) {
	query := `
		SELECT id, user_id, question_id, option_id, session_id, answered_at
		FROM answers
		WHERE user_id = ? AND session_id = ?
		ORDER BY question_id
	`

	rows, err := db.Query(query, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	var answers []models.Answer
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuestionID, &a.OptionID, &a.SessionID, &a.AnsweredAt); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate answers: %w", err)
	}

	return answers, nil
}
