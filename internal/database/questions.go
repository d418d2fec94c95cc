package database

import (
	"database/sql"
	"fmt"

	"carbontrack/internal/models"
)

// GetCategories returns the question categories in presentation order.
func GetCategories(db *sql.DB) ([]models.QuestionCategory, error) {
	query := `
		SELECT id, name, description, icon, order_index
		FROM question_categories
		ORDER BY order_index
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.QuestionCategory
	for rows.Next() {
		var cat models.QuestionCategory
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description, &cat.Icon, &cat.OrderIndex); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

func CountCategories(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM question_categories`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

// GetQuestionsByCategory returns the active questions of one category.
func GetQuestionsByCategory(db *sql.DB, categoryID int) ([]models.Question, error) {
	query := `
		SELECT id, category_id, question_text, question_type, help_text, is_active
		FROM questions
		WHERE category_id = ? AND is_active = TRUE
		ORDER BY id
	`

	return queryQuestions(db, query, categoryID)
}

// GetActiveQuestions returns every active question across all categories.
func GetActiveQuestions(db *sql.DB) ([]models.Question, error) {
	query := `
		SELECT id, category_id, question_text, question_type, help_text, is_active
		FROM questions
		WHERE is_active = TRUE
		ORDER BY id
	`

	return queryQuestions(db, query)
}

func queryQuestions(db *sql.DB, query string, args ...interface{}) ([]models.Question, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.CategoryID, &q.QuestionText, &q.QuestionType, &q.HelpText, &q.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions: %w", err)
	}

	return questions, nil
}

// GetOptionsByQuestion returns a question's options in presentation order.
func GetOptionsByQuestion(db *sql.DB, questionID int) ([]models.QuestionOption, error) {
	query := `
		SELECT id, question_id, option_key, option_text, carbon_value, order_index, description
		FROM question_options
		WHERE question_id = ?
		ORDER BY order_index
	`

	rows, err := db.Query(query, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	var options []models.QuestionOption
	for rows.Next() {
		var opt models.QuestionOption
		if err := rows.Scan(&opt.ID, &opt.QuestionID, &opt.OptionKey, &opt.OptionText,
			&opt.CarbonValue, &opt.OrderIndex, &opt.Description); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate options: %w", err)
	}

	return options, nil
}

func GetOptionByID(db *sql.DB, optionID int) (*models.QuestionOption, error) {
	opt := &models.QuestionOption{}
	query := `
		SELECT id, question_id, option_key, option_text, carbon_value, order_index, description
		FROM question_options
		WHERE id = ?
	`

	err := db.QueryRow(query, optionID).Scan(&opt.ID, &opt.QuestionID, &opt.OptionKey,
		&opt.OptionText, &opt.CarbonValue, &opt.OrderIndex, &opt.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("option not found")
		}
		return nil, fmt.Errorf("failed to query option: %w", err)
	}

	return opt, nil
}
