// Package scoring turns a completed survey attempt into a footprint result.
// Every selected option contributes its signed carbon value (kg CO2/year) to
// the bucket of the category its question belongs to; the total is the plain
// sum of the five buckets. Negative contributions (car-sharing, recycling)
// reduce the bucket and the total and are never clamped.
package scoring

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carbontrack/internal/database"
	"carbontrack/internal/models"
)

// ErrIncompleteSurvey is returned when at least one active question has no
// answer in the session. Partial attempts never produce a result.
var ErrIncompleteSurvey = errors.New("survey is not complete")

// Category order positions in the seeded reference data. Attribution follows
// each question's category_id through the category's order_index, so adding
// or moving questions never silently shifts values between buckets.
const (
	bucketEnergy = iota + 1
	bucketTransport
	bucketFood
	bucketDigital
	bucketConsumption
)

// Calculate scores one survey attempt and returns an unsaved Result. It
// fails with ErrIncompleteSurvey unless every active question has an answer
// in the session.
func Calculate(db *sql.DB, userID, sessionID int) (*models.Result, error) {
	categories, err := database.GetCategories(db)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	orderByCategory := make(map[int]int, len(categories))
	for _, c := range categories {
		orderByCategory[c.ID] = c.OrderIndex
	}

	questions, err := database.GetActiveQuestions(db)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	categoryByQuestion := make(map[int]int, len(questions))
	for _, q := range questions {
		categoryByQuestion[q.ID] = q.CategoryID
	}

	answers, err := database.GetAnswersBySession(db, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}
	optionByQuestion := make(map[int]int, len(answers))
	for _, a := range answers {
		optionByQuestion[a.QuestionID] = a.OptionID
	}

	for _, q := range questions {
		if _, ok := optionByQuestion[q.ID]; !ok {
			return nil, ErrIncompleteSurvey
		}
	}

	buckets := make(map[int]float64, len(categories))
	for _, q := range questions {
		option, err := database.GetOptionByID(db, optionByQuestion[q.ID])
		if err != nil {
			return nil, fmt.Errorf("failed to load option for question %d: %w", q.ID, err)
		}
		if option.QuestionID != q.ID {
			return nil, fmt.Errorf("answer for question %d selects option %d of question %d",
				q.ID, option.ID, option.QuestionID)
		}

		order, ok := orderByCategory[categoryByQuestion[q.ID]]
		if !ok {
			return nil, fmt.Errorf("question %d references unknown category %d", q.ID, q.CategoryID)
		}
		buckets[order] += float64(option.CarbonValue)
	}

	result := &models.Result{
		UserID:               userID,
		CalculationDate:      time.Now(),
		EnergyFootprint:      buckets[bucketEnergy],
		TransportFootprint:   buckets[bucketTransport],
		FoodFootprint:        buckets[bucketFood],
		DigitalFootprint:     buckets[bucketDigital],
		ConsumptionFootprint: buckets[bucketConsumption],
	}
	result.TotalCarbonFootprint = result.EnergyFootprint +
		result.TransportFootprint +
		result.FoodFootprint +
		result.DigitalFootprint +
		result.ConsumptionFootprint

	return result, nil
}
