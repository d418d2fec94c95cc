package scoring

import (
	"database/sql"
	"errors"
	"testing"

	"carbontrack/internal/database"
	"carbontrack/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

func setupScoringDB(t *testing.T) (*sql.DB, int, int) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal("Failed to open test database:", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatal("Failed to run migrations:", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatal("Failed to seed:", err)
	}

	user := &models.User{Email: "enc-email", Username: "enc-username", PasswordHash: "hash"}
	if _, err := database.CreateUser(db, user); err != nil {
		t.Fatal("Failed to create user:", err)
	}

	session, err := database.CreateSurveySession(db, user.ID)
	if err != nil {
		t.Fatal("Failed to create session:", err)
	}

	return db, user.ID, session.ID
}

// answerAllWithKey selects the option with the given key for every active
// question.
func answerAllWithKey(t *testing.T, db *sql.DB, userID, sessionID int, key string) {
	questions, err := database.GetActiveQuestions(db)
	if err != nil {
		t.Fatal("Failed to load questions:", err)
	}

	for _, q := range questions {
		options, err := database.GetOptionsByQuestion(db, q.ID)
		if err != nil {
			t.Fatal("Failed to load options:", err)
		}

		var optionID int
		for _, opt := range options {
			if opt.OptionKey == key {
				optionID = opt.ID
				break
			}
		}
		if optionID == 0 {
			t.Fatalf("Question %d has no option %s", q.ID, key)
		}

		answer := &models.Answer{
			UserID:     userID,
			QuestionID: q.ID,
			OptionID:   optionID,
			SessionID:  sessionID,
		}
		if _, err := database.SaveAnswer(db, answer); err != nil {
			t.Fatal("Failed to save answer:", err)
		}
	}
}

func TestCalculateLowestFootprint(t *testing.T) {
	db, userID, sessionID := setupScoringDB(t)

	// Option A is the lowest-impact choice of every question.
	answerAllWithKey(t, db, userID, sessionID, "A")

	result, err := Calculate(db, userID, sessionID)
	if err != nil {
		t.Fatal("Calculate failed:", err)
	}

	// Sums of the A options in the seeded reference data.
	if result.EnergyFootprint != 1080 {
		t.Errorf("Energy = %f, want 1080", result.EnergyFootprint)
	}
	if result.TransportFootprint != -50 {
		t.Errorf("Transport = %f, want -50", result.TransportFootprint)
	}
	if result.FoodFootprint != 650 {
		t.Errorf("Food = %f, want 650", result.FoodFootprint)
	}
	if result.DigitalFootprint != 140 {
		t.Errorf("Digital = %f, want 140", result.DigitalFootprint)
	}
	if result.ConsumptionFootprint != -10 {
		t.Errorf("Consumption = %f, want -10", result.ConsumptionFootprint)
	}

	if result.TotalCarbonFootprint != 1810 {
		t.Errorf("Total = %f, want 1810", result.TotalCarbonFootprint)
	}

	if result.UserID != userID {
		t.Errorf("Result carries user %d, want %d", result.UserID, userID)
	}
	if result.IsOffset {
		t.Error("Fresh result should not be flagged as offset")
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	db, userID, sessionID := setupScoringDB(t)
	answerAllWithKey(t, db, userID, sessionID, "B")

	first, err := Calculate(db, userID, sessionID)
	if err != nil {
		t.Fatal("Calculate failed:", err)
	}
	second, err := Calculate(db, userID, sessionID)
	if err != nil {
		t.Fatal("Calculate failed:", err)
	}

	if first.TotalCarbonFootprint != second.TotalCarbonFootprint {
		t.Errorf("Totals differ between runs: %f vs %f",
			first.TotalCarbonFootprint, second.TotalCarbonFootprint)
	}
}

func TestCalculateRejectsIncompleteSurvey(t *testing.T) {
	db, userID, sessionID := setupScoringDB(t)

	// Answer only the first question.
	options, err := database.GetOptionsByQuestion(db, 1)
	if err != nil {
		t.Fatal("Failed to load options:", err)
	}
	answer := &models.Answer{
		UserID:     userID,
		QuestionID: 1,
		OptionID:   options[0].ID,
		SessionID:  sessionID,
	}
	if _, err := database.SaveAnswer(db, answer); err != nil {
		t.Fatal("Failed to save answer:", err)
	}

	_, err = Calculate(db, userID, sessionID)
	if !errors.Is(err, ErrIncompleteSurvey) {
		t.Errorf("Expected ErrIncompleteSurvey, got %v", err)
	}
}

func TestTotalEqualsSumOfBuckets(t *testing.T) {
	db, userID, sessionID := setupScoringDB(t)
	answerAllWithKey(t, db, userID, sessionID, "C")

	result, err := Calculate(db, userID, sessionID)
	if err != nil {
		t.Fatal("Calculate failed:", err)
	}

	sum := result.EnergyFootprint +
		result.TransportFootprint +
		result.FoodFootprint +
		result.DigitalFootprint +
		result.ConsumptionFootprint

	if result.TotalCarbonFootprint != sum {
		t.Errorf("Total %f does not equal bucket sum %f", result.TotalCarbonFootprint, sum)
	}
}
