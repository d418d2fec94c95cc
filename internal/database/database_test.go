package database

import (
	"database/sql"
	"testing"
	"time"

	"carbontrack/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal("Failed to open test database:", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatal("Failed to run migrations:", err)
	}

	return db
}

func createTestUser(t *testing.T, db *sql.DB) *models.User {
	user := &models.User{
		Email:        "ciphertext-email",
		Username:     "ciphertext-username",
		PasswordHash: "hash",
	}
	if _, err := CreateUser(db, user); err != nil {
		t.Fatal("Failed to create test user:", err)
	}
	return user
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := Seed(db); err != nil {
		t.Fatal("First seed failed:", err)
	}
	if err := Seed(db); err != nil {
		t.Fatal("Second seed failed:", err)
	}

	count, err := CountCategories(db)
	if err != nil {
		t.Fatal("Failed to count categories:", err)
	}
	if count != 5 {
		t.Errorf("Expected 5 categories after double seed, got %d", count)
	}

	questions, err := GetActiveQuestions(db)
	if err != nil {
		t.Fatal("Failed to load questions:", err)
	}
	if len(questions) != 24 {
		t.Errorf("Expected 24 questions, got %d", len(questions))
	}
}

func TestSeedOptionsCarrySignedValues(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := Seed(db); err != nil {
		t.Fatal("Failed to seed:", err)
	}

	// Car-sharing question: the regular-use option reduces the footprint.
	options, err := GetOptionsByQuestion(db, 10)
	if err != nil {
		t.Fatal("Failed to load options:", err)
	}
	if len(options) == 0 {
		t.Fatal("Question 10 has no options")
	}
	if options[0].OptionKey != "A" || options[0].CarbonValue != -200 {
		t.Errorf("Expected option A with value -200, got %s with %d",
			options[0].OptionKey, options[0].CarbonValue)
	}
}

func TestUserRoundTripAndResetToken(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := createTestUser(t, db)

	loaded, err := GetUserByID(db, user.ID)
	if err != nil {
		t.Fatal("Failed to load user:", err)
	}
	if loaded.Email != "ciphertext-email" {
		t.Errorf("Stored email changed: %q", loaded.Email)
	}
	if loaded.ResetToken != nil || loaded.ResetTokenExpiry != nil {
		t.Error("Fresh user should have no reset token")
	}

	expiry := time.Now().Add(time.Hour)
	if err := SetUserResetToken(db, user.ID, "token-123", expiry); err != nil {
		t.Fatal("Failed to set reset token:", err)
	}

	byToken, err := GetUserByResetToken(db, "token-123")
	if err != nil {
		t.Fatal("Failed to find user by reset token:", err)
	}
	if byToken.ID != user.ID {
		t.Errorf("Expected user %d, got %d", user.ID, byToken.ID)
	}

	if err := ClearUserResetToken(db, user.ID); err != nil {
		t.Fatal("Failed to clear reset token:", err)
	}
	if _, err := GetUserByResetToken(db, "token-123"); err == nil {
		t.Error("Cleared token should not resolve to a user")
	}
}

func TestProfileCreateAndUpdate(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := createTestUser(t, db)

	profile := &models.Profile{
		UserID:        user.ID,
		Country:       "enc-country",
		HouseholdSize: 1,
		IncomeLevel:   models.IncomeMedium,
	}
	if _, err := CreateProfile(db, profile); err != nil {
		t.Fatal("Failed to create profile:", err)
	}

	profile.City = "enc-city"
	profile.HouseholdSize = 4
	if err := UpdateProfile(db, user.ID, profile); err != nil {
		t.Fatal("Failed to update profile:", err)
	}

	loaded, err := GetProfileByUserID(db, user.ID)
	if err != nil {
		t.Fatal("Failed to load profile:", err)
	}
	if loaded.City != "enc-city" || loaded.HouseholdSize != 4 {
		t.Errorf("Update not persisted: city=%q householdSize=%d", loaded.City, loaded.HouseholdSize)
	}
}

func TestAnswerUpsert(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := Seed(db); err != nil {
		t.Fatal("Failed to seed:", err)
	}
	user := createTestUser(t, db)

	session, err := CreateSurveySession(db, user.ID)
	if err != nil {
		t.Fatal("Failed to create session:", err)
	}

	options, err := GetOptionsByQuestion(db, 1)
	if err != nil {
		t.Fatal("Failed to load options:", err)
	}

	answer := &models.Answer{
		UserID:     user.ID,
		QuestionID: 1,
		OptionID:   options[0].ID,
		SessionID:  session.ID,
	}
	firstID, err := SaveAnswer(db, answer)
	if err != nil {
		t.Fatal("Failed to save answer:", err)
	}

	// Changing the selection updates the row instead of adding one.
	answer.OptionID = options[1].ID
	secondID, err := SaveAnswer(db, answer)
	if err != nil {
		t.Fatal("Failed to update answer:", err)
	}
	if firstID != secondID {
		t.Errorf("Upsert created a new row: %d then %d", firstID, secondID)
	}

	answers, err := GetAnswersBySession(db, user.ID, session.ID)
	if err != nil {
		t.Fatal("Failed to load answers:", err)
	}
	if len(answers) != 1 {
		t.Fatalf("Expected 1 answer, got %d", len(answers))
	}
	if answers[0].OptionID != options[1].ID {
		t.Errorf("Expected option %d, got %d", options[1].ID, answers[0].OptionID)
	}
}

func TestResultsOrderingAndLatest(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := createTestUser(t, db)

	latest, err := GetLatestResult(db, user.ID)
	if err != nil {
		t.Fatal("Latest result query failed:", err)
	}
	if latest != nil {
		t.Error("Expected nil latest result for a fresh user")
	}

	older := &models.Result{
		UserID:               user.ID,
		CalculationDate:      time.Now().Add(-time.Hour),
		TotalCarbonFootprint: 1500,
		EnergyFootprint:      1500,
	}
	newer := &models.Result{
		UserID:               user.ID,
		CalculationDate:      time.Now(),
		TotalCarbonFootprint: -50,
		TransportFootprint:   -50,
	}
	if _, err := SaveResult(db, older); err != nil {
		t.Fatal("Failed to save result:", err)
	}
	if _, err := SaveResult(db, newer); err != nil {
		t.Fatal("Failed to save result:", err)
	}

	results, err := GetResultsByUser(db, user.ID)
	if err != nil {
		t.Fatal("Failed to load results:", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].ID != newer.ID {
		t.Error("Results are not ordered newest first")
	}

	latest, err = GetLatestResult(db, user.ID)
	if err != nil {
		t.Fatal("Failed to load latest result:", err)
	}
	if latest.ID != newer.ID {
		t.Errorf("Expected latest result %d, got %d", newer.ID, latest.ID)
	}
	// Negative totals are stored as-is.
	if latest.TotalCarbonFootprint != -50 {
		t.Errorf("Expected total -50, got %f", latest.TotalCarbonFootprint)
	}

	if err := SetResultOffset(db, newer.ID); err != nil {
		t.Fatal("Failed to flag result:", err)
	}
	latest, _ = GetLatestResult(db, user.ID)
	if !latest.IsOffset {
		t.Error("Result should be flagged as offset")
	}
}

func TestOffsetLedgerAndTotal(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := createTestUser(t, db)

	result := &models.Result{
		UserID:               user.ID,
		CalculationDate:      time.Now(),
		TotalCarbonFootprint: 1000,
	}
	if _, err := SaveResult(db, result); err != nil {
		t.Fatal("Failed to save result:", err)
	}

	total, err := GetTotalOffsetByUser(db, user.ID)
	if err != nil {
		t.Fatal("Failed to sum offsets:", err)
	}
	if total != 0 {
		t.Errorf("Expected total 0 before donations, got %f", total)
	}

	for _, amount := range []float64{300, 250.5} {
		offset := &models.Offset{
			UserID:         user.ID,
			ResultID:       result.ID,
			OffsetAmount:   amount,
			DonationAmount: amount * 0.15,
			ProjectType:    "tree_planting",
			ProjectName:    "Ağaç Dikimi Projesi",
		}
		if _, err := SaveOffset(db, offset); err != nil {
			t.Fatal("Failed to save offset:", err)
		}
	}

	offsets, err := GetOffsetsByUser(db, user.ID)
	if err != nil {
		t.Fatal("Failed to load offsets:", err)
	}
	if len(offsets) != 2 {
		t.Fatalf("Expected 2 offsets, got %d", len(offsets))
	}

	total, err = GetTotalOffsetByUser(db, user.ID)
	if err != nil {
		t.Fatal("Failed to sum offsets:", err)
	}
	if total != 550.5 {
		t.Errorf("Expected total 550.5, got %f", total)
	}
}

func TestSurveySessionLifecycle(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := createTestUser(t, db)

	active, err := GetActiveSurveySession(db, user.ID)
	if err != nil {
		t.Fatal("Active session query failed:", err)
	}
	if active != nil {
		t.Error("Fresh user should have no active session")
	}

	session, err := CreateSurveySession(db, user.ID)
	if err != nil {
		t.Fatal("Failed to create session:", err)
	}

	if err := UpdateSurveySessionProgress(db, session.ID, 3); err != nil {
		t.Fatal("Failed to update progress:", err)
	}

	active, err = GetActiveSurveySession(db, user.ID)
	if err != nil {
		t.Fatal("Failed to load active session:", err)
	}
	if active == nil || active.ID != session.ID {
		t.Fatal("Active session not found after creation")
	}
	if active.CurrentCategoryIndex != 3 {
		t.Errorf("Expected category index 3, got %d", active.CurrentCategoryIndex)
	}

	if err := CompleteSurveySession(db, session.ID); err != nil {
		t.Fatal("Failed to complete session:", err)
	}

	active, err = GetActiveSurveySession(db, user.ID)
	if err != nil {
		t.Fatal("Active session query failed:", err)
	}
	if active != nil {
		t.Error("Completed session should no longer be active")
	}
}
