package models

import (
	"time"
)

// User holds account data. Email and username are stored encrypted; the
// structs passed around the application carry whatever the caller put in
// them (ciphertext when read straight from the store, plaintext once the
// field cipher has been applied).
type User struct {
	ID                int        `json:"id" db:"id"`
	Email             string     `json:"email" db:"email"`
	Username          string     `json:"username" db:"username"`
	PasswordHash      string     `json:"-" db:"password_hash"`
	EmailVerified     bool       `json:"email_verified" db:"email_verified"`
	VerificationToken string     `json:"-" db:"verification_token"`
	ProfileImage      string     `json:"profile_image,omitempty" db:"profile_image"`
	ResetToken        *string    `json:"-" db:"reset_token"`
	ResetTokenExpiry  *time.Time `json:"-" db:"reset_token_expiry"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// Profile is the one-to-one extension of a User. FullName, City and Country
// are stored encrypted.
type Profile struct {
	ID            int        `json:"id" db:"id"`
	UserID        int        `json:"user_id" db:"user_id"`
	FullName      string     `json:"full_name" db:"full_name"`
	BirthDate     *time.Time `json:"birth_date,omitempty" db:"birth_date"`
	Country       string     `json:"country" db:"country"`
	City          string     `json:"city" db:"city"`
	HouseholdSize int        `json:"household_size" db:"household_size"`
	IncomeLevel   string     `json:"income_level" db:"income_level"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// IncomeLevel values accepted on a Profile.
const (
	IncomeLow    = "low"
	IncomeMedium = "medium"
	IncomeHigh   = "high"
)

// QuestionCategory is static reference data seeded once.
type QuestionCategory struct {
	ID          int    `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Icon        string `json:"icon" db:"icon"`
	OrderIndex  int    `json:"order_index" db:"order_index"`
}

type Question struct {
	ID           int    `json:"id" db:"id"`
	CategoryID   int    `json:"category_id" db:"category_id"`
	QuestionText string `json:"question_text" db:"question_text"`
	QuestionType string `json:"question_type" db:"question_type"`
	HelpText     string `json:"help_text" db:"help_text"`
	IsActive     bool   `json:"is_active" db:"is_active"`
}

// QuestionOption carries the carbon contribution of one survey choice.
// CarbonValue is kg CO2/year and may be negative for footprint-reducing
// behaviours such as car-sharing or recycling.
type QuestionOption struct {
	ID          int    `json:"id" db:"id"`
	QuestionID  int    `json:"question_id" db:"question_id"`
	OptionKey   string `json:"option_key" db:"option_key"`
	OptionText  string `json:"option_text" db:"option_text"`
	CarbonValue int    `json:"carbon_value" db:"carbon_value"`
	OrderIndex  int    `json:"order_index" db:"order_index"`
	Description string `json:"description" db:"description"`
}

// Answer records one selected option. At most one answer exists per
// (user, question, session); a later selection overwrites the earlier one.
type Answer struct {
	ID         int       `json:"id" db:"id"`
	UserID     int       `json:"user_id" db:"user_id"`
	QuestionID int       `json:"question_id" db:"question_id"`
	OptionID   int       `json:"option_id" db:"option_id"`
	SessionID  int       `json:"session_id" db:"session_id"`
	AnsweredAt time.Time `json:"answered_at" db:"answered_at"`
}

// Result is an immutable footprint calculation. TotalCarbonFootprint always
// equals the sum of the five category subtotals; values are signed and are
// never clamped at the storage layer.
type Result struct {
	ID                   int       `json:"id" db:"id"`
	UserID               int       `json:"user_id" db:"user_id"`
	CalculationDate      time.Time `json:"calculation_date" db:"calculation_date"`
	TotalCarbonFootprint float64   `json:"total_carbon_footprint" db:"total_carbon_footprint"`
	EnergyFootprint      float64   `json:"energy_footprint" db:"energy_footprint"`
	TransportFootprint   float64   `json:"transport_footprint" db:"transport_footprint"`
	FoodFootprint        float64   `json:"food_footprint" db:"food_footprint"`
	DigitalFootprint     float64   `json:"digital_footprint" db:"digital_footprint"`
	ConsumptionFootprint float64   `json:"consumption_footprint" db:"consumption_footprint"`
	IsOffset             bool      `json:"is_offset" db:"is_offset"`
}

// Offset is one entry in the append-only donation ledger.
type Offset struct {
	ID             int       `json:"id" db:"id"`
	UserID         int       `json:"user_id" db:"user_id"`
	ResultID       int       `json:"result_id" db:"result_id"`
	OffsetAmount   float64   `json:"offset_amount" db:"offset_amount"`
	DonationAmount float64   `json:"donation_amount" db:"donation_amount"`
	ProjectType    string    `json:"project_type" db:"project_type"`
	ProjectName    string    `json:"project_name" db:"project_name"`
	OffsetDate     time.Time `json:"offset_date" db:"offset_date"`
}

// SurveySession tracks one survey attempt. Its ID groups the answers that
// belong to the attempt.
type SurveySession struct {
	ID                   int        `json:"id" db:"id"`
	UserID               int        `json:"user_id" db:"user_id"`
	StartedAt            time.Time  `json:"started_at" db:"started_at"`
	CompletedAt          *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CurrentCategoryIndex int        `json:"current_category_index" db:"current_category_index"`
	IsComplete           bool       `json:"is_complete" db:"is_complete"`
}

// OffsetProject describes one of the donation projects offered to offset a
// footprint. Static catalog data, not persisted.
type OffsetProject struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Name         string  `json:"name"`
	Icon         string  `json:"icon"`
	Description  string  `json:"description"`
	CostPerKg    float64 `json:"cost_per_kg"`
	Impact       string  `json:"impact"`
	Organization string  `json:"organization"`
}
