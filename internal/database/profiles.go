package database

import (
	"database/sql"
	"fmt"
	"time"

	"carbontrack/internal/models"
)

// CreateProfile inserts the profile as given (sensitive fields are expected
// to be ciphertext already) and returns the assigned id.
//
// Profile creation follows user creation as a second, separate insert; a
// failure between the two leaves a user without a profile. That gap is a
// known limitation, not something this layer papers over.
func CreateProfile(db *sql.DB, profile *models.Profile) (int, error) {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	query := `
		INSERT INTO profiles (user_id, full_name, birth_date, country, city,
		                      household_size, income_level, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.Exec(query,
		profile.UserID,
		profile.FullName,
		profile.BirthDate,
		profile.Country,
		profile.City,
		profile.HouseholdSize,
		profile.IncomeLevel,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create profile: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get profile ID: %w", err)
	}

	profile.ID = int(id)
	return profile.ID, nil
}

func GetProfileByUserID(db *sql.DB, userID int) (*models.Profile, error) {
	profile := &models.Profile{}
	var birthDate sql.NullTime

	query := `
		SELECT id, user_id, full_name, birth_date, country, city,
		       household_size, income_level, created_at, updated_at
		FROM profiles
		WHERE user_id = ?
	`

	err := db.QueryRow(query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&birthDate,
		&profile.Country,
		&profile.City,
		&profile.HouseholdSize,
		&profile.IncomeLevel,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("profile not found")
		}
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	if birthDate.Valid {
		t := birthDate.Time
		profile.BirthDate = &t
	}

	return profile, nil
}

// UpdateProfile overwrites the mutable profile fields for userID and
// refreshes updated_at.
func UpdateProfile(db *sql.DB, userID int, profile *models.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = ?, birth_date = ?, country = ?, city = ?,
		    household_size = ?, income_level = ?, updated_at = ?
		WHERE user_id = ?
	`

	_, err := db.Exec(query,
		profile.FullName,
		profile.BirthDate,
		profile.Country,
		profile.City,
		profile.HouseholdSize,
		profile.IncomeLevel,
		time.Now(),
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}
