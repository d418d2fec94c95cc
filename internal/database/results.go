package database

import (
	"database/sql"
	"fmt"

	"carbontrack/internal/models"
)

// SaveResult appends a calculation to the user's history. Results are never
// mutated afterwards apart from the is_offset flag. Signed values are stored
// as-is; presentation-side clamping never reaches this layer.
func SaveResult(db *sql.DB, result *models.Result) (int, error) {
	query := `
		INSERT INTO results (user_id, calculation_date, total_carbon_footprint,
		                     energy_footprint, transport_footprint, food_footprint,
		                     digital_footprint, consumption_footprint, is_offset)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := db.Exec(query,
		result.UserID,
		result.CalculationDate,
		result.TotalCarbonFootprint,
		result.EnergyFootprint,
		result.TransportFootprint,
		result.FoodFootprint,
		result.DigitalFootprint,
		result.ConsumptionFootprint,
		result.IsOffset,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get result ID: %w", err)
	}

	result.ID = int(id)
	return result.ID, nil
}

const resultColumns = `id, user_id, calculation_date, total_carbon_footprint,
	energy_footprint, transport_footprint, food_footprint,
	digital_footprint, consumption_footprint, is_offset`

func scanResult(row rowScanner) (*models.Result, error) {
	r := &models.Result{}
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.CalculationDate,
		&r.TotalCarbonFootprint,
		&r.EnergyFootprint,
		&r.TransportFootprint,
		&r.FoodFootprint,
		&r.DigitalFootprint,
		&r.ConsumptionFootprint,
		&r.IsOffset,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// GetResultsByUser returns the user's calculation history, newest first.
func GetResultsByUser(db *sql.DB, userID int) ([]models.Result, error) {
	query := `SELECT ` + resultColumns + ` FROM results WHERE user_id = ? ORDER BY calculation_date DESC`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []models.Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}

	return results, nil
}

// GetLatestResult returns the newest result by calculation date, or nil when
// the user has none yet.
func GetLatestResult(db *sql.DB, userID int) (*models.Result, error) {
	query := `SELECT ` + resultColumns + ` FROM results WHERE user_id = ? ORDER BY calculation_date DESC LIMIT 1`

	result, err := scanResult(db.QueryRow(query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query latest result: %w", err)
	}

	return result, nil
}

// SetResultOffset flags a result as offset once donations cover its total.
func SetResultOffset(db *sql.DB, resultID int) error {
	_, err := db.Exec(`UPDATE results SET is_offset = TRUE WHERE id = ?`, resultID)
	if err != nil {
		return fmt.Errorf("failed to flag result as offset: %w", err)
	}
	return nil
}
