package database

import (
	"database/sql"
	"fmt"
	"time"

	"carbontrack/internal/models"
)

// SaveOffset appends one donation to the ledger. Offsets are never updated
// or deleted; a user's covered amount is always the sum over the ledger.
func SaveOffset(db *sql.DB, offset *models.Offset) (int, error) {
	offset.OffsetDate = time.Now()

	query := `
		INSERT INTO offsets (user_id, result_id, offset_amount, donation_amount,
		                     project_type, project_name, offset_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	res, err := db.Exec(query,
		offset.UserID,
		offset.ResultID,
		offset.OffsetAmount,
		offset.DonationAmount,
		offset.ProjectType,
		offset.ProjectName,
		offset.OffsetDate,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save offset: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get offset ID: %w", err)
	}

	offset.ID = int(id)
	return offset.ID, nil
}

// GetOffsetsByUser returns the user's donation ledger, newest first.
func GetOffsetsByUser(db *sql.DB, userID int) ([]models.Offset, error) {
	query := `
		SELECT id, user_id, result_id, offset_amount, donation_amount,
		       project_type, project_name, offset_date
		FROM offsets
		WHERE user_id = ?
		ORDER BY offset_date DESC
	`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query offsets: %w", err)
	}
	defer rows.Close()

	var offsets []models.Offset
	for rows.Next() {
		var o models.Offset
		if err := rows.Scan(&o.ID, &o.UserID, &o.ResultID, &o.OffsetAmount,
			&o.DonationAmount, &o.ProjectType, &o.ProjectName, &o.OffsetDate); err != nil {
			return nil, fmt.Errorf("failed to scan offset: %w", err)
		}
		offsets = append(offsets, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate offsets: %w", err)
	}

	return offsets, nil
}

// GetTotalOffsetByUser sums the user's offset amounts in kg CO2. The total
// may exceed, equal, or fall short of any particular result's footprint.
func GetTotalOffsetByUser(db *sql.DB, userID int) (float64, error) {
	var total sql.NullFloat64
	err := db.QueryRow(`SELECT SUM(offset_amount) FROM offsets WHERE user_id = ?`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum offsets: %w", err)
	}
	if !total.Valid {
		return 0, nil
	}
	return total.Float64, nil
}
