package database

import (
	"database/sql"
	"fmt"
	"time"

	"carbontrack/internal/models"
)

// CreateUser inserts the user as given (email/username are expected to be
// ciphertext already) and returns the assigned id.
func CreateUser(db *sql.DB, user *models.User) (int, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (email, username, password_hash, email_verified, verification_token,
		                   profile_image, reset_token, reset_token_expiry, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.Exec(query,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.EmailVerified,
		user.VerificationToken,
		user.ProfileImage,
		user.ResetToken,
		user.ResetTokenExpiry,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get user ID: %w", err)
	}

	user.ID = int(id)
	return user.ID, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var resetToken sql.NullString
	var resetExpiry sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.EmailVerified,
		&user.VerificationToken,
		&user.ProfileImage,
		&resetToken,
		&resetExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if resetToken.Valid {
		user.ResetToken = &resetToken.String
	}
	if resetExpiry.Valid {
		t := resetExpiry.Time
		user.ResetTokenExpiry = &t
	}

	return user, nil
}

const userColumns = `id, email, username, password_hash, email_verified, verification_token,
	profile_image, reset_token, reset_token_expiry, created_at, updated_at`

func GetUserByID(db *sql.DB, userID int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(db.QueryRow(query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return user, nil
}

// GetAllUsers returns every user record with fields as stored (ciphertext).
// Email lookups have to decrypt each row in turn, so they are O(n) in the
// user count; the email index only covers the exact stored bytes.
func GetAllUsers(db *sql.DB) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// GetUserByResetToken finds the user holding a non-null reset token. Reset
// tokens are stored in plaintext, so an indexed equality lookup is
// equivalent to scanning every record.
func GetUserByResetToken(db *sql.DB, token string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token = ?`

	user, err := scanUser(db.QueryRow(query, token))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to query user by reset token: %w", err)
	}

	return user, nil
}

func UpdateUserPassword(db *sql.DB, userID int, passwordHash string) error {
	query := `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`
	_, err := db.Exec(query, passwordHash, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func SetUserResetToken(db *sql.DB, userID int, token string, expiry time.Time) error {
	query := `UPDATE users SET reset_token = ?, reset_token_expiry = ?, updated_at = ? WHERE id = ?`
	_, err := db.Exec(query, token, expiry, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	return nil
}

// ClearUserResetToken nulls out both token fields so a consumed token can
// never be used a second time.
func ClearUserResetToken(db *sql.DB, userID int) error {
	query := `UPDATE users SET reset_token = NULL, reset_token_expiry = NULL, updated_at = ? WHERE id = ?`
	_, err := db.Exec(query, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}
	return nil
}

// UpdateUserProfileImage stores the image reference as-is; it is treated as
// non-sensitive and is not encrypted.
func UpdateUserProfileImage(db *sql.DB, userID int, image string) error {
	query := `UPDATE users SET profile_image = ?, updated_at = ? WHERE id = ?`
	_, err := db.Exec(query, image, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update profile image: %w", err)
	}
	return nil
}
