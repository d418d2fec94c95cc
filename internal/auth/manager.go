// Package auth implements account lifecycle and the single-user local
// session: register, login, logout, password reset and profile updates. The
// manager keeps the authenticated user decrypted in memory and records the
// current user id in local state so the session survives restarts.
package auth

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"carbontrack/internal/crypto"
	"carbontrack/internal/database"
	"carbontrack/internal/localstate"
	"carbontrack/internal/logger"
	"carbontrack/internal/models"
)

var (
	ErrEmailTaken        = errors.New("email already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrWrongPassword     = errors.New("wrong password")
	ErrInvalidResetToken = errors.New("invalid reset token")
	ErrResetTokenExpired = errors.New("reset token expired")
	ErrNotAuthenticated  = errors.New("not authenticated")
)

const resetTokenTTL = time.Hour

// ResetMailer delivers password reset tokens. When delivery is disabled the
// manager still completes the reset flow and hands the token back to the
// caller.
type ResetMailer interface {
	IsEnabled() bool
	SendPasswordResetEmail(ctx context.Context, to, username, token string) error
}

// Manager owns the current session. All exported methods are safe for
// concurrent use.
type Manager struct {
	db     *sql.DB
	cipher *crypto.Cipher
	state  *localstate.Store
	mailer ResetMailer

	mu      sync.RWMutex
	user    *models.User
	profile *models.Profile
}

func NewManager(db *sql.DB, cipher *crypto.Cipher, state *localstate.Store, mailer ResetMailer) *Manager {
	return &Manager{db: db, cipher: cipher, state: state, mailer: mailer}
}

// Init restores the session recorded in local state. Any failure — missing
// entry, unparseable id, user gone from the store — drops to the anonymous
// state and clears the stale entry; a broken pointer never blocks startup.
func (m *Manager) Init() {
	raw, ok := m.state.Get(localstate.KeyCurrentUserID)
	if !ok {
		return
	}

	userID, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn("Stored session id is not a number, clearing it")
		m.state.Delete(localstate.KeyCurrentUserID)
		return
	}

	user, err := database.GetUserByID(m.db, userID)
	if err != nil {
		logger.Warn("Stored session points at a missing user, clearing it", "userID", userID)
		m.state.Delete(localstate.KeyCurrentUserID)
		return
	}
	m.cipher.DecryptUser(user)

	profile, err := database.GetProfileByUserID(m.db, userID)
	if err != nil {
		logger.Warn("Session user has no profile", "userID", userID)
		m.state.Delete(localstate.KeyCurrentUserID)
		return
	}
	m.cipher.DecryptProfile(profile)

	m.mu.Lock()
	m.user = user
	m.profile = profile
	m.mu.Unlock()

	logger.Info("Session restored", "userID", userID)
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// findUserByEmail decrypts every stored email until one matches. Linear in
// the user count; see database.GetAllUsers.
func (m *Manager) findUserByEmail(email string) (*models.User, error) {
	users, err := database.GetAllUsers(m.db)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if normalizeEmail(m.cipher.Decrypt(users[i].Email)) == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Register creates the account, an empty profile with defaults, and signs
// the new user in. Email comparison is case-insensitive.
func (m *Manager) Register(email, username, password string) (*models.User, error) {
	email = normalizeEmail(email)

	existing, err := m.findUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	user := &models.User{
		Email:             email,
		Username:          username,
		PasswordHash:      hashPassword(password),
		EmailVerified:     false,
		VerificationToken: uuid.NewString(),
	}

	stored := *user
	m.cipher.EncryptUser(&stored)
	if _, err := database.CreateUser(m.db, &stored); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = stored.ID
	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = stored.UpdatedAt

	profile := &models.Profile{
		UserID:        user.ID,
		Country:       "Türkiye",
		HouseholdSize: 1,
		IncomeLevel:   models.IncomeMedium,
	}
	storedProfile := *profile
	m.cipher.EncryptProfile(&storedProfile)
	if _, err := database.CreateProfile(m.db, &storedProfile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	profile.ID = storedProfile.ID
	profile.CreatedAt = storedProfile.CreatedAt
	profile.UpdatedAt = storedProfile.UpdatedAt

	if err := m.state.Set(localstate.KeyCurrentUserID, strconv.Itoa(user.ID)); err != nil {
		logger.Warn("Failed to persist session", "error", err)
	}

	m.mu.Lock()
	m.user = user
	m.profile = profile
	m.mu.Unlock()

	logger.Info("User registered", "userID", user.ID)
	return user, nil
}

// Login verifies credentials and establishes the session. A missing account
// and a wrong password are reported as distinct errors.
func (m *Manager) Login(email, password string) (*models.User, error) {
	email = normalizeEmail(email)

	user, err := m.findUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.PasswordHash != hashPassword(password) {
		return nil, ErrWrongPassword
	}

	m.cipher.DecryptUser(user)

	profile, err := database.GetProfileByUserID(m.db, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	m.cipher.DecryptProfile(profile)

	if err := m.state.Set(localstate.KeyCurrentUserID, strconv.Itoa(user.ID)); err != nil {
		logger.Warn("Failed to persist session", "error", err)
	}

	m.mu.Lock()
	m.user = user
	m.profile = profile
	m.mu.Unlock()

	logger.Info("User logged in", "userID", user.ID)
	return user, nil
}

// Logout drops the in-memory session and the persisted user id. The
// encryption key stays in local state so stored data remains readable after
// the next login.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.user = nil
	m.profile = nil
	m.mu.Unlock()

	if err := m.state.Delete(localstate.KeyCurrentUserID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	logger.Info("User logged out")
	return nil
}

// RequestPasswordReset issues a one-hour reset token for the account. When
// no account matches, it returns an empty token and no error so the caller
// can report the same outcome either way. The token is returned to the
// caller and additionally emailed when delivery is configured.
func (m *Manager) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)

	user, err := m.findUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		logger.Debug("Password reset requested for unknown email")
		return "", nil
	}

	token := uuid.NewString()
	expiry := time.Now().Add(resetTokenTTL)
	if err := database.SetUserResetToken(m.db, user.ID, token, expiry); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	if m.mailer != nil && m.mailer.IsEnabled() {
		username := m.cipher.Decrypt(user.Username)
		if err := m.mailer.SendPasswordResetEmail(ctx, email, username, token); err != nil {
			logger.Error("Failed to send reset email", "error", err)
		}
	}

	logger.Info("Password reset token issued", "userID", user.ID)
	return token, nil
}

// ResetPassword consumes a reset token. Tokens are single-use: the fields
// are cleared even though the expiry check happens first, so a replay of an
// expired token also finds nothing.
func (m *Manager) ResetPassword(token, newPassword string) error {
	user, err := database.GetUserByResetToken(m.db, token)
	if err != nil {
		return ErrInvalidResetToken
	}

	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		if err := database.ClearUserResetToken(m.db, user.ID); err != nil {
			logger.Error("Failed to clear expired reset token", "error", err)
		}
		return ErrResetTokenExpired
	}

	if err := database.UpdateUserPassword(m.db, user.ID, hashPassword(newPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := database.ClearUserResetToken(m.db, user.ID); err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}

	logger.Info("Password reset completed", "userID", user.ID)
	return nil
}

// UpdateProfile overwrites the current user's profile. The stored copy is
// encrypted; the in-memory session keeps the caller's plaintext.
func (m *Manager) UpdateProfile(profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return ErrNotAuthenticated
	}

	stored := *profile
	m.cipher.EncryptProfile(&stored)
	if err := database.UpdateProfile(m.db, m.user.ID, &stored); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	updated := *profile
	updated.UserID = m.user.ID
	if m.profile != nil {
		updated.ID = m.profile.ID
		updated.CreatedAt = m.profile.CreatedAt
	}
	updated.UpdatedAt = time.Now()
	m.profile = &updated

	logger.Info("Profile updated", "userID", m.user.ID)
	return nil
}

// UpdateProfilePicture stores the image reference for the current user.
func (m *Manager) UpdateProfilePicture(image string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return ErrNotAuthenticated
	}

	if err := database.UpdateUserProfileImage(m.db, m.user.ID, image); err != nil {
		return fmt.Errorf("failed to update profile picture: %w", err)
	}

	m.user.ProfileImage = image
	return nil
}

// CurrentUser returns a copy of the signed-in user, or nil when anonymous.
func (m *Manager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// CurrentProfile returns a copy of the signed-in user's profile, or nil.
func (m *Manager) CurrentProfile() *models.Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.profile == nil {
		return nil
	}
	p := *m.profile
	return &p
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}
