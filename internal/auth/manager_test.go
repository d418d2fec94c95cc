package auth

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"carbontrack/internal/crypto"
	"carbontrack/internal/database"
	"carbontrack/internal/localstate"
	"carbontrack/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

type testEnv struct {
	db     *sql.DB
	cipher *crypto.Cipher
	state  *localstate.Store
}

func setupTestEnv(t *testing.T) *testEnv {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal("Failed to open test database:", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatal("Failed to run migrations:", err)
	}

	state, err := localstate.Open(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatal("Failed to open state:", err)
	}

	key, err := crypto.GetOrCreateKey(state)
	if err != nil {
		t.Fatal("Failed to create key:", err)
	}
	cipher, err := crypto.NewCipher(key)
	if err != nil {
		t.Fatal("Failed to create cipher:", err)
	}

	return &testEnv{db: db, cipher: cipher, state: state}
}

func (e *testEnv) newManager() *Manager {
	return NewManager(e.db, e.cipher, e.state, nil)
}

func TestRegisterLoginLogout(t *testing.T) {
	env := setupTestEnv(t)
	m := env.newManager()

	user, err := m.Register("Alice@Example.com", "alice", "password123")
	if err != nil {
		t.Fatal("Failed to register:", err)
	}

	if user.Email != "alice@example.com" {
		t.Errorf("Email not normalized: %q", user.Email)
	}
	if !m.IsAuthenticated() {
		t.Error("Register should sign the user in")
	}

	// The stored record must not hold the plaintext email.
	stored, err := database.GetUserByID(env.db, user.ID)
	if err != nil {
		t.Fatal("Failed to load stored user:", err)
	}
	if stored.Email == "alice@example.com" || stored.Username == "alice" {
		t.Error("Sensitive fields stored in plaintext")
	}
	if stored.PasswordHash == "password123" || stored.PasswordHash == "" {
		t.Error("Password not hashed")
	}

	// A default profile exists with plaintext defaults in memory.
	profile := m.CurrentProfile()
	if profile == nil {
		t.Fatal("Register should create a profile")
	}
	if profile.Country != "Türkiye" || profile.HouseholdSize != 1 || profile.IncomeLevel != models.IncomeMedium {
		t.Errorf("Unexpected profile defaults: %+v", profile)
	}

	if err := m.Logout(); err != nil {
		t.Fatal("Failed to log out:", err)
	}
	if m.IsAuthenticated() {
		t.Error("Logout should end the session")
	}

	logged, err := m.Login("alice@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to log in:", err)
	}
	if logged.ID != user.ID {
		t.Errorf("Logged in as user %d, want %d", logged.ID, user.ID)
	}
	if logged.Email != "alice@example.com" {
		t.Errorf("Login returned email %q, want decrypted plaintext", logged.Email)
	}
}

func TestLoginErrorsAreDistinct(t *testing.T) {
	env := setupTestEnv(t)
	m := env.newManager()

	if _, err := m.Register("bob@example.com", "bob", "password123"); err != nil {
		t.Fatal("Failed to register:", err)
	}

	if _, err := m.Login("nobody@example.com", "password123"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
	if _, err := m.Login("bob@example.com", "wrongpassword"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("Expected ErrWrongPassword, got %v", err)
	}
}

func TestRegisterDuplicateEmailIsCaseInsensitive(t *testing.T) {
	env := setupTestEnv(t)
	m := env.newManager()

	if _, err := m.Register("carol@example.com", "carol", "password123"); err != nil {
		t.Fatal("Failed to register:", err)
	}

	_, err := m.Register("CAROL@example.com", "carol2", "password456")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestSessionRestore(t *testing.T) {
	env := setupTestEnv(t)

	m1 := env.newManager()
	user, err := m1.Register("dave@example.com", "dave", "password123")
	if err != nil {
		t.Fatal("Failed to register:", err)
	}

	// A fresh manager over the same store picks the session back up.
	m2 := env.newManager()
	m2.Init()

	if !m2.IsAuthenticated() {
		t.Fatal("Init should restore the persisted session")
	}
	restored := m2.CurrentUser()
	if restored.ID != user.ID {
		t.Errorf("Restored user %d, want %d", restored.ID, user.ID)
	}
	if restored.Email != "dave@example.com" {
		t.Errorf("Restored email %q, want decrypted plaintext", restored.Email)
	}
}

func TestInitWithStaleSessionFallsBackToAnonymous(t *testing.T) {
	env := setupTestEnv(t)

	if err := env.state.Set(localstate.KeyCurrentUserID, "9999"); err != nil {
		t.Fatal("Failed to plant stale session:", err)
	}

	m := env.newManager()
	m.Init()

	if m.IsAuthenticated() {
		t.Error("Stale session should not authenticate")
	}
	if _, ok := env.state.Get(localstate.KeyCurrentUserID); ok {
		t.Error("Stale session entry should be cleared")
	}
}

func TestPasswordResetFlow(t *testing.T) {
	env := setupTestEnv(t)
	m := env.newManager()

	if _, err := m.Register("erin@example.com", "erin", "oldpassword"); err != nil {
		t.Fatal("Failed to register:", err)
	}

	token, err := m.RequestPasswordReset(context.Background(), "erin@example.com")
	if err != nil {
		t.Fatal("Failed to request reset:", err)
	}
	if token == "" {
		t.Fatal("Expected a reset token for a known email")
	}

	if err := m.ResetPassword(token, "newpassword"); err != nil {
		t.Fatal("Failed to reset password:", err)
	}

	// Tokens are single-use.
	if err := m.ResetPassword(token, "anotherpassword"); !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("Expected ErrInvalidResetToken on reuse, got %v", err)
	}

	if _, err := m.Login("erin@example.com", "oldpassword"); !errors.Is(err, ErrWrongPassword) {
		t.Error("Old password should no longer work")
	}
	if _, err := m.Login("erin@example.com", "newpassword"); err != nil {
		t.Error("New password should work:", err)
	}
}

func TestPasswordResetUnknownEmail(t *testing.T) {
	env := setupTestEnv(t)
	m := env.newManager()

	token, err := m.RequestPasswordReset(context.Background(), "ghost@example.com")
	if err != nil {
		t.Fatal("Unknown email should not error:", err)
	}
	if token != "" {
		t.Error("Unknown email should yield no token")
	}
}

func TestPasswordResetExpiredToken(t *testing.T) {
	env := setupTestEnv(t)
	m := env.newManager()

	user, err := m.Register("frank@example.com", "frank", "password123")
	if err != nil {
		t.Fatal("Failed to register:", err)
	}

	expired := time.Now().Add(-time.Minute)
	if err := database.SetUserResetToken(env.db, user.ID, "expired-token", expired); err != nil {
		t.Fatal("Failed to plant expired token:", err)
	}

	if err := m.ResetPassword("expired-token", "newpassword"); !errors.Is(err, ErrResetTokenExpired) {
		t.Errorf("Expected ErrResetTokenExpired, got %v", err)
	}

	// The expired token is consumed as well.
	if err := m.ResetPassword("expired-token", "newpassword"); !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("Expected ErrInvalidResetToken after consumption, got %v", err)
	}
}

func TestUpdateProfileEncryptsAtRest(t *testing.T) {
	env := setupTestEnv(t)
	m := env.newManager()

	user, err := m.Register("grace@example.com", "grace", "password123")
	if err != nil {
		t.Fatal("Failed to register:", err)
	}

	profile := &models.Profile{
		FullName:      "Grace Hopper",
		Country:       "Türkiye",
		City:          "İzmir",
		HouseholdSize: 2,
		IncomeLevel:   models.IncomeHigh,
	}
	if err := m.UpdateProfile(profile); err != nil {
		t.Fatal("Failed to update profile:", err)
	}

	current := m.CurrentProfile()
	if current.FullName != "Grace Hopper" || current.City != "İzmir" {
		t.Error("In-memory profile should stay plaintext")
	}

	stored, err := database.GetProfileByUserID(env.db, user.ID)
	if err != nil {
		t.Fatal("Failed to load stored profile:", err)
	}
	if stored.FullName == "Grace Hopper" || stored.City == "İzmir" {
		t.Error("Sensitive profile fields stored in plaintext")
	}
	if stored.HouseholdSize != 2 || stored.IncomeLevel != models.IncomeHigh {
		t.Error("Non-sensitive fields should be stored as-is")
	}
}

func TestUpdateProfileRequiresAuthentication(t *testing.T) {
	env := setupTestEnv(t)
	m := env.newManager()

	err := m.UpdateProfile(&models.Profile{HouseholdSize: 1, IncomeLevel: models.IncomeLow})
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Expected ErrNotAuthenticated, got %v", err)
	}
}
