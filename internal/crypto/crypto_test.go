package crypto

import (
	"crypto/rand"
	"path/filepath"
	"testing"

	"carbontrack/internal/localstate"
	"carbontrack/internal/models"
)

func newTestCipher(t *testing.T) *Cipher {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		t.Fatal("Failed to generate key:", err)
	}

	c, err := NewCipher(key)
	if err != nil {
		t.Fatal("Failed to create cipher:", err)
	}
	return c
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c := newTestCipher(t)

	plaintexts := []string{
		"alice@example.com",
		"Ayşe Yılmaz",
		"İstanbul",
		"a somewhat longer value with spaces and punctuation!",
	}

	for _, plain := range plaintexts {
		encrypted := c.Encrypt(plain)
		if encrypted == plain {
			t.Errorf("Encrypt(%q) returned the plaintext", plain)
		}
		if !LooksEncrypted(encrypted) {
			t.Errorf("Encrypt(%q) output does not classify as encrypted", plain)
		}

		decrypted := c.Decrypt(encrypted)
		if decrypted != plain {
			t.Errorf("Round trip of %q gave %q", plain, decrypted)
		}
	}
}

func TestEncryptEmptyString(t *testing.T) {
	c := newTestCipher(t)

	if got := c.Encrypt(""); got != "" {
		t.Errorf("Encrypt(\"\") = %q, want empty", got)
	}
	if got := c.Decrypt(""); got != "" {
		t.Errorf("Decrypt(\"\") = %q, want empty", got)
	}
}

func TestEncryptProducesFreshCiphertext(t *testing.T) {
	c := newTestCipher(t)

	first := c.Encrypt("same input")
	second := c.Encrypt("same input")
	if first == second {
		t.Error("Two encryptions of the same value produced identical ciphertext")
	}
}

func TestDecryptPassesPlaintextThrough(t *testing.T) {
	c := newTestCipher(t)

	// Values that predate encryption must come back untouched.
	legacy := []string{
		"short",
		"alice@example.com",
		"not base64 at all!!!",
		"Ayşe",
	}

	for _, v := range legacy {
		if got := c.Decrypt(v); got != v {
			t.Errorf("Decrypt(%q) = %q, want passthrough", v, got)
		}
	}
}

func TestDecryptWithWrongKeyDegrades(t *testing.T) {
	c1 := newTestCipher(t)
	c2 := newTestCipher(t)

	encrypted := c1.Encrypt("sensitive value")

	// Wrong key: authenticated decryption fails and the stored bytes come
	// back unchanged instead of an error.
	got := c2.Decrypt(encrypted)
	if got != encrypted {
		t.Errorf("Decrypt with wrong key = %q, want the stored value back", got)
	}
}

func TestLooksEncrypted(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"short", false},
		{"this is definitely not base64 content at all", false},
		{"YWJjZGVmZ2hpamtsbW5vcHFyc3R1dnd4eXo=", true}, // 26 bytes decoded
		{"YWJjZA==", false}, // too short
	}

	for _, tt := range tests {
		if got := LooksEncrypted(tt.value); got != tt.want {
			t.Errorf("LooksEncrypted(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestUserFieldHelpers(t *testing.T) {
	c := newTestCipher(t)

	user := &models.User{
		Email:        "bob@example.com",
		Username:     "bob",
		PasswordHash: "unchanged-hash",
	}

	c.EncryptUser(user)
	if user.Email == "bob@example.com" || user.Username == "bob" {
		t.Error("EncryptUser left sensitive fields in plaintext")
	}
	if user.PasswordHash != "unchanged-hash" {
		t.Error("EncryptUser touched the password hash")
	}

	c.DecryptUser(user)
	if user.Email != "bob@example.com" || user.Username != "bob" {
		t.Error("DecryptUser did not restore the original values")
	}
}

func TestProfileFieldHelpers(t *testing.T) {
	c := newTestCipher(t)

	profile := &models.Profile{
		FullName:      "Ayşe Yılmaz",
		Country:       "Türkiye",
		City:          "Ankara",
		HouseholdSize: 3,
		IncomeLevel:   models.IncomeMedium,
	}

	c.EncryptProfile(profile)
	if profile.FullName == "Ayşe Yılmaz" || profile.City == "Ankara" || profile.Country == "Türkiye" {
		t.Error("EncryptProfile left sensitive fields in plaintext")
	}
	if profile.HouseholdSize != 3 || profile.IncomeLevel != models.IncomeMedium {
		t.Error("EncryptProfile touched non-sensitive fields")
	}

	c.DecryptProfile(profile)
	if profile.FullName != "Ayşe Yılmaz" || profile.City != "Ankara" || profile.Country != "Türkiye" {
		t.Error("DecryptProfile did not restore the original values")
	}
}

func TestGetOrCreateKeyIsStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	state, err := localstate.Open(path)
	if err != nil {
		t.Fatal("Failed to open state:", err)
	}

	first, err := GetOrCreateKey(state)
	if err != nil {
		t.Fatal("Failed to create key:", err)
	}
	if len(first) != KeySize {
		t.Fatalf("Key has %d bytes, want %d", len(first), KeySize)
	}

	// Reopen the state file: the same key must come back.
	state2, err := localstate.Open(path)
	if err != nil {
		t.Fatal("Failed to reopen state:", err)
	}

	second, err := GetOrCreateKey(state2)
	if err != nil {
		t.Fatal("Failed to load key:", err)
	}

	if string(first) != string(second) {
		t.Error("Key changed between state openings")
	}
}
