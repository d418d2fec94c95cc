// Package crypto implements the field-level encryption protecting personal
// data at rest: AES-256-GCM over individual string fields, a fresh 12-byte
// nonce per call, the result stored as base64(nonce||ciphertext).
//
// The store mixes historically seeded plaintext with encrypted values in the
// same columns, so Decrypt first classifies its input by shape and passes
// anything that does not look like ciphertext through unchanged. Decryption
// failures degrade the same way: the caller gets the raw stored value back,
// never an error.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"regexp"

	"carbontrack/internal/models"
)

const nonceSize = 12

var base64Shape = regexp.MustCompile(`^[A-Za-z0-9+/]+=*$`)

// Cipher encrypts and decrypts individual string fields.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher builds a Cipher from a key produced by GetOrCreateKey.
func NewCipher(key []byte) (*Cipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt returns base64(nonce||ciphertext) for plain. The empty string is
// returned unchanged. On any failure the plaintext is returned as-is:
// degraded but available, the record stays usable at the cost of that field
// not being protected.
func (c *Cipher) Encrypt(plain string) string {
	if plain == "" {
		return ""
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return plain
	}

	sealed := c.aead.Seal(nil, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(append(nonce, sealed...))
}

// LooksEncrypted reports whether value has the shape Encrypt produces:
// base64 text of at least 28 characters decoding to at least 13 bytes
// (12-byte nonce plus data). Short plaintext that happens to be valid
// base64 can be misclassified; that is a documented limit of shape
// sniffing, accepted so that legacy plaintext rows keep working without a
// per-record format tag.
func LooksEncrypted(value string) bool {
	if len(value) < 28 {
		return false
	}
	if !base64Shape.MatchString(value) {
		return false
	}
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return false
	}
	return len(decoded) >= nonceSize+1
}

// Decrypt reverses Encrypt. Values that do not look encrypted, and values
// that fail authenticated decryption (wrong key, corruption, heuristic
// false positive), are returned unchanged. The caller cannot distinguish
// "was plaintext" from "failed to decrypt" here.
func (c *Cipher) Decrypt(value string) string {
	if value == "" {
		return ""
	}
	if !LooksEncrypted(value) {
		return value
	}

	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return value
	}

	nonce, sealed := decoded[:nonceSize], decoded[nonceSize:]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return value
	}

	return string(plain)
}

// EncryptUser encrypts the sensitive User fields in place.
func (c *Cipher) EncryptUser(u *models.User) {
	u.Email = c.Encrypt(u.Email)
	u.Username = c.Encrypt(u.Username)
}

// DecryptUser decrypts the sensitive User fields in place. Plaintext
// (legacy) values pass through untouched.
func (c *Cipher) DecryptUser(u *models.User) {
	u.Email = c.Decrypt(u.Email)
	u.Username = c.Decrypt(u.Username)
}

// EncryptProfile encrypts the sensitive Profile fields in place.
func (c *Cipher) EncryptProfile(p *models.Profile) {
	p.FullName = c.Encrypt(p.FullName)
	p.City = c.Encrypt(p.City)
	p.Country = c.Encrypt(p.Country)
}

// DecryptProfile decrypts the sensitive Profile fields in place.
func (c *Cipher) DecryptProfile(p *models.Profile) {
	p.FullName = c.Decrypt(p.FullName)
	p.City = c.Decrypt(p.City)
	p.Country = c.Decrypt(p.Country)
}
