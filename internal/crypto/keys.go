package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"carbontrack/internal/localstate"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// GetOrCreateKey returns the symmetric field-encryption key, generating and
// persisting a fresh one on first use. The key is stored hex-encoded in the
// local state under a fixed name and is never rotated. If the local state is
// unusable this is fatal for every encryption-dependent operation.
func GetOrCreateKey(state *localstate.Store) ([]byte, error) {
	if encoded, ok := state.Get(localstate.KeyEncryptionKey); ok {
		key, err := hex.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("stored encryption key is corrupted: %w", err)
		}
		if len(key) != KeySize {
			return nil, fmt.Errorf("stored encryption key has wrong size %d", len(key))
		}
		return key, nil
	}

	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate encryption key: %w", err)
	}

	if err := state.Set(localstate.KeyEncryptionKey, hex.EncodeToString(key)); err != nil {
		return nil, fmt.Errorf("failed to persist encryption key: %w", err)
	}

	return key, nil
}
