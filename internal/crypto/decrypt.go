package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrNoKey reports a v15 payload with no LEA key configured.
var ErrNoKey = errors.New("no LEA key configured")

// Keys carries the per-installation secrets needed to open encrypted models.
// The zero value opens v10 and v12 files only.
type Keys struct {
	LEA    [32]byte
	HasLEA bool
}

// ParseLEAKey decodes a 64-character hex LEA-256 key.
func ParseLEAKey(s string) ([32]byte, error) {
	var key [32]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return key, fmt.Errorf("crypto: lea key: %w", err)
	}
	if len(raw) != len(key) {
		return key, fmt.Errorf("crypto: lea key: got %d bytes, want %d", len(raw), len(key))
	}
	copy(key[:], raw)
	return key, nil
}

// Decrypt returns the plain payload of a model body for the given format version.
// Versions other than 12 and 15 are stored in the clear and returned as is.
func (k Keys) Decrypt(version byte, payload []byte) ([]byte, error) {
	switch version {
	case 12:
		return DecryptXOR(payload), nil
	case 15:
		if !k.HasLEA {
			return nil, ErrNoKey
		}
		if len(payload)%16 != 0 {
			return nil, fmt.Errorf("crypto: lea payload of %d bytes is not block aligned", len(payload))
		}
		return DecryptLEA(payload, k.LEA), nil
	}
	return payload, nil
}
