// Package service implements the keyed format-preserving permutation: key
// derivation, the HMAC round function and the Feistel network over the two
// numeric domains.
package service

import (
	"crypto/sha1" //nolint:gosec // selectable legacy PBKDF2 hash, not used for integrity
	"crypto/sha256"
	"fmt"
	"hash"

	"golang.org/x/crypto/pbkdf2"

	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
)

// DeriveKey runs PBKDF2 over the secret with salt SaltPrefix+tweak and
// returns a 32-byte key.
//
// The same tweak later feeds the round function, so a tweak change alters
// both the salt and the PRF input.
func DeriveKey(secret, tweak string, kdf pseudonymDomain.KDF, iterations int) ([]byte, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("%w: got %d", pseudonymDomain.ErrInvalidIterations, iterations)
	}

	h, err := hashFor(kdf)
	if err != nil {
		return nil, err
	}

	salt := []byte(pseudonymDomain.SaltPrefix + tweak)
	return pbkdf2.Key([]byte(secret), salt, iterations, pseudonymDomain.KeySize, h), nil
}

func hashFor(kdf pseudonymDomain.KDF) (func() hash.Hash, error) {
	switch kdf {
	case pseudonymDomain.KDFSHA256:
		return sha256.New, nil
	case pseudonymDomain.KDFSHA1:
		return sha1.New, nil
	default:
		return nil, fmt.Errorf("%w: %q", pseudonymDomain.ErrUnsupportedKDF, kdf)
	}
}
