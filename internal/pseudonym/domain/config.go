// Package domain defines the core pseudonymization models: engine configuration,
// the two numeric domains, and the external identifier formats.
package domain

import (
	"fmt"
	"strings"
)

// KDF selects the hash used by PBKDF2 during key derivation.
//
// The round function always uses HMAC-SHA256 regardless of this choice; the
// KDF only affects how the 32-byte key is derived from the passphrase.
type KDF string

const (
	// KDFSHA256 derives the key with PBKDF2-HMAC-SHA256 (default).
	KDFSHA256 KDF = "sha256"

	// KDFSHA1 derives the key with PBKDF2-HMAC-SHA1.
	KDFSHA1 KDF = "sha1"
)

// Engine defaults.
const (
	DefaultTweak      = "default"
	DefaultKDF        = KDFSHA256
	DefaultIterations = 200_000

	// KeySize is the length in bytes of the derived key.
	KeySize = 32

	// SaltPrefix binds every derived key to its tweak. Changing it changes
	// every public identifier ever produced.
	SaltPrefix = "fpe-uid-12|"
)

// ParseKDF converts a case-insensitive hash name into a KDF.
func ParseKDF(s string) (KDF, error) {
	switch KDF(strings.ToLower(strings.TrimSpace(s))) {
	case KDFSHA256:
		return KDFSHA256, nil
	case KDFSHA1:
		return KDFSHA1, nil
	default:
		return "", fmt.Errorf("%w: %q (allowed: sha256|sha1)", ErrUnsupportedKDF, s)
	}
}

// String returns the string representation of the KDF.
func (k KDF) String() string {
	return string(k)
}

// Config holds the parameters a Prepared context is derived from.
//
// A Config is treated as immutable once passed to Prepare. Two configs that
// differ only in Tweak produce unrelated permutations.
type Config struct {
	Secret     string
	Tweak      string
	KDF        KDF
	Iterations int
}

// NewConfig returns a Config with default tweak, KDF and iteration count.
func NewConfig(secret string) Config {
	return Config{
		Secret:     secret,
		Tweak:      DefaultTweak,
		KDF:        DefaultKDF,
		Iterations: DefaultIterations,
	}
}

// Normalize returns a copy with surrounding whitespace trimmed from the secret
// and tweak, an empty tweak replaced by DefaultTweak and the KDF lower-cased.
func (c Config) Normalize() Config {
	n := Config{
		Secret:     strings.TrimSpace(c.Secret),
		Tweak:      strings.TrimSpace(c.Tweak),
		KDF:        KDF(strings.ToLower(strings.TrimSpace(string(c.KDF)))),
		Iterations: c.Iterations,
	}
	if n.Tweak == "" {
		n.Tweak = DefaultTweak
	}
	if n.KDF == "" {
		n.KDF = DefaultKDF
	}
	return n
}

// Validate reports the first configuration error, if any.
func (c Config) Validate() error {
	if c.Secret == "" {
		return ErrMissingSecret
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidIterations, c.Iterations)
	}
	if _, err := ParseKDF(string(c.KDF)); err != nil {
		return err
	}
	return nil
}
