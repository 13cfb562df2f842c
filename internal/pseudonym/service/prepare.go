package service

import (
	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
)

// Prepared caches the derived key together with the tweak bytes.
//
// It is immutable once returned by Prepare and safe for concurrent use by any
// number of goroutines without further synchronization.
type Prepared struct {
	key        []byte
	tweakBytes []byte
	tweak      string
	kdf        pseudonymDomain.KDF
	iterations int
}

// Prepare normalizes and validates cfg, then runs key derivation exactly once.
func Prepare(cfg pseudonymDomain.Config) (*Prepared, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	key, err := DeriveKey(cfg.Secret, cfg.Tweak, cfg.KDF, cfg.Iterations)
	if err != nil {
		return nil, err
	}

	return &Prepared{
		key:        key,
		tweakBytes: []byte(cfg.Tweak),
		tweak:      cfg.Tweak,
		kdf:        cfg.KDF,
		iterations: cfg.Iterations,
	}, nil
}

// Tweak returns the domain-separation label the key was derived with.
func (p *Prepared) Tweak() string {
	return p.tweak
}

// KDF returns the PBKDF2 hash the key was derived with.
func (p *Prepared) KDF() pseudonymDomain.KDF {
	return p.kdf
}

// Iterations returns the PBKDF2 iteration count.
func (p *Prepared) Iterations() int {
	return p.iterations
}

// EncryptUser maps a TID to a UID integer on the 12-digit domain.
func (p *Prepared) EncryptUser(tid int64) (int64, error) {
	return Encrypt(p.key, p.tweakBytes, pseudonymDomain.UserDomain, tid)
}

// DecryptUser maps a UID integer back to its TID.
func (p *Prepared) DecryptUser(uid int64) (int64, error) {
	return Decrypt(p.key, p.tweakBytes, pseudonymDomain.UserDomain, uid)
}

// EncryptChat maps |TGID| to a UGID integer on the 16-digit domain.
func (p *Prepared) EncryptChat(n int64) (int64, error) {
	return Encrypt(p.key, p.tweakBytes, pseudonymDomain.ChatDomain, n)
}

// DecryptChat maps a UGID integer back to |TGID|.
func (p *Prepared) DecryptChat(n int64) (int64, error) {
	return Decrypt(p.key, p.tweakBytes, pseudonymDomain.ChatDomain, n)
}
