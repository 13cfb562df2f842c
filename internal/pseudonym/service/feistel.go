package service

import (
	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
)

// Rounds is the fixed number of Feistel rounds for both domains.
const Rounds = 10

// Encrypt applies the keyed permutation to x within domain d.
//
// Each round computes F = prf(R) and moves (L, R) to (R, (L+F) mod 10^half).
// Returns ErrOutOfDomain when x is negative or >= 10^Width.
func Encrypt(key, tweak []byte, d pseudonymDomain.NumericDomain, x int64) (int64, error) {
	if err := d.Check(x); err != nil {
		return 0, err
	}

	m := d.HalfModulus()
	left, right := d.Split(uint64(x))
	for r := 0; r < Rounds; r++ {
		f := prf(key, tweak, byte(r), right, d)
		left, right = right, (left+f)%m
	}

	//nolint:gosec // result < 10^16 fits int64
	return int64(d.Join(left, right)), nil
}

// Decrypt is the exact inverse of Encrypt.
//
// Rounds run in reverse; each recomputes F from the unchanged half and
// subtracts it mod 10^half.
func Decrypt(key, tweak []byte, d pseudonymDomain.NumericDomain, y int64) (int64, error) {
	if err := d.Check(y); err != nil {
		return 0, err
	}

	m := d.HalfModulus()
	left, right := d.Split(uint64(y))
	for r := Rounds - 1; r >= 0; r-- {
		f := prf(key, tweak, byte(r), left, d)
		var newLeft uint64
		if right >= f {
			newLeft = right - f
		} else {
			newLeft = right + m - f
		}
		left, right = newLeft, left
	}

	//nolint:gosec // result < 10^16 fits int64
	return int64(d.Join(left, right)), nil
}
