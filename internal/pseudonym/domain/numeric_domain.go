package domain

import (
	"fmt"
)

// NumericDomain is the closed interval [0, 10^Width) split at the midpoint
// into two halves of HalfWidth decimal digits each.
type NumericDomain struct {
	Name      string
	Width     int
	HalfWidth int
}

// The two supported domains. Round count and algorithm shape are shared;
// only the widths differ.
var (
	// UserDomain holds platform user identifiers (TID/UID).
	UserDomain = NumericDomain{Name: "user", Width: 12, HalfWidth: 6}

	// ChatDomain holds the absolute value of platform group/chat identifiers (TGID/UGID).
	ChatDomain = NumericDomain{Name: "chat", Width: 16, HalfWidth: 8}
)

// Size returns 10^Width, the number of values in the domain.
func (d NumericDomain) Size() uint64 {
	return pow10(d.Width)
}

// HalfModulus returns 10^HalfWidth, the modulus of each half.
func (d NumericDomain) HalfModulus() uint64 {
	return pow10(d.HalfWidth)
}

// Contains reports whether 0 <= x < 10^Width.
func (d NumericDomain) Contains(x int64) bool {
	return x >= 0 && uint64(x) < d.Size()
}

// Check returns ErrOutOfDomain when x is not in the domain.
func (d NumericDomain) Check(x int64) error {
	if !d.Contains(x) {
		return fmt.Errorf("%s value must be in [0, 10^%d), got %d: %w", d.Name, d.Width, x, ErrOutOfDomain)
	}
	return nil
}

// Split divides x into its left and right halves.
func (d NumericDomain) Split(x uint64) (left, right uint64) {
	m := d.HalfModulus()
	return x / m, x % m
}

// Join is the inverse of Split.
func (d NumericDomain) Join(left, right uint64) uint64 {
	return left*d.HalfModulus() + right
}

func pow10(n int) uint64 {
	v := uint64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}
