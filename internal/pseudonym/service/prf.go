package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strconv"

	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
)

// prf is the Feistel round function:
// HMAC-SHA256(key, tweak || round || ascii(right, zero-padded to HalfWidth))
// truncated to its first 8 bytes (little-endian) and reduced mod 10^HalfWidth.
//
// The modulo reduction is slightly biased toward small residues. Correcting it
// would change every published identifier, so it is kept as-is.
func prf(key, tweak []byte, round byte, right uint64, d pseudonymDomain.NumericDomain) uint64 {
	mac := hmac.New(sha256.New, key)
	mac.Write(tweak)
	mac.Write([]byte{round})
	mac.Write(paddedDecimal(right, d.HalfWidth))
	digest := mac.Sum(nil)

	return binary.LittleEndian.Uint64(digest[:8]) % d.HalfModulus()
}

// paddedDecimal renders v in base 10, left-padded with zeros to width digits.
func paddedDecimal(v uint64, width int) []byte {
	digits := strconv.AppendUint(make([]byte, 0, width), v, 10)
	if len(digits) >= width {
		return digits
	}

	out := make([]byte, width)
	pad := width - len(digits)
	for i := 0; i < pad; i++ {
		out[i] = '0'
	}
	copy(out[pad:], digits)
	return out
}
