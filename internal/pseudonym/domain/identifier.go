package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// UserIdentity pairs a raw platform user ID with its public identifier.
type UserIdentity struct {
	TID int64  `json:"tid"`
	UID string `json:"uid"`
}

// FormatUser renders a user-domain value as XXXX-XXXX-XXXX.
func FormatUser(n int64) string {
	return groupDigits(padDigits(n, UserDomain.Width), "")
}

// FormatChat renders a chat-domain value as -XXXX-XXXX-XXXX-XXXX.
//
// The leading minus mirrors the platform convention for chat IDs and is
// purely presentational.
func FormatChat(n int64) string {
	return groupDigits(padDigits(n, ChatDomain.Width), "-")
}

// ParseUser extracts exactly 12 digits from s, ignoring every other rune.
func ParseUser(s string) (int64, error) {
	return parseDigits(s, UserDomain)
}

// ParseChat extracts exactly 16 digits from s, ignoring every other rune.
// A leading minus is not required and is not interpreted as a sign.
func ParseChat(s string) (int64, error) {
	return parseDigits(s, ChatDomain)
}

// NormalizeUser returns the canonical XXXX-XXXX-XXXX form of s.
func NormalizeUser(s string) (string, error) {
	n, err := ParseUser(s)
	if err != nil {
		return "", err
	}
	return FormatUser(n), nil
}

// NormalizeChat returns the canonical -XXXX-XXXX-XXXX-XXXX form of s.
func NormalizeChat(s string) (string, error) {
	n, err := ParseChat(s)
	if err != nil {
		return "", err
	}
	return FormatChat(n), nil
}

// StripDigits returns only the ASCII digits of s, in order.
func StripDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func parseDigits(s string, d NumericDomain) (int64, error) {
	digits := StripDigits(s)
	if len(digits) != d.Width {
		return 0, fmt.Errorf(
			"%s identifier must have exactly %d digits, got %d: %w",
			d.Name,
			d.Width,
			len(digits),
			ErrInvalidFormat,
		)
	}

	// Built digit by digit; no sign or locale handling.
	var n int64
	for i := 0; i < len(digits); i++ {
		n = n*10 + int64(digits[i]-'0')
	}
	return n, nil
}

func padDigits(n int64, width int) string {
	s := strconv.FormatInt(n, 10)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func groupDigits(s, prefix string) string {
	var b strings.Builder
	b.Grow(len(prefix) + len(s) + len(s)/4)
	b.WriteString(prefix)
	for i := 0; i < len(s); i += 4 {
		if i > 0 {
			b.WriteByte('-')
		}
		end := i + 4
		if end > len(s) {
			end = len(s)
		}
		b.WriteString(s[i:end])
	}
	return b.String()
}
