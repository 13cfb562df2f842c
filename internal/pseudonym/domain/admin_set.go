package domain

import (
	"strings"
)

// AdminSet is the configured list of administrator identifiers.
//
// When pseudonymization is enabled the entries are expected in public (UID)
// form; otherwise they are raw decimal TIDs.
type AdminSet []string

// ParseAdminSet splits a comma-separated list, dropping blank entries.
func ParseAdminSet(raw string) AdminSet {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	set := make(AdminSet, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			set = append(set, trimmed)
		}
	}
	return set
}

// Contains reports whether id matches any entry exactly after trimming.
func (s AdminSet) Contains(id string) bool {
	for _, entry := range s {
		if strings.TrimSpace(entry) == id {
			return true
		}
	}
	return false
}

// ContainsUID reports whether uid matches any entry holding the same 12 digits,
// regardless of how the entry is separated.
func (s AdminSet) ContainsUID(uid string) bool {
	want := StripDigits(uid)
	for _, entry := range s {
		digits := StripDigits(entry)
		if len(digits) == UserDomain.Width && digits == want {
			return true
		}
	}
	return false
}
