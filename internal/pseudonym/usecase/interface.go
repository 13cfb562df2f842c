// Package usecase defines the ID bridge that the rest of the system uses to
// convert raw platform identifiers into public pseudonyms and back.
//
// The bridge is constructed once at startup from a prepared key context and is
// safe to share between goroutines. When built without a prepared context it
// runs in pass-through mode and leaves identifiers in their raw decimal form.
package usecase

import (
	"context"

	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
)

// IDBridge defines the pseudonymization operations exposed to callers.
type IDBridge interface {
	// Enabled reports whether identifiers are pseudonymized.
	Enabled() bool

	// EncodeUser converts a raw user ID (TID) to its public form (UID).
	EncodeUser(ctx context.Context, tid int64) (string, error)

	// DecodeUser converts a public user identifier back to the raw user ID.
	DecodeUser(ctx context.Context, uid string) (int64, error)

	// NormalizeUser returns the canonical form of a user identifier.
	NormalizeUser(ctx context.Context, uid string) (string, error)

	// BuildIdentity pairs tid with its public identifier.
	BuildIdentity(ctx context.Context, tid int64) (pseudonymDomain.UserIdentity, error)

	// EncodeChat converts a negative platform chat ID (TGID) to its public form (UGID).
	EncodeChat(ctx context.Context, tgid int64) (string, error)

	// DecodeChat converts a public chat identifier back to the negative chat ID.
	DecodeChat(ctx context.Context, ugid string) (int64, error)

	// IsAdmin reports whether tid belongs to the configured admin set.
	IsAdmin(ctx context.Context, tid int64, admins pseudonymDomain.AdminSet) bool

	// ResolveChatReference converts a configured chat reference, given either as
	// a raw chat ID or a 16-digit public identifier, to a platform chat ID.
	// A nil reference resolves to nil.
	ResolveChatReference(ctx context.Context, reference *string) (*int64, error)

	// ResolveAdminRecipients maps every admin entry to a raw user ID, skipping
	// entries that fail to resolve.
	ResolveAdminRecipients(ctx context.Context, admins pseudonymDomain.AdminSet) []int64
}
