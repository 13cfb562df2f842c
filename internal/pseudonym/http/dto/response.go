package dto

import (
	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
)

// PublicUserResponse contains a public user identifier.
type PublicUserResponse struct {
	UID string `json:"uid"`
}

// UserIDResponse contains a raw platform user ID.
type UserIDResponse struct {
	TID int64 `json:"tid"`
}

// IdentityResponse pairs a raw user ID with its public identifier.
type IdentityResponse struct {
	TID int64  `json:"tid"`
	UID string `json:"uid"`
}

// MapIdentityToResponse converts a domain identity to an API response.
func MapIdentityToResponse(identity pseudonymDomain.UserIdentity) IdentityResponse {
	return IdentityResponse{
		TID: identity.TID,
		UID: identity.UID,
	}
}

// PublicChatResponse contains a public chat identifier.
type PublicChatResponse struct {
	UGID string `json:"ugid"`
}

// ChatIDResponse contains a raw platform chat ID.
type ChatIDResponse struct {
	TGID int64 `json:"tgid"`
}

// ResolveChatResponse contains the resolved chat ID, or null when no reference was given.
type ResolveChatResponse struct {
	TGID *int64 `json:"tgid"`
}

// AdminCheckResponse reports whether a user is in the configured admin set.
type AdminCheckResponse struct {
	IsAdmin bool `json:"is_admin"`
}

// AdminRecipientsResponse lists the raw user IDs of the configured admins.
type AdminRecipientsResponse struct {
	Recipients []int64 `json:"recipients"`
}

// MapRecipientsToResponse converts recipients to an API response. A nil slice
// is rendered as an empty JSON array.
func MapRecipientsToResponse(recipients []int64) AdminRecipientsResponse {
	if recipients == nil {
		recipients = []int64{}
	}
	return AdminRecipientsResponse{Recipients: recipients}
}
