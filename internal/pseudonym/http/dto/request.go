// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/ecdc/internal/validation"
)

// maxIdentifierLength bounds identifier strings accepted by the API. It leaves room
// for generous separators around the 16 digits of the widest public form.
const maxIdentifierLength = 64

// UserIDRequest carries a raw platform user ID.
type UserIDRequest struct {
	TID *int64 `json:"tid"`
}

// Validate checks if the user ID request is valid.
func (r *UserIDRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TID, validation.NotNil),
	)
}

// PublicUserRequest carries a public user identifier (UID).
type PublicUserRequest struct {
	UID string `json:"uid"`
}

// Validate checks if the public user request is valid.
func (r *PublicUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UID,
			validation.Required,
			customValidation.NotBlank,
			customValidation.ContainsDigit,
			customValidation.MaxLength(maxIdentifierLength),
		),
	)
}

// ChatIDRequest carries a raw platform chat ID.
type ChatIDRequest struct {
	TGID *int64 `json:"tgid"`
}

// Validate checks if the chat ID request is valid.
func (r *ChatIDRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TGID, validation.NotNil),
	)
}

// PublicChatRequest carries a public chat identifier (UGID).
type PublicChatRequest struct {
	UGID string `json:"ugid"`
}

// Validate checks if the public chat request is valid.
func (r *PublicChatRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UGID,
			validation.Required,
			customValidation.NotBlank,
			customValidation.ContainsDigit,
			customValidation.MaxLength(maxIdentifierLength),
		),
	)
}

// ResolveChatRequest carries a configured chat reference. A null reference is
// valid and resolves to a null chat ID.
type ResolveChatRequest struct {
	Reference *string `json:"reference"`
}

// Validate checks if the resolve chat request is valid.
func (r *ResolveChatRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Reference, customValidation.MaxLength(maxIdentifierLength)),
	)
}
