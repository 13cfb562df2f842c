package domain

import (
	"github.com/allisson/ecdc/internal/errors"
)

// Pseudonymization error definitions.
//
// The taxonomy separates configuration problems (fatal at construction time)
// from per-call problems. Callers distinguish them with errors.Is against
// either the specific sentinel or the base error from internal/errors.
var (
	// ErrMissingSecret indicates no secret passphrase was configured while
	// pseudonymization is enabled.
	ErrMissingSecret = errors.Kind(errors.ErrInvalidConfig, "secret must be non-empty")

	// ErrInvalidIterations indicates a non-positive KDF iteration count.
	ErrInvalidIterations = errors.Kind(errors.ErrInvalidConfig, "iterations must be positive")

	// ErrUnsupportedKDF indicates a hash choice other than sha256 or sha1.
	ErrUnsupportedKDF = errors.Kind(errors.ErrInvalidConfig, "unsupported kdf")

	// ErrOutOfDomain indicates an integer outside [0, 10^W) for the relevant
	// width, or a value with the wrong sign for the entity kind.
	//
	// The identifier is unusable; retrying with the same input never helps.
	ErrOutOfDomain = errors.Kind(errors.ErrInvalidInput, "value out of domain")

	// ErrInvalidFormat indicates a formatted identifier that does not contain
	// exactly the required number of digits once separators are stripped.
	ErrInvalidFormat = errors.Kind(errors.ErrInvalidInput, "invalid identifier format")

	// ErrUnsupportedChatReference indicates a chat reference that is neither
	// a 16-digit public identifier nor a parseable raw chat ID.
	ErrUnsupportedChatReference = errors.Kind(ErrInvalidFormat, "unsupported chat reference")

	// ErrSelfTestFailed indicates at least one self-test vector did not match.
	ErrSelfTestFailed = errors.New("self-test failed")
)
