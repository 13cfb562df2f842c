// Package service provides API token generation and verification for the HTTP API.
//
// Tokens are random 32-byte values shown once to the operator. Only their
// Argon2id hash is configured on the server.
package service

// APITokenService defines operations for API bearer token generation and validation.
type APITokenService interface {
	// GenerateToken creates a new random token and its Argon2id hash.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken hashes a plain token with Argon2id.
	HashToken(plainToken string) (tokenHash string, err error)

	// CompareToken reports whether plainToken matches tokenHash. Constant time.
	CompareToken(plainToken string, tokenHash string) bool
}
