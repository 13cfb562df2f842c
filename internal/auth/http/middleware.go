// Package http provides HTTP middleware for API authentication and rate limiting.
package http

import (
	"crypto/sha256"
	"log/slog"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	authService "github.com/allisson/ecdc/internal/auth/service"
	apperrors "github.com/allisson/ecdc/internal/errors"
	"github.com/allisson/ecdc/internal/httputil"
)

// AuthenticationMiddleware requires a Bearer token matching tokenHash.
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer").
// Argon2id verification is expensive, so tokens that verified once are
// remembered by their SHA-256 digest for the lifetime of the middleware.
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Token does not match the configured hash → 401 Unauthorized
func AuthenticationMiddleware(
	tokenHash string,
	tokenService authService.APITokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	var verified sync.Map // map[[32]byte]struct{}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		plainToken := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if plainToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		digest := sha256.Sum256([]byte(plainToken))
		if _, ok := verified.Load(digest); !ok {
			if !tokenService.CompareToken(plainToken, tokenHash) {
				logger.Debug("authentication failed: invalid token")
				httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
				c.Abort()
				return
			}
			verified.Store(digest, struct{}{})
		}

		c.Next()
	}
}
