package app

import (
	authService "github.com/allisson/ecdc/internal/auth/service"
)

// APITokenService returns the service that hashes and verifies API bearer tokens.
func (c *Container) APITokenService() authService.APITokenService {
	c.apiTokenServiceInit.Do(func() {
		c.apiTokenService = authService.NewAPITokenService()
	})
	return c.apiTokenService
}
