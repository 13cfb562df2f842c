package commands

import (
	"fmt"
	"io"
	"log/slog"

	authService "github.com/allisson/ecdc/internal/auth/service"
)

type apiTokenOutput struct {
	Token string `json:"token"`
	Hash  string `json:"hash"`
}

// RunHashAPIToken generates a new API bearer token and prints it with its
// Argon2id hash. When plainToken is non-empty it is hashed instead of
// generating a fresh one.
func RunHashAPIToken(
	tokenService authService.APITokenService,
	logger *slog.Logger,
	writer io.Writer,
	plainToken string,
	format string,
) error {
	var (
		hash string
		err  error
	)
	if plainToken == "" {
		plainToken, hash, err = tokenService.GenerateToken()
	} else {
		hash, err = tokenService.HashToken(plainToken)
	}
	if err != nil {
		return fmt.Errorf("failed to hash API token: %w", err)
	}

	logger.Debug("api token hashed")

	output := apiTokenOutput{Token: plainToken, Hash: hash}
	return writeOutput(writer, format, output, func(w io.Writer) {
		_, _ = fmt.Fprintf(w, "Token: %s\n", output.Token)
		_, _ = fmt.Fprintf(w, "API_TOKEN_HASH=%s\n", output.Hash)
		_, _ = fmt.Fprintln(w, "\nIMPORTANT: The token is shown only once. Store it securely.")
	})
}
