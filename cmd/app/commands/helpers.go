// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/allisson/go-env"

	"github.com/allisson/ecdc/internal/app"
	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
	pseudonymService "github.com/allisson/ecdc/internal/pseudonym/service"
)

// Environment keys read by the engine commands.
const (
	EnvSecret       = "ECDC_SECRET"
	EnvTweak        = "ECDC_TWEAK"
	EnvKDF          = "ECDC_KDF"
	EnvIterations   = "ECDC_ITER"
	EnvSecretKMSKey = "ECDC_SECRET_KMS_KEY_URI"
)

// EngineFlags holds the engine flags given on the command line. A nil field
// means the flag was not set and the environment or default applies.
type EngineFlags struct {
	Secret     *string
	Tweak      *string
	KDF        *string
	Iterations *int
}

// ResolveEngineConfig resolves the engine configuration with precedence
// flag > environment > default. A secret read from the environment is
// unwrapped with kms when ECDC_SECRET_KMS_KEY_URI is set; a secret given by
// flag is always plaintext.
//
// The returned config is validated. A missing secret yields ErrMissingSecret.
func ResolveEngineConfig(
	ctx context.Context,
	flags EngineFlags,
	kms pseudonymService.KMSService,
) (pseudonymDomain.Config, error) {
	cfg := pseudonymDomain.Config{
		Tweak:      env.GetString(EnvTweak, pseudonymDomain.DefaultTweak),
		Iterations: pseudonymDomain.DefaultIterations,
	}

	if flags.Secret != nil {
		cfg.Secret = *flags.Secret
	} else {
		cfg.Secret = env.GetString(EnvSecret, "")
		if keyURI := env.GetString(EnvSecretKMSKey, ""); keyURI != "" && strings.TrimSpace(cfg.Secret) != "" {
			secret, err := kms.UnwrapSecret(ctx, keyURI, cfg.Secret)
			if err != nil {
				return pseudonymDomain.Config{}, fmt.Errorf("failed to unwrap %s: %w", EnvSecret, err)
			}
			cfg.Secret = secret
		}
	}

	if flags.Tweak != nil {
		cfg.Tweak = *flags.Tweak
	}

	kdfName := env.GetString(EnvKDF, string(pseudonymDomain.DefaultKDF))
	if flags.KDF != nil {
		kdfName = *flags.KDF
	}
	kdf, err := pseudonymDomain.ParseKDF(kdfName)
	if err != nil {
		return pseudonymDomain.Config{}, err
	}
	cfg.KDF = kdf

	if flags.Iterations != nil {
		cfg.Iterations = *flags.Iterations
	} else if raw, ok := os.LookupEnv(EnvIterations); ok {
		// go-env falls back to the default on parse errors, which would hide a typo.
		it, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return pseudonymDomain.Config{}, fmt.Errorf(
				"%w: invalid %s value %q", pseudonymDomain.ErrInvalidIterations, EnvIterations, raw,
			)
		}
		cfg.Iterations = it
	}

	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return pseudonymDomain.Config{}, err
	}
	return cfg, nil
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// writeOutput prints v as indented JSON when format is "json" and calls text otherwise.
func writeOutput(writer io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case "json":
		jsonBytes, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(writer, string(jsonBytes))
		return nil
	case "text", "":
		text(writer)
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
}
