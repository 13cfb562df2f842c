package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	pseudonymService "github.com/allisson/ecdc/internal/pseudonym/service"
)

// RunWrapSecret encrypts the pseudonymization passphrase with the KMS key at
// keyURI and prints the value to store in ECDC_SECRET.
//
// Supported KMS providers: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func RunWrapSecret(
	ctx context.Context,
	kmsService pseudonymService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	keyURI string,
	secret string,
) error {
	if strings.TrimSpace(keyURI) == "" {
		return errors.New("--kms-key-uri is required")
	}
	if strings.TrimSpace(secret) == "" {
		return errors.New("--secret is required")
	}

	logger.Info("wrapping secret with KMS", slog.String("kms_provider", kmsProvider(keyURI)))

	wrapped, err := kmsService.WrapSecret(ctx, keyURI, secret)
	if err != nil {
		return err
	}

	// Verify the round trip before handing the value to the operator.
	unwrapped, err := kmsService.UnwrapSecret(ctx, keyURI, wrapped)
	if err != nil {
		return fmt.Errorf("failed to verify wrapped secret: %w", err)
	}
	if unwrapped != secret {
		return errors.New("wrapped secret did not round trip")
	}

	_, _ = fmt.Fprintf(writer, "%s=%s\n", EnvSecretKMSKey, keyURI)
	_, _ = fmt.Fprintf(writer, "%s=%s\n", EnvSecret, wrapped)
	return nil
}

// kmsProvider returns the URI scheme, never the key material.
func kmsProvider(keyURI string) string {
	scheme, _, found := strings.Cut(keyURI, "://")
	if !found {
		return "unknown"
	}
	return scheme
}
