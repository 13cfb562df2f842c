package app

import (
	"context"
	"fmt"
	"log/slog"

	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
	pseudonymHTTP "github.com/allisson/ecdc/internal/pseudonym/http"
	pseudonymService "github.com/allisson/ecdc/internal/pseudonym/service"
	pseudonymUseCase "github.com/allisson/ecdc/internal/pseudonym/usecase"
)

// KMSService returns the KMS service used to unwrap ECDC_SECRET.
func (c *Container) KMSService() pseudonymService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = pseudonymService.NewKMSService()
	})
	return c.kmsService
}

// Prepared returns the derived key context, or nil when ID encryption is
// disabled. Key derivation runs once per container.
func (c *Container) Prepared() (*pseudonymService.Prepared, error) {
	var err error
	c.preparedInit.Do(func() {
		c.prepared, err = c.initPrepared()
		if err != nil {
			c.initErrors["prepared"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["prepared"]; exists {
		return nil, storedErr
	}
	return c.prepared, nil
}

// IDBridge returns the ID bridge, wrapped with metrics when enabled.
func (c *Container) IDBridge() (pseudonymUseCase.IDBridge, error) {
	var err error
	c.idBridgeInit.Do(func() {
		c.idBridge, err = c.initIDBridge()
		if err != nil {
			c.initErrors["idBridge"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["idBridge"]; exists {
		return nil, storedErr
	}
	return c.idBridge, nil
}

// PseudonymHandler returns the HTTP handler for the pseudonym endpoints.
func (c *Container) PseudonymHandler() (*pseudonymHTTP.PseudonymHandler, error) {
	var err error
	c.pseudonymHandlerInit.Do(func() {
		c.pseudonymHandler, err = c.initPseudonymHandler()
		if err != nil {
			c.initErrors["pseudonymHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["pseudonymHandler"]; exists {
		return nil, storedErr
	}
	return c.pseudonymHandler, nil
}

// ResolvePseudonymConfig returns the key derivation settings with the secret
// unwrapped through KMS when ECDC_SECRET_KMS_KEY_URI is set.
func (c *Container) ResolvePseudonymConfig(ctx context.Context) (pseudonymDomain.Config, error) {
	cfg := c.config.PseudonymConfig()
	if c.config.ECDCSecretKMSKeyURI == "" {
		return cfg, nil
	}

	secret, err := c.KMSService().UnwrapSecret(ctx, c.config.ECDCSecretKMSKeyURI, cfg.Secret)
	if err != nil {
		return pseudonymDomain.Config{}, fmt.Errorf("failed to unwrap ECDC_SECRET: %w", err)
	}
	cfg.Secret = secret
	return cfg, nil
}

// initPrepared derives the key when ID encryption is enabled.
func (c *Container) initPrepared() (*pseudonymService.Prepared, error) {
	if !c.config.IDEncryptionEnabled {
		return nil, nil
	}

	cfg, err := c.ResolvePseudonymConfig(context.Background())
	if err != nil {
		return nil, err
	}

	prepared, err := pseudonymService.Prepare(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare pseudonymization context: %w", err)
	}

	c.Logger().Info("id encryption enabled",
		slog.String("tweak", prepared.Tweak()),
		slog.String("kdf", string(prepared.KDF())),
		slog.Int("iterations", prepared.Iterations()),
	)
	return prepared, nil
}

// initIDBridge creates the ID bridge with all its dependencies.
func (c *Container) initIDBridge() (pseudonymUseCase.IDBridge, error) {
	prepared, err := c.Prepared()
	if err != nil {
		return nil, fmt.Errorf("failed to get prepared context for id bridge: %w", err)
	}

	baseBridge := pseudonymUseCase.NewIDBridge(prepared, c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for id bridge: %w", err)
		}
		return pseudonymUseCase.NewIDBridgeWithMetrics(baseBridge, businessMetrics), nil
	}

	return baseBridge, nil
}

// initPseudonymHandler creates the pseudonym HTTP handler.
func (c *Container) initPseudonymHandler() (*pseudonymHTTP.PseudonymHandler, error) {
	bridge, err := c.IDBridge()
	if err != nil {
		return nil, fmt.Errorf("failed to get id bridge for pseudonym handler: %w", err)
	}

	return pseudonymHTTP.NewPseudonymHandler(bridge, c.config.AdminSet(), c.Logger()), nil
}
