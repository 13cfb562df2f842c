package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/ecdc/internal/config"
	apperrors "github.com/allisson/ecdc/internal/errors"
	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
)

func passThroughConfig() *config.Config {
	return &config.Config{
		LogLevel:   "error",
		ServerHost: "localhost",
		ServerPort: 0,
		ECDCTweak:  "default",
		ECDCKDF:    "sha256",
	}
}

func enabledConfig() *config.Config {
	cfg := passThroughConfig()
	cfg.IDEncryptionEnabled = true
	cfg.ECDCSecret = "qwerty123"
	cfg.ECDCTweak = "123"
	cfg.ECDCIterations = 1000
	return cfg
}

func TestNewContainer(t *testing.T) {
	cfg := passThroughConfig()

	container := NewContainer(cfg)

	require.NotNil(t, container)
	assert.Same(t, cfg, container.Config())
}

func TestContainerLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "invalid"} {
		container := NewContainer(&config.Config{LogLevel: level})

		logger := container.Logger()
		require.NotNil(t, logger, level)
		assert.Same(t, logger, container.Logger(), "expected same logger instance on multiple calls")
	}
}

func TestContainerPrepared_Disabled(t *testing.T) {
	container := NewContainer(passThroughConfig())

	prepared, err := container.Prepared()
	require.NoError(t, err)
	assert.Nil(t, prepared)

	bridge, err := container.IDBridge()
	require.NoError(t, err)
	assert.False(t, bridge.Enabled())

	uid, err := bridge.EncodeUser(context.Background(), 12345678)
	require.NoError(t, err)
	assert.Equal(t, "12345678", uid)
}

func TestContainerPrepared_Enabled(t *testing.T) {
	container := NewContainer(enabledConfig())

	prepared, err := container.Prepared()
	require.NoError(t, err)
	require.NotNil(t, prepared)
	assert.Equal(t, "123", prepared.Tweak())
	assert.Equal(t, 1000, prepared.Iterations())

	again, err := container.Prepared()
	require.NoError(t, err)
	assert.Same(t, prepared, again)

	bridge, err := container.IDBridge()
	require.NoError(t, err)
	assert.True(t, bridge.Enabled())

	uid, err := bridge.EncodeUser(context.Background(), 12345678)
	require.NoError(t, err)
	assert.Equal(t, "6579-3965-6179", uid)
}

func TestContainerPrepared_MissingSecret(t *testing.T) {
	cfg := enabledConfig()
	cfg.ECDCSecret = "   "
	container := NewContainer(cfg)

	_, err := container.Prepared()
	require.Error(t, err)
	assert.ErrorIs(t, err, pseudonymDomain.ErrMissingSecret)

	// The stored error is returned on subsequent calls.
	_, err = container.IDBridge()
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	_, err = container.HTTPServer()
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
}

func TestContainerPrepared_KMSWrappedSecret(t *testing.T) {
	ctx := context.Background()

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	keyURI := "base64key://" + base64.URLEncoding.EncodeToString(key)

	cfg := enabledConfig()
	cfg.ECDCSecretKMSKeyURI = keyURI
	container := NewContainer(cfg)

	wrapped, err := container.KMSService().WrapSecret(ctx, keyURI, "qwerty123")
	require.NoError(t, err)
	cfg.ECDCSecret = wrapped

	resolved, err := container.ResolvePseudonymConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "qwerty123", resolved.Secret)

	bridge, err := container.IDBridge()
	require.NoError(t, err)

	tid, err := bridge.DecodeUser(ctx, "6579-3965-6179")
	require.NoError(t, err)
	assert.Equal(t, int64(12345678), tid)
}

func TestContainerPrepared_KMSInvalidCiphertext(t *testing.T) {
	cfg := enabledConfig()
	cfg.ECDCSecretKMSKeyURI = "base64key://" + base64.URLEncoding.EncodeToString(make([]byte, 32))
	cfg.ECDCSecret = "not base64!"
	container := NewContainer(cfg)

	_, err := container.Prepared()
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
}

func TestContainerMetrics_Disabled(t *testing.T) {
	container := NewContainer(passThroughConfig())

	provider, err := container.MetricsProvider()
	require.NoError(t, err)
	assert.Nil(t, provider)

	businessMetrics, err := container.BusinessMetrics()
	require.NoError(t, err)
	assert.NotNil(t, businessMetrics)

	metricsServer, err := container.MetricsServer()
	require.NoError(t, err)
	assert.Nil(t, metricsServer)
}

func TestContainerMetrics_Enabled(t *testing.T) {
	cfg := passThroughConfig()
	cfg.MetricsEnabled = true
	cfg.MetricsNamespace = "ecdc_test"
	cfg.MetricsPort = 0
	container := NewContainer(cfg)

	provider, err := container.MetricsProvider()
	require.NoError(t, err)
	require.NotNil(t, provider)
	assert.Equal(t, "ecdc_test", provider.Namespace())

	metricsServer, err := container.MetricsServer()
	require.NoError(t, err)
	assert.NotNil(t, metricsServer)

	assert.NoError(t, container.Shutdown(context.Background()))
}

func TestContainerHTTPServer(t *testing.T) {
	cfg := passThroughConfig()
	cfg.RateLimitEnabled = true
	cfg.RateLimitRequestsPerSec = 10
	cfg.RateLimitBurst = 10
	container := NewContainer(cfg)

	server, err := container.HTTPServer()
	require.NoError(t, err)
	require.NotNil(t, server)

	again, err := container.HTTPServer()
	require.NoError(t, err)
	assert.Same(t, server, again)

	assert.NoError(t, container.Shutdown(context.Background()))
}

func TestContainerAPITokenService(t *testing.T) {
	container := NewContainer(passThroughConfig())

	service := container.APITokenService()
	require.NotNil(t, service)
	assert.Same(t, service, container.APITokenService())
}

func TestContainerShutdown_NothingInitialized(t *testing.T) {
	container := NewContainer(passThroughConfig())
	assert.NoError(t, container.Shutdown(context.Background()))
}
