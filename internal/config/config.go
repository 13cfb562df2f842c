// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"

	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ShutdownTimeout bounds graceful shutdown of the HTTP servers.
	ShutdownTimeout time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// IDEncryptionEnabled turns pseudonymization on. When false the ID bridge
	// passes raw identifiers through unchanged.
	IDEncryptionEnabled bool
	// ECDCSecret is the passphrase keys are derived from. When ECDCSecretKMSKeyURI
	// is set it holds base64 KMS ciphertext instead of the plain passphrase.
	ECDCSecret string
	// ECDCTweak is the domain-separation label.
	ECDCTweak string
	// ECDCKDF is the PBKDF2 hash ("sha256" or "sha1").
	ECDCKDF string
	// ECDCIterations is the PBKDF2 iteration count.
	ECDCIterations int
	// ECDCSecretKMSKeyURI is the gocloud.dev/secrets key used to unwrap ECDCSecret.
	ECDCSecretKMSKeyURI string

	// AdminIDs is a comma-separated list of admin identifiers, in public form
	// when ID encryption is enabled.
	AdminIDs string
	// LogChannelID is the log channel reference, raw or public form.
	LogChannelID string

	// APITokenHash is the Argon2id hash of the HTTP API bearer token.
	// The API is unauthenticated when empty.
	APITokenHash string

	// RateLimitEnabled indicates whether per-IP rate limiting is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost:      env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:      env.GetInt("SERVER_PORT", 8080),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Pseudonymization
		IDEncryptionEnabled: env.GetBool("ID_ENCRYPTION_ENABLED", false),
		ECDCSecret:          env.GetString("ECDC_SECRET", ""),
		ECDCTweak:           env.GetString("ECDC_TWEAK", pseudonymDomain.DefaultTweak),
		ECDCKDF:             env.GetString("ECDC_KDF", string(pseudonymDomain.DefaultKDF)),
		ECDCIterations:      env.GetInt("ECDC_ITER", pseudonymDomain.DefaultIterations),
		ECDCSecretKMSKeyURI: env.GetString("ECDC_SECRET_KMS_KEY_URI", ""),

		// Identifier references
		AdminIDs:     env.GetString("ADMIN_IDS", ""),
		LogChannelID: env.GetString("LOG_CHANNEL_ID", ""),

		// API authentication
		APITokenHash: env.GetString("API_TOKEN_HASH", ""),

		// Rate Limiting (IP-based)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 50.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 100),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "ecdc"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// PseudonymConfig returns the key derivation settings. The secret is returned
// as configured, which is ciphertext when ECDCSecretKMSKeyURI is set.
func (c *Config) PseudonymConfig() pseudonymDomain.Config {
	return pseudonymDomain.Config{
		Secret:     c.ECDCSecret,
		Tweak:      c.ECDCTweak,
		KDF:        pseudonymDomain.KDF(c.ECDCKDF),
		Iterations: c.ECDCIterations,
	}
}

// AdminSet returns the parsed ADMIN_IDS list.
func (c *Config) AdminSet() pseudonymDomain.AdminSet {
	return pseudonymDomain.ParseAdminSet(c.AdminIDs)
}

// LogChannelReference returns nil when no log channel is configured.
func (c *Config) LogChannelReference() *string {
	ref := strings.TrimSpace(c.LogChannelID)
	if ref == "" {
		return nil
	}
	return &ref
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	if c.LogLevel == "debug" {
		return "debug"
	}
	return "release"
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
