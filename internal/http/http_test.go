package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/allisson/ecdc/internal/config"
	"github.com/allisson/ecdc/internal/metrics"
	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
	pseudonymHTTP "github.com/allisson/ecdc/internal/pseudonym/http"
	pseudonymUseCase "github.com/allisson/ecdc/internal/pseudonym/usecase"
)

// TestMain sets Gin to test mode and checks for leaked goroutines.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

// staticTokenService accepts exactly one plain token.
type staticTokenService struct {
	token string
}

func (s staticTokenService) GenerateToken() (string, string, error) { return s.token, "hash", nil }
func (s staticTokenService) HashToken(string) (string, error)       { return "hash", nil }
func (s staticTokenService) CompareToken(plain, hash string) bool {
	return plain == s.token && hash == "hash"
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestServer creates a server backed by a pass-through bridge.
func createTestServer() *Server {
	logger := discardLogger()
	return NewServer(pseudonymUseCase.NewIDBridge(nil, logger), "localhost", 0, logger)
}

// setupFullRouter wires every route the way the container does.
func setupFullRouter(t *testing.T, cfg *config.Config, provider *metrics.Provider) *Server {
	t.Helper()

	server := createTestServer()
	handler := pseudonymHTTP.NewPseudonymHandler(server.bridge, pseudonymDomain.AdminSet{"42"}, server.logger)
	server.SetupRouter(cfg, handler, staticTokenService{token: "s3cret"}, provider)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	})
	return server
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessHandler_Ready(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

	server.readinessHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ready", response["status"])
	assert.Equal(t, false, response["id_encryption_enabled"])

	components, ok := response["components"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", components["id_bridge"])
}

func TestReadinessHandler_NotReady_NilBridge(t *testing.T) {
	server := NewServer(nil, "localhost", 0, discardLogger())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

	server.readinessHandler(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "not_ready", response["status"])

	components, ok := response["components"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "error", components["id_bridge"])
}

func TestCustomLoggerMiddleware(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))
	router.POST("/v1/users/decode", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tid": 42})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/users/decode", strings.NewReader(`{"uid":"6579-3965-6179"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(buf.String()), &entry))
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "/v1/users/decode", entry["path"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, w.Header().Get("X-Request-Id"), entry["request_id"])
	assert.NotContains(t, buf.String(), "6579-3965-6179")
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestIDMiddleware_HeaderPresent(t *testing.T) {
	server := setupFullRouter(t, &config.Config{}, nil)

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	requestID := w.Header().Get("X-Request-Id")
	parsedUUID, err := uuid.Parse(requestID)
	require.NoError(t, err, "X-Request-Id should be a valid UUID")
	assert.Equal(t, uuid.Version(7), parsedUUID.Version())
}

func TestSetupRouter_PassThroughRoutes(t *testing.T) {
	server := setupFullRouter(t, &config.Config{}, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		want   string
	}{
		{"encode user", http.MethodPost, "/v1/users/encode", `{"tid":12345678}`, http.StatusOK, `{"uid":"12345678"}`},
		{"decode user", http.MethodPost, "/v1/users/decode", `{"uid":" 12345678 "}`, http.StatusOK, `{"tid":12345678}`},
		{"decode user invalid", http.MethodPost, "/v1/users/decode", `{"uid":"12-34"}`, http.StatusUnprocessableEntity, ""},
		{"encode chat", http.MethodPost, "/v1/chats/encode", `{"tgid":-100}`, http.StatusOK, `{"ugid":"-100"}`},
		{"resolve chat", http.MethodPost, "/v1/chats/resolve", `{"reference":"-100"}`, http.StatusOK, `{"tgid":-100}`},
		{"check admin", http.MethodPost, "/v1/admins/check", `{"tid":42}`, http.StatusOK, `{"is_admin":true}`},
		{"admin recipients", http.MethodGet, "/v1/admins/recipients", "", http.StatusOK, `{"recipients":[42]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			server.router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.want != "" {
				assert.JSONEq(t, tt.want, w.Body.String())
			}
		})
	}
}

func TestSetupRouter_Authentication(t *testing.T) {
	server := setupFullRouter(t, &config.Config{APITokenHash: "hash"}, nil)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer s3cret", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/users/encode", strings.NewReader(`{"tid":1}`))
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			server.router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	// Health endpoints stay public.
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_RateLimit(t *testing.T) {
	server := setupFullRouter(t, &config.Config{
		RateLimitEnabled:        true,
		RateLimitRequestsPerSec: 0.001,
		RateLimitBurst:          2,
	}, nil)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		server.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestSetupRouter_RecordsHTTPMetrics(t *testing.T) {
	provider, err := metrics.NewProvider("ecdc_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	server := setupFullRouter(t, &config.Config{}, provider)

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/users/encode", strings.NewReader(`{"tid":7}`)))
	require.Equal(t, http.StatusOK, w.Code)

	scrape := httptest.NewRecorder()
	provider.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, scrape.Body.String(), `path="/v1/users/encode"`)
}

func TestRouter_NotFoundEndpoint(t *testing.T) {
	server := setupFullRouter(t, &config.Config{}, nil)

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_StartWithoutRouter(t *testing.T) {
	server := createTestServer()
	assert.Error(t, server.Start(context.Background()))
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server := setupFullRouter(t, &config.Config{RateLimitEnabled: true, RateLimitRequestsPerSec: 10, RateLimitBurst: 10}, nil)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	assert.NoError(t, server.Shutdown(shutdownCtx))
	assert.NoError(t, <-errChan)
}

// TestMetricsServer_Endpoints tests the metrics server endpoints.
func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 0, discardLogger(), provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/users/encode", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestServer_NoMetricsEndpoint verifies the API router never serves /metrics.
func TestServer_NoMetricsEndpoint(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	server := setupFullRouter(t, &config.Config{}, provider)

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
