package router

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T, maxRequests int) *gin.Engine {
	t.Helper()
	cfg := &config.Config{
		Server:    config.ServerConfig{Mode: gin.TestMode},
		JWT:       config.JWTConfig{Secret: "router-test-secret"},
		RateLimit: config.RateLimitConfig{MaxRequests: maxRequests, Window: time.Minute},
	}
	middleware.InitJWT(cfg)

	db, err := database.Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "router_test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	oldDB := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = oldDB
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return SetupRouter(cfg, nil)
}

func serve(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSetupRouter_PublicRoutes(t *testing.T) {
	r := setupTestRouter(t, 10)

	w := serve(r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")

	w = serve(r, http.MethodGet, "/swagger/doc.json", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/accounts")
}

func TestSetupRouter_CORSPreflight(t *testing.T) {
	r := setupTestRouter(t, 10)

	w := serve(r, http.MethodOptions, "/api/v1/accounts", "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestSetupRouter_RequiresToken(t *testing.T) {
	r := setupTestRouter(t, 10)

	for _, path := range []string{"/api/v1/accounts", "/api/v1/dashboard", "/api/v1/export/transactions"} {
		w := serve(r, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := serve(r, http.MethodGet, "/api/v1/accounts", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetupRouter_ProvisionsUserOnFirstRequest(t *testing.T) {
	r := setupTestRouter(t, 10)
	token, err := middleware.GenerateToken(42, "alice", time.Hour)
	require.NoError(t, err)

	w := serve(r, http.MethodGet, "/api/v1/settings", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "alice")

	w = serve(r, http.MethodGet, "/api/v1/accounts", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_RateLimitsWrites(t *testing.T) {
	r := setupTestRouter(t, 2)
	token, err := middleware.GenerateToken(7, "bob", time.Hour)
	require.NoError(t, err)

	// 参数错误的写请求同样计数
	for i := 0; i < 2; i++ {
		w := serve(r, http.MethodPost, "/api/v1/accounts", token, `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	w := serve(r, http.MethodPost, "/api/v1/accounts", token, `{}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// 读请求不受影响
	w = serve(r, http.MethodGet, "/api/v1/accounts", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
