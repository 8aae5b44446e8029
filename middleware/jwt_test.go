package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initJWTTestConfig() {
	config.GlobalConfig = &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "test-jwt-secret-key"},
	}
}

func TestGenerateToken(t *testing.T) {
	initJWTTestConfig()
	defer func() { config.GlobalConfig = nil }()

	InitJWT(config.GlobalConfig)

	token, err := GenerateToken(1, "testuser", 24*time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, len(token), 20)

	// 可解析
	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "testuser", claims.Username)
}

func TestParseToken_Rejects(t *testing.T) {
	initJWTTestConfig()
	defer func() { config.GlobalConfig = nil }()
	InitJWT(config.GlobalConfig)

	// 非 HS256 签名的令牌
	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: 1, Username: "x"})
	wrongAlg, err := hs512.SignedString(jwtSecret)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":     "",
		"garbage":   "not.a.valid.jwt",
		"bad alg":   "eyJhbGciOiJmb29iIn0.xxxx.yyyy",
		"hs512":     wrongAlg,
		"two parts": "abc.def",
	} {
		_, err := ParseToken(token)
		assert.Error(t, err, name)
	}
}

func TestJWTAuth(t *testing.T) {
	initJWTTestConfig()
	defer func() { config.GlobalConfig = nil }()
	InitJWT(config.GlobalConfig)
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(JWTAuth())
	router.GET("/ledger", func(c *gin.Context) {
		c.String(http.StatusOK, "%d:%s", GetCurrentUserID(c), GetCurrentUsername(c))
	})

	valid, err := GenerateToken(42, "alice", time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken(42, "alice", -time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{"missing", "", http.StatusUnauthorized, "请先登录"},
		{"basic scheme", "Basic xyz", http.StatusUnauthorized, "请先登录"},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, "请先登录"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "登录已失效"},
		{"valid", "Bearer " + valid, http.StatusOK, "42:alice"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ledger", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.code, w.Code)
			assert.Contains(t, w.Body.String(), tc.body)
		})
	}
}

func TestGetCurrentUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, uint(0), GetCurrentUserID(c))

	c.Set("userID", uint(99))
	assert.Equal(t, uint(99), GetCurrentUserID(c))
}

func TestParseToken_ExpiredAndForeignSecret(t *testing.T) {
	initJWTTestConfig()
	defer func() { config.GlobalConfig = nil }()
	InitJWT(config.GlobalConfig)

	expired, err := GenerateToken(1, "old", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired)
	assert.Error(t, err)

	// 其他密钥签发的令牌
	InitJWT(&config.Config{JWT: config.JWTConfig{Secret: "another-secret"}})
	foreign, err := GenerateToken(1, "mallory", time.Hour)
	require.NoError(t, err)
	InitJWT(config.GlobalConfig)
	_, err = ParseToken(foreign)
	assert.Error(t, err)

	// 缺少用户 ID
	anonymous, err := GenerateToken(0, "nobody", time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(anonymous)
	assert.Error(t, err)
}

func TestGetCurrentUsername(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "", GetCurrentUsername(c))
	c.Set("username", "alice")
	assert.Equal(t, "alice", GetCurrentUsername(c))
}
