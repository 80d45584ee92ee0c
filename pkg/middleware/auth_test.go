package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = &JWTConfig{Secret: "test-secret", Issuer: "hotel-booking", TTL: time.Hour}

func setupAuthRouter(cfg *JWTConfig, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTMiddleware(cfg))
	handlers := []gin.HandlerFunc{}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := GetUserID(c)
		username, _ := GetUsername(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "username": username, "role": c.GetString(ContextKeyRole)})
	})
	router.GET("/protected", handlers...)
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestSignAndParseToken(t *testing.T) {
	token, expiresAt, err := SignToken(testJWT, "u-1", "alex.petrov", "USER")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseToken(testJWT, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "alex.petrov", claims.Subject)
	assert.Equal(t, "USER", claims.Role)
}

func TestParseToken_Rejects(t *testing.T) {
	valid, _, err := SignToken(testJWT, "u-1", "alex.petrov", "USER")
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "u-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alex.petrov",
			Issuer:    testJWT.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredToken, err := expired.SignedString([]byte(testJWT.Secret))
	require.NoError(t, err)

	noSubject, _, err := SignToken(testJWT, "u-1", "", "USER")
	require.NoError(t, err)

	tests := []struct {
		name  string
		cfg   *JWTConfig
		token string
	}{
		{"wrong secret", &JWTConfig{Secret: "other", Issuer: testJWT.Issuer}, valid},
		{"wrong issuer", &JWTConfig{Secret: testJWT.Secret, Issuer: "someone-else"}, valid},
		{"expired", testJWT, expiredToken},
		{"garbage", testJWT, "not-a-token"},
		{"missing subject", testJWT, noSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.cfg, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestJWTMiddleware(t *testing.T) {
	token, _, err := SignToken(testJWT, "u-1", "alex.petrov", "USER")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"bad token", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}

	router := setupAuthRouter(testJWT)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"username":"alex.petrov"`)
			}
		})
	}
}

func TestJWTMiddleware_SkipPaths(t *testing.T) {
	cfg := &JWTConfig{Secret: testJWT.Secret, Issuer: testJWT.Issuer, SkipPaths: []string{"/health"}}
	router := setupAuthRouter(cfg)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole(t *testing.T) {
	userToken, _, _ := SignToken(testJWT, "u-1", "alex.petrov", "USER")
	adminToken, _, _ := SignToken(testJWT, "u-2", "hotel.manager", "ADMIN")

	router := setupAuthRouter(testJWT, "ADMIN")

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"admin allowed", adminToken, http.StatusOK},
		{"user forbidden", userToken, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireRole_WithoutAuthentication(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin", RequireRole("ADMIN"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
