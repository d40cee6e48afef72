package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ordersystem/internal/config"
	"ordersystem/internal/domain/model"
	"ordersystem/internal/infra/token"
	"ordersystem/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================
// レスポンス確認用
// =====================

type mwErrorResponse struct {
	Error string `json:"error"`
}

type mwOKResponse struct {
	OperatorID int64  `json:"operator_id"`
	Role       string `json:"role"`
}

// =====================
// helper
// =====================

func mustMakeJWT(t *testing.T, secret string, claims jwt.MapClaims, method jwt.SigningMethod) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func runRequest(t *testing.T, e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeMWError(t *testing.T, rec *httptest.ResponseRecorder) mwErrorResponse {
	t.Helper()
	var r mwErrorResponse
	_ = json.NewDecoder(rec.Body).Decode(&r)
	return r
}

func newProtected(cfg config.Config, mws ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	mws = append([]echo.MiddlewareFunc{middleware.AuthJWT(cfg)}, mws...)
	e.GET("/protected", func(c echo.Context) error {
		id, _ := middleware.OperatorID(c)
		role, _ := c.Get(middleware.CtxOperatorRoleKey).(string)
		return c.JSON(http.StatusOK, mwOKResponse{OperatorID: id, Role: role})
	}, mws...)
	return e
}

// =====================
// AuthJWT
// =====================

func TestMiddleware_AuthJWT_Unauthorized(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	future := time.Now().Add(time.Hour).Unix()

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"bad scheme", "Token abc.def.ghi"},
		{"empty token", "Bearer "},
		{"garbage", "Bearer not-a-jwt"},
		{"bad signature", "Bearer " + mustMakeJWT(t, "wrong-secret", jwt.MapClaims{"sub": "1", "role": "ADMIN", "exp": future}, jwt.SigningMethodHS256)},
		{"wrong alg", "Bearer " + mustMakeJWT(t, cfg.JWTSecret, jwt.MapClaims{"sub": "1", "role": "ADMIN", "exp": future}, jwt.SigningMethodHS512)},
		{"no exp", "Bearer " + mustMakeJWT(t, cfg.JWTSecret, jwt.MapClaims{"sub": "1", "role": "ADMIN"}, jwt.SigningMethodHS256)},
		{"expired", "Bearer " + mustMakeJWT(t, cfg.JWTSecret, jwt.MapClaims{"sub": "1", "role": "ADMIN", "exp": time.Now().Add(-time.Minute).Unix()}, jwt.SigningMethodHS256)},
		{"no role", "Bearer " + mustMakeJWT(t, cfg.JWTSecret, jwt.MapClaims{"sub": "1", "exp": future}, jwt.SigningMethodHS256)},
		{"bad sub", "Bearer " + mustMakeJWT(t, cfg.JWTSecret, jwt.MapClaims{"sub": "abc", "role": "ADMIN", "exp": future}, jwt.SigningMethodHS256)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := runRequest(t, newProtected(cfg), tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "unauthorized", decodeMWError(t, rec).Error)
		})
	}
}

// 発行したトークンがそのまま通る
func TestMiddleware_AuthJWT_Success_SetsContext(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	raw, _, err := token.NewJWTIssuer(cfg.JWTSecret, time.Minute).Issue(123, model.RoleStaff, time.Now())
	require.NoError(t, err)

	rec := runRequest(t, newProtected(cfg), "Bearer "+raw)
	require.Equal(t, http.StatusOK, rec.Code)

	var body mwOKResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(123), body.OperatorID)
	assert.Equal(t, "STAFF", body.Role)
}

// =====================
// RoleGuard
// =====================

func TestMiddleware_RoleGuard(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	issuer := token.NewJWTIssuer(cfg.JWTSecret, time.Minute)

	staff, _, err := issuer.Issue(1, model.RoleStaff, time.Now())
	require.NoError(t, err)
	admin, _, err := issuer.Issue(2, model.RoleAdmin, time.Now())
	require.NoError(t, err)

	adminOnly := newProtected(cfg, middleware.AdminRoleGuard())
	rec := runRequest(t, adminOnly, "Bearer "+staff)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", decodeMWError(t, rec).Error)

	rec = runRequest(t, adminOnly, "Bearer "+admin)
	assert.Equal(t, http.StatusOK, rec.Code)

	staffOrAdmin := newProtected(cfg, middleware.StaffRoleGuard())
	assert.Equal(t, http.StatusOK, runRequest(t, staffOrAdmin, "Bearer "+staff).Code)
	assert.Equal(t, http.StatusOK, runRequest(t, staffOrAdmin, "Bearer "+admin).Code)
}

// AuthJWT無しでGuardだけ => 401
func TestMiddleware_RoleGuard_MissingContext(t *testing.T) {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, middleware.AdminRoleGuard())

	rec := runRequest(t, e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeMWError(t, rec).Error)
}
