package middleware

import (
	"net/http"
	"strings"

	"ordersystem/internal/config"
	"ordersystem/internal/infra/token"

	"github.com/labstack/echo/v4"
)

const (
	CtxOperatorIDKey   = "operator_id"   // int64
	CtxOperatorRoleKey = "operator_role" // string
)

// Authorization: Bearer <jwt> を検証してオペレーターをcontextに載せる
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				return unauthorized(c)
			}

			claims, err := token.Parse(cfg.JWTSecret, raw)
			if err != nil {
				return unauthorized(c)
			}
			operatorID, err := claims.OperatorID()
			if err != nil {
				return unauthorized(c)
			}

			c.Set(CtxOperatorIDKey, operatorID)
			c.Set(CtxOperatorRoleKey, claims.Role)
			return next(c)
		}
	}
}

// handlerから操作者IDを取り出す
func OperatorID(c echo.Context) (int64, bool) {
	id, ok := c.Get(CtxOperatorIDKey).(int64)
	return id, ok && id > 0
}

func bearerToken(authz string) (string, bool) {
	scheme, raw, found := strings.Cut(authz, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

type errorResponse struct {
	Error string `json:"error"`
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
}
