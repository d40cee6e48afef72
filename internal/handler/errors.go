package handler

import (
	"errors"
	"net/http"
	"strconv"

	"ordersystem/internal/middleware"
	"ordersystem/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// usecaseのエラーをHTTPに変換する。ストアの生エラーはログだけに出す
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	e, ok := usecase.AsError(err)
	if !ok {
		c.Logger().Errorf("unexpected error: %v", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	switch e.Kind {
	case usecase.KindValidation:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: e.Message})
	case usecase.KindUnauthorized:
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: e.Message})
	case usecase.KindNotFound:
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: e.Message})
	case usecase.KindBusinessRule:
		return c.JSON(http.StatusConflict, ErrorResponse{Error: e.Message})
	}

	//infra
	c.Logger().Errorf("store error (retryable=%t): %v", e.Retryable, errors.Unwrap(e))
	if e.Retryable {
		c.Response().Header().Set("Retry-After", "1")
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "temporarily unavailable, retry"})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// :idを正の整数として読む
func parseIDParam(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func getOperatorIDFromContext(c echo.Context) (int64, bool) {
	return middleware.OperatorID(c)
}
