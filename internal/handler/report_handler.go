package handler

import (
	"net/http"
	"strconv"

	"ordersystem/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ReportHandler struct {
	uc *usecase.ReportUsecase
}

func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/reports/top-customers", h.topCustomers)
	g.GET("/reports/product-sales", h.productSales)
	g.GET("/reports/order-totals", h.orderTotals)
}

func (h *ReportHandler) topCustomers(c echo.Context) error {
	// 不正・範囲外はusecase側で既定値に寄せる
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	rows, err := h.uc.TopCustomers(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) productSales(c echo.Context) error {
	rows, err := h.uc.ProductSales(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) orderTotals(c echo.Context) error {
	rows, err := h.uc.OrderTotals(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
