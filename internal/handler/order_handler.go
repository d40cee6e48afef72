package handler

import (
	"net/http"
	"strconv"
	"time"

	"ordersystem/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	uc  *usecase.OrderUsecase
	pay *usecase.PaymentUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase, pay *usecase.PaymentUsecase) *OrderHandler {
	return &OrderHandler{uc: uc, pay: pay}
}

type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type PaymentRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Paid     bool            `json:"paid"`
	Provider *string         `json:"provider"`
}

type OrderCreateRequest struct {
	CustomerID int64              `json:"customer_id"`
	Note       *string            `json:"note"`
	Items      []OrderItemRequest `json:"items"`
	Payment    *PaymentRequest    `json:"payment"`
}

type OrderCreateResponse struct {
	ID int64 `json:"id"`
}

type SetPaidRequest struct {
	Paid     bool             `json:"paid"`
	Amount   *decimal.Decimal `json:"amount"`
	Provider *string          `json:"provider"`
}

// STAFF以上が使う注文API（groupは認証・ロール済み）
func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders", h.list)
	g.GET("/orders/:id", h.detail)
	g.POST("/orders", h.create)
	g.PUT("/orders/:id/paid", h.setPaid)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	in := usecase.CreateOrderInput{
		CustomerID: req.CustomerID,
		Note:       req.Note,
		Items:      make([]usecase.CreateOrderItemInput, 0, len(req.Items)),
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, usecase.CreateOrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	if req.Payment != nil {
		in.Payment = &usecase.PaymentIntentInput{
			Amount:   req.Payment.Amount,
			Paid:     req.Payment.Paid,
			Provider: req.Payment.Provider,
		}
	}

	id, err := h.uc.CreateOrder(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, OrderCreateResponse{ID: id})
}

func (h *OrderHandler) setPaid(c echo.Context) error {
	orderID, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req SetPaidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//操作したオペレーター（監査ログ用）
	actorID, ok := getOperatorIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.pay.SetOrderPaid(c.Request().Context(), orderID, usecase.SetOrderPaidInput{
		Paid:     req.Paid,
		Amount:   req.Amount,
		Provider: req.Provider,
		ActorID:  actorID,
	}); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *OrderHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	var customerID *int64
	if v := c.QueryParam("customer_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid customer_id"})
		}
		customerID = &id
	}

	var fromPtr *time.Time
	if v := c.QueryParam("from"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		fromPtr = &tm
	}

	var toPtr *time.Time
	if v := c.QueryParam("to"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		toPtr = &tm
	}

	out, err := h.uc.ListOrders(c.Request().Context(), usecase.ListOrdersInput{
		Page:       page,
		Limit:      limit,
		Status:     c.QueryParam("status"),
		CustomerID: customerID,
		From:       fromPtr,
		To:         toPtr,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
