package repository

import (
	"context"

	"ordersystem/internal/domain/model"

	"github.com/shopspring/decimal"
)

type OrderItemRepository interface {
	Create(ctx context.Context, item model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)

	// Σ(quantity × unit_price)。明細がなければ0
	SumTotal(ctx context.Context, orderID int64) (decimal.Decimal, error)

	DeleteByOrderID(ctx context.Context, orderID int64) error
}
