package repository

import (
	"context"
	"time"

	"ordersystem/internal/domain/model"
)

type OrderListFilter struct {
	Page       int
	Limit      int
	Status     *model.OrderStatus
	CustomerID *int64
	From       *time.Time
	To         *time.Time
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	// 注文行を排他ロックしてステータスを読む。なければErrNotFound
	LockStatus(ctx context.Context, orderID int64) (model.OrderStatus, error)

	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	List(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)
	ExistsForCustomer(ctx context.Context, customerID int64) (bool, error)
	Delete(ctx context.Context, orderID int64) error
}
