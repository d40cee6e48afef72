package repository

import (
	"context"
	"time"

	"ordersystem/internal/domain/model"

	"github.com/shopspring/decimal"
)

type PaymentRepository interface {
	// 最新の支払い行を排他ロックして読む。なければfound=false
	LockLatest(ctx context.Context, orderID int64) (p model.Payment, found bool, err error)

	// ロックなしで最新の支払い行を読む（参照用）
	FindLatest(ctx context.Context, orderID int64) (p model.Payment, found bool, err error)

	Create(ctx context.Context, p model.Payment) (int64, error)

	// paid=true, paid_at, amount, providerを上書き
	MarkPaid(ctx context.Context, paymentID int64, amount decimal.Decimal, provider *string, paidAt time.Time) error

	// paid=false, paid_at=NULL（amount/providerはそのまま）
	MarkUnpaid(ctx context.Context, paymentID int64) error

	DeleteByOrderID(ctx context.Context, orderID int64) error
}
