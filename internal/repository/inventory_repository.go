package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// 行ロックを取ったときの商品の状態
type LockedProduct struct {
	ID       int64
	Price    decimal.Decimal
	Stock    int64
	IsActive bool
}

type InventoryRepository interface {
	// 商品行を排他ロックして読む（SELECT ... FOR UPDATE）。なければErrNotFound
	LockAndReadProduct(ctx context.Context, productID int64) (LockedProduct, error)

	// 在庫を無条件に減らす。残量チェックは同じロックの下で呼び出し側が済ませていること
	DecrementStock(ctx context.Context, productID int64, qty int64) error

	// 在庫戻し（キャンセル・削除）
	IncrementStock(ctx context.Context, productID int64, qty int64) error
}
