package repository

import (
	"context"

	"ordersystem/internal/domain/model"
)

// 顧客を保存・取得する窓口
type CustomerRepository interface {
	List(ctx context.Context) ([]model.Customer, error)
	FindByID(ctx context.Context, id int64) (model.Customer, error)
	Exists(ctx context.Context, id int64) (bool, error)

	Create(ctx context.Context, c model.Customer) (model.Customer, error)
	Update(ctx context.Context, c model.Customer) error
	Delete(ctx context.Context, id int64) error

	// emailが同じなら名前と電話番号を上書き、なければ作成（インポート用）
	UpsertByEmail(ctx context.Context, c model.Customer) error
}
