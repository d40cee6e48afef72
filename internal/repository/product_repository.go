package repository

import (
	"context"

	"ordersystem/internal/domain/model"
)

// 一覧検索
type ProductListQuery struct {
	Q      string
	Active *bool
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error

	// 注文明細から参照されているか
	IsReferenced(ctx context.Context, id int64) (bool, error)

	// nameが同じなら上書き、なければ作成（インポート用）
	UpsertByName(ctx context.Context, p model.Product) error
}
