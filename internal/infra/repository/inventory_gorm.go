package repository

import (
	"context"

	"ordersystem/internal/domain/model"
	repo "ordersystem/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 商品行をロックして価格・在庫・公開フラグを読む
func (r *InventoryGormRepository) LockAndReadProduct(ctx context.Context, productID int64) (repo.LockedProduct, error) {
	var p model.Product
	err := forUpdate(r.db.WithContext(ctx)).
		Select("id", "price", "stock", "is_active").
		Where("id = ?", productID).
		Take(&p).Error
	if err != nil {
		return repo.LockedProduct{}, translateErr(err)
	}
	return repo.LockedProduct{
		ID:       p.ID,
		Price:    p.Price,
		Stock:    p.Stock,
		IsActive: p.IsActive,
	}, nil
}

// 在庫を減らす（チェック済み前提）
func (r *InventoryGormRepository) DecrementStock(ctx context.Context, productID int64, qty int64) error {
	return r.addStock(ctx, productID, -qty)
}

// 在庫戻し（キャンセル）
func (r *InventoryGormRepository) IncrementStock(ctx context.Context, productID int64, qty int64) error {
	return r.addStock(ctx, productID, qty)
}

func (r *InventoryGormRepository) addStock(ctx context.Context, productID int64, delta int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", delta))

	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
