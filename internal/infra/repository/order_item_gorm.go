package repository

import (
	"context"

	"ordersystem/internal/domain/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) Create(ctx context.Context, item model.OrderItem) error {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return translateErr(err)
	}
	return nil
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("product_id asc").Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, translateErr(err)
	}
	return items, nil
}

// 合計はDB側で計算する（numericのまま）
func (r *OrderItemGormRepository) SumTotal(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Select("COALESCE(SUM(quantity * unit_price), 0)").
		Where("order_id = ?", orderID).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, translateErr(err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *OrderItemGormRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&model.OrderItem{}).Error; err != nil {
		return translateErr(err)
	}
	return nil
}
