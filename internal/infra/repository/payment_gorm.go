package repository

import (
	"context"
	"errors"
	"time"

	"ordersystem/internal/domain/model"
	repo "ordersystem/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) LockLatest(ctx context.Context, orderID int64) (model.Payment, bool, error) {
	return r.latest(forUpdate(r.db.WithContext(ctx)), orderID)
}

func (r *PaymentGormRepository) FindLatest(ctx context.Context, orderID int64) (model.Payment, bool, error) {
	return r.latest(r.db.WithContext(ctx), orderID)
}

// 最新はid DESCの先頭
func (r *PaymentGormRepository) latest(q *gorm.DB, orderID int64) (model.Payment, bool, error) {
	var p model.Payment
	err := q.Where("order_id = ?", orderID).Order("id desc").Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Payment{}, false, nil
	}
	if err != nil {
		return model.Payment{}, false, translateErr(err)
	}
	return p, true, nil
}

func (r *PaymentGormRepository) Create(ctx context.Context, p model.Payment) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return 0, translateErr(err)
	}
	return p.ID, nil
}

func (r *PaymentGormRepository) MarkPaid(ctx context.Context, paymentID int64, amount decimal.Decimal, provider *string, paidAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ?", paymentID).
		Updates(map[string]interface{}{
			"paid":     true,
			"paid_at":  paidAt,
			"amount":   amount,
			"provider": provider,
		})
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PaymentGormRepository) MarkUnpaid(ctx context.Context, paymentID int64) error {
	res := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ?", paymentID).
		Updates(map[string]interface{}{
			"paid":    false,
			"paid_at": nil,
		})
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PaymentGormRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&model.Payment{}).Error; err != nil {
		return translateErr(err)
	}
	return nil
}
