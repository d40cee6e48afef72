package repository

import (
	"context"
	"time"

	"ordersystem/internal/domain/model"
	repo "ordersystem/internal/repository"

	"gorm.io/gorm"
)

type OperatorGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewOperatorGormRepository(db *gorm.DB) *OperatorGormRepository {
	return &OperatorGormRepository{db: db}
}

// オペレーターを新規作成
func (r *OperatorGormRepository) Create(ctx context.Context, op model.Operator) (model.Operator, error) {
	if err := r.db.WithContext(ctx).Create(&op).Error; err != nil {
		return model.Operator{}, translateErr(err)
	}
	return op, nil
}

// emailで1件取得
func (r *OperatorGormRepository) FindByEmail(ctx context.Context, email string) (model.Operator, error) {
	var op model.Operator

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&op).Error
	if err != nil {
		return model.Operator{}, translateErr(err)
	}

	return op, nil
}

// 更新。
func (r *OperatorGormRepository) Update(ctx context.Context, op model.Operator) error {
	res := r.db.WithContext(ctx).
		Model(&model.Operator{}).
		Where("id = ?", op.ID).
		Select("email", "password_hash", "role", "is_active").
		Updates(op)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 最終ログイン日時を記録
func (r *OperatorGormRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.Operator{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at)

	if res.Error != nil {
		return translateErr(res.Error)
	}

	// 0件更新は「対象がない」
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
