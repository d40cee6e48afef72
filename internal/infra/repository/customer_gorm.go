package repository

import (
	"context"

	"ordersystem/internal/domain/model"
	repo "ordersystem/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

// DI
func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

// 顧客一覧
func (r *CustomerGormRepository) List(ctx context.Context) ([]model.Customer, error) {
	var list []model.Customer
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&list).Error; err != nil {
		return nil, translateErr(err)
	}
	return list, nil
}

// 顧客IDで1件取得
func (r *CustomerGormRepository) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	var c model.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return model.Customer{}, translateErr(err)
	}
	return c, nil
}

func (r *CustomerGormRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Customer{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, translateErr(err)
	}
	return count == 1, nil
}

// 顧客を作成
func (r *CustomerGormRepository) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Customer{}, translateErr(err)
	}
	return c, nil
}

// 顧客を更新
func (r *CustomerGormRepository) Update(ctx context.Context, c model.Customer) error {
	result := r.db.WithContext(ctx).
		Model(&model.Customer{}).
		Where("id = ?", c.ID).
		Select(
			"first_name",
			"last_name",
			"email",
			"phone",
		).
		Updates(c)

	if result.Error != nil {
		return translateErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 顧客を削除
func (r *CustomerGormRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Customer{})

	if result.Error != nil {
		return translateErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// emailの一意制約で衝突したら名前と電話番号を上書き
func (r *CustomerGormRepository) UpsertByEmail(ctx context.Context, c model.Customer) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "phone"}),
	}).Create(&c).Error
	return translateErr(err)
}
