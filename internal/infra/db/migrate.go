package db

import (
	"ordersystem/internal/domain/model"

	"gorm.io/gorm"
)

// テーブル作成（既存の列は壊さない）
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&model.Customer{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.AuditLog{},
		&model.Operator{},
	)
}
