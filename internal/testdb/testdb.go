// Package testdb はテスト用のSQLiteデータベースを用意する。
package testdb

import (
	"path/filepath"
	"testing"

	"ordersystem/internal/domain/model"
	"ordersystem/internal/infra/db"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// t.TempDir()にファイルDBを作ってマイグレーションまで済ませる。
// SQLiteは書き込みがDB単位で直列なので接続は1本に絞る
func New(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	gdb, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func SeedCustomer(t testing.TB, gdb *gorm.DB, first, last, email string) model.Customer {
	t.Helper()
	c := model.Customer{FirstName: first, LastName: last, Email: email}
	if err := gdb.Create(&c).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return c
}

func SeedProduct(t testing.TB, gdb *gorm.DB, name string, price string, stock int64, active bool) model.Product {
	t.Helper()
	p := model.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		IsActive: active,
	}
	if err := gdb.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func Stock(t testing.TB, gdb *gorm.DB, productID int64) int64 {
	t.Helper()
	var p model.Product
	if err := gdb.Select("stock").Where("id = ?", productID).Take(&p).Error; err != nil {
		t.Fatalf("read stock: %v", err)
	}
	return p.Stock
}

func Count(t testing.TB, gdb *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	if err := gdb.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
