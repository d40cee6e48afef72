package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// 注文ステータス（DBには小文字で保存、比較は大文字小文字を区別しない）
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// 文字列からステータスへ。未知の値はfalse
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case OrderStatusNew, OrderStatusPaid, OrderStatusCancelled:
		return st, true
	default:
		return "", false
	}
}

func (s OrderStatus) Is(other OrderStatus) bool {
	return strings.EqualFold(string(s), string(other))
}

// 読み込み時に小文字へ正規化する
func (s *OrderStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = OrderStatus(strings.ToLower(v))
	case []byte:
		*s = OrderStatus(strings.ToLower(string(v)))
	case nil:
		*s = ""
	default:
		return fmt.Errorf("unsupported order status type %T", value)
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return strings.ToLower(string(s)), nil
}

type Order struct {
	ID         int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64       `gorm:"not null;index" json:"customer_id"`
	Status     OrderStatus `gorm:"column:state;type:varchar(20);not null;default:'new';index" json:"status"`
	Note       *string     `gorm:"type:text" json:"note"`
	CreatedAt  time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
}
