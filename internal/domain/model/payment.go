package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 支払い。1注文に複数行ありうるが、業務ロジックは常に最新（id DESC）の1行だけを扱う
type Payment struct {
	ID       int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID  int64           `gorm:"not null;index" json:"order_id"`
	Amount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Paid     bool            `gorm:"not null;default:false" json:"paid"`
	PaidAt   *time.Time      `json:"paid_at"`
	Provider *string         `gorm:"type:varchar(100)" json:"provider"`
}
