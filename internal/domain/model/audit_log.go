package model

import "time"

// 支払い切り替え、キャンセルなど。
type AuditAction string

const (
	//支払い済みにした操作。
	AuditActionSetPaid AuditAction = "SET_PAID"
	//未払いに戻した操作。
	AuditActionSetUnpaid AuditAction = "SET_UNPAID"
	//注文をキャンセルした操作（在庫戻しあり）。
	AuditActionCancelOrder AuditAction = "CANCEL_ORDER"
	//注文を削除した操作。
	AuditActionDeleteOrder AuditAction = "DELETE_ORDER"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceOrder AuditResourceType = "order"
)

// 監査ログ。注文の状態遷移を追記専用で残す。
// 「誰が」「何を」「どの対象に」「どう変えたか」
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作したオペレーターのID（0はシステム）。
	ActorID int64 `gorm:"not null;index" json:"actor_id"`

	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`

	ResourceID int64 `gorm:"not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
