package repository

import (
	"context"

	"ordersystem/internal/domain/model"
)

// 監査ログの検索条件。ゼロ値の項目は絞り込まない
type AuditLogFilter struct {
	ResourceType model.AuditResourceType
	ResourceID   int64
	Actions      []model.AuditAction
	Limit        int
	Offset       int
}

// 注文の状態変更を記録する。書き込みは変更と同じトランザクションで行う
type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	// 新しい順
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
