package repository

import (
	"context"

	"ordersystem/internal/domain/model"
	repo "ordersystem/internal/repository"

	"gorm.io/gorm"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type auditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) repo.AuditLogRepository {
	return &auditLogGormRepository{db: db}
}

func (r *auditLogGormRepository) Create(ctx context.Context, log model.AuditLog) error {
	return translateErr(r.db.WithContext(ctx).Create(&log).Error)
}

func (r *auditLogGormRepository) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	logs := []model.AuditLog{}
	err := r.db.WithContext(ctx).
		Scopes(auditResource(filter.ResourceType, filter.ResourceID), auditActions(filter.Actions)).
		Order("id DESC").
		Limit(clampAuditLimit(filter.Limit)).
		Offset(max(filter.Offset, 0)).
		Find(&logs).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return logs, nil
}

func auditResource(rt model.AuditResourceType, id int64) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if rt != "" {
			q = q.Where("resource_type = ?", rt)
		}
		if id > 0 {
			q = q.Where("resource_id = ?", id)
		}
		return q
	}
}

func auditActions(actions []model.AuditAction) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if len(actions) == 0 {
			return q
		}
		return q.Where("action IN ?", actions)
	}
}

func clampAuditLimit(limit int) int {
	if limit <= 0 || limit > maxAuditLimit {
		return defaultAuditLimit
	}
	return limit
}
