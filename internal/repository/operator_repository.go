package repository

import (
	"context"
	"time"

	"ordersystem/internal/domain/model"
)

type OperatorRepository interface {
	// 見つからなければErrNotFound
	FindByEmail(ctx context.Context, email string) (model.Operator, error)
	Create(ctx context.Context, op model.Operator) (model.Operator, error)
	Update(ctx context.Context, op model.Operator) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}
