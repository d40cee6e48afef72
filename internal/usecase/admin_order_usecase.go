package usecase

import (
	"context"
	"errors"

	"ordersystem/internal/domain/model"
	repo "ordersystem/internal/repository"
)

type AdminOrderUsecase struct {
	tx        repo.TransactionManager
	auditRepo repo.AuditLogRepository
	clock     Clock
}

func NewAdminOrderUsecase(tx repo.TransactionManager, auditRepo repo.AuditLogRepository, clock Clock) *AdminOrderUsecase {
	if clock == nil {
		clock = SystemClock{}
	}
	return &AdminOrderUsecase{tx: tx, auditRepo: auditRepo, clock: clock}
}

type orderStatusAudit struct {
	Status model.OrderStatus `json:"status"`
}

// 注文キャンセル（在庫戻し）。すでにキャンセル済みなら何もしない
func (u *AdminOrderUsecase) CancelOrder(ctx context.Context, actorID int64, orderID int64) error {
	if actorID <= 0 {
		return NewUnauthorizedError("unauthorized")
	}
	if orderID <= 0 {
		return NewValidationError("invalid id")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		status, err := r.Orders().LockStatus(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("order %d not found", orderID)
		}
		if err != nil {
			return NewInfraError(err)
		}

		// すでに同じなら何もしない（200）
		if status.Is(model.OrderStatusCancelled) {
			return nil
		}

		if err := restockItems(ctx, r, orderID); err != nil {
			return err
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			return NewInfraError(err)
		}

		return writeOrderAudit(ctx, r.AuditLogs(), actorID, model.AuditActionCancelOrder, orderID,
			orderStatusAudit{Status: status},
			orderStatusAudit{Status: model.OrderStatusCancelled},
			u.clock)
	})
	return wrapTxErr(err)
}

// 注文削除。キャンセル済みでなければ在庫を戻してから支払い・明細・注文を消す
func (u *AdminOrderUsecase) DeleteOrder(ctx context.Context, actorID int64, orderID int64) error {
	if actorID <= 0 {
		return NewUnauthorizedError("unauthorized")
	}
	if orderID <= 0 {
		return NewValidationError("invalid id")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		status, err := r.Orders().LockStatus(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("order %d not found", orderID)
		}
		if err != nil {
			return NewInfraError(err)
		}

		// キャンセル済みなら在庫は戻し済み
		if !status.Is(model.OrderStatusCancelled) {
			if err := restockItems(ctx, r, orderID); err != nil {
				return err
			}
		}

		if err := r.Payments().DeleteByOrderID(ctx, orderID); err != nil {
			return NewInfraError(err)
		}
		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return NewInfraError(err)
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return NewInfraError(err)
		}

		return writeOrderAudit(ctx, r.AuditLogs(), actorID, model.AuditActionDeleteOrder, orderID,
			orderStatusAudit{Status: status},
			struct{}{},
			u.clock)
	})
	return wrapTxErr(err)
}

func restockItems(ctx context.Context, r repo.TxRepos, orderID int64) error {
	items, err := r.OrderItems().ListByOrderID(ctx, orderID)
	if err != nil {
		return NewInfraError(err)
	}
	for _, it := range items {
		// 商品が消えていたら戻し先がないので飛ばす
		if err := r.Inventory().IncrementStock(ctx, it.ProductID, it.Quantity); err != nil && !errors.Is(err, repo.ErrNotFound) {
			return NewInfraError(err)
		}
	}
	return nil
}

// 注文の監査ログ（新しい順）
func (u *AdminOrderUsecase) ListAuditLogs(ctx context.Context, orderID int64, limit, offset int) ([]model.AuditLog, error) {
	if orderID <= 0 {
		return []model.AuditLog{}, NewValidationError("invalid id")
	}
	if limit < 0 || offset < 0 {
		return []model.AuditLog{}, NewValidationError("invalid limit/offset")
	}

	logs, err := u.auditRepo.List(ctx, repo.AuditLogFilter{
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return []model.AuditLog{}, NewInfraError(err)
	}
	return logs, nil
}
