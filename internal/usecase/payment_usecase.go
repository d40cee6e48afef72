package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"ordersystem/internal/domain/model"
	repo "ordersystem/internal/repository"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type PaymentUsecase struct {
	tx    repo.TransactionManager
	clock Clock
}

func NewPaymentUsecase(tx repo.TransactionManager, clock Clock) *PaymentUsecase {
	if clock == nil {
		clock = SystemClock{}
	}
	return &PaymentUsecase{tx: tx, clock: clock}
}

type SetOrderPaidInput struct {
	Paid bool
	// nilなら明細から合計を計算する
	Amount   *decimal.Decimal
	Provider *string
	// 操作したオペレーター（監査ログ用）
	ActorID int64
}

// 監査ログに残す支払い状態
type paymentAudit struct {
	Status   model.OrderStatus `json:"status"`
	Paid     bool              `json:"paid"`
	Amount   *decimal.Decimal  `json:"amount,omitempty"`
	Provider *string           `json:"provider,omitempty"`
}

// 支払い済み/未払いの切り替え。キャンセル済みの注文は変更不可
func (u *PaymentUsecase) SetOrderPaid(ctx context.Context, orderID int64, in SetOrderPaidInput) (err error) {
	ctx, span := tracer.Start(ctx, "PaymentUsecase.SetOrderPaid", trace.WithAttributes(
		attribute.Int64("order.id", orderID),
		attribute.Bool("payment.paid", in.Paid),
	))
	defer func() { endSpan(span, err) }()

	if orderID <= 0 {
		return NewValidationError("invalid id")
	}
	if in.Amount != nil && in.Amount.IsNegative() {
		return NewValidationError("amount must be >= 0")
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		status, err := r.Orders().LockStatus(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("order %d not found", orderID)
		}
		if err != nil {
			return NewInfraError(err)
		}
		if status.Is(model.OrderStatusCancelled) {
			return NewBusinessError("order %d is cancelled", orderID)
		}

		pay, found, err := r.Payments().LockLatest(ctx, orderID)
		if err != nil {
			return NewInfraError(err)
		}

		before := paymentAudit{Status: status}
		if found {
			before.Paid = pay.Paid
			before.Amount = &pay.Amount
			before.Provider = pay.Provider
		}
		after := paymentAudit{Paid: in.Paid}
		action := model.AuditActionSetUnpaid

		if in.Paid {
			//金額は毎回計算し直す（前回の値は使わない）
			var amount decimal.Decimal
			if in.Amount != nil {
				amount = *in.Amount
			} else {
				amount, err = r.OrderItems().SumTotal(ctx, orderID)
				if err != nil {
					return NewInfraError(err)
				}
			}

			now := u.clock.Now()
			if found {
				err = r.Payments().MarkPaid(ctx, pay.ID, amount, in.Provider, now)
			} else {
				_, err = r.Payments().Create(ctx, model.Payment{
					OrderID:  orderID,
					Amount:   amount,
					Paid:     true,
					PaidAt:   &now,
					Provider: in.Provider,
				})
			}
			if err != nil {
				return NewInfraError(err)
			}
			if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusPaid); err != nil {
				return NewInfraError(err)
			}

			after.Status = model.OrderStatusPaid
			after.Amount = &amount
			after.Provider = in.Provider
			action = model.AuditActionSetPaid
		} else {
			//amount/providerはそのまま
			if found {
				if err := r.Payments().MarkUnpaid(ctx, pay.ID); err != nil {
					return NewInfraError(err)
				}
				after.Amount = before.Amount
				after.Provider = before.Provider
			}
			if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusNew); err != nil {
				return NewInfraError(err)
			}
			after.Status = model.OrderStatusNew
		}

		return writeOrderAudit(ctx, r.AuditLogs(), in.ActorID, action, orderID, before, after, u.clock)
	})
	return wrapTxErr(err)
}

// 注文の監査ログを同じトランザクションで書く
func writeOrderAudit(ctx context.Context, logs repo.AuditLogRepository, actorID int64, action model.AuditAction, orderID int64, before, after any, clock Clock) error {
	beforeJSON, err := json.Marshal(before)
	if err != nil {
		return NewInfraError(err)
	}
	afterJSON, err := json.Marshal(after)
	if err != nil {
		return NewInfraError(err)
	}
	if err := logs.Create(ctx, model.AuditLog{
		ActorID:      actorID,
		Action:       action,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    clock.Now(),
	}); err != nil {
		return NewInfraError(err)
	}
	return nil
}
