package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"ordersystem/internal/domain/model"
	repo "ordersystem/internal/repository"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("ordersystem/internal/usecase")

type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	items  repo.OrderItemRepository
	pays   repo.PaymentRepository
	clock  Clock

	// trueなら明細の商品ロックをID昇順で先に取る
	lockSorted bool
}

type OrderUsecaseOption func(*OrderUsecase)

func WithSortedLocks(on bool) OrderUsecaseOption {
	return func(u *OrderUsecase) { u.lockSorted = on }
}

func WithClock(c Clock) OrderUsecaseOption {
	return func(u *OrderUsecase) { u.clock = c }
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	items repo.OrderItemRepository,
	pays repo.PaymentRepository,
	opts ...OrderUsecaseOption,
) *OrderUsecase {
	u := &OrderUsecase{tx: tx, orders: orders, items: items, pays: pays, clock: SystemClock{}}
	for _, o := range opts {
		o(u)
	}
	return u
}

type CreateOrderItemInput struct {
	ProductID int64
	Quantity  int64
}

type PaymentIntentInput struct {
	Amount   decimal.Decimal
	Paid     bool
	Provider *string
}

type CreateOrderInput struct {
	CustomerID int64
	Note       *string
	Items      []CreateOrderItemInput
	Payment    *PaymentIntentInput
}

// 入力チェック（ストアに触る前）
func (in CreateOrderInput) validate() error {
	if in.CustomerID <= 0 {
		return NewValidationError("invalid customer_id")
	}
	if len(in.Items) == 0 {
		return NewValidationError("items must not be empty")
	}
	for i, it := range in.Items {
		if it.ProductID <= 0 {
			return NewValidationError("items[%d]: invalid product_id", i)
		}
		if it.Quantity <= 0 {
			return NewValidationError("items[%d]: quantity must be > 0", i)
		}
	}
	if in.Payment != nil && in.Payment.Amount.IsNegative() {
		return NewValidationError("payment amount must be >= 0")
	}
	return nil
}

// 注文作成。ヘッダ・明細・在庫減算・支払いを1トランザクションで行い、途中で失敗したら全部戻す
func (u *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (orderID int64, err error) {
	ctx, span := tracer.Start(ctx, "OrderUsecase.CreateOrder", trace.WithAttributes(
		attribute.Int64("order.customer_id", in.CustomerID),
		attribute.Int("order.items", len(in.Items)),
	))
	defer func() { endSpan(span, err) }()

	if err := in.validate(); err != nil {
		return 0, err
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ok, err := r.Customers().Exists(ctx, in.CustomerID)
		if err != nil {
			return NewInfraError(err)
		}
		if !ok {
			return NewNotFoundError("customer %d not found", in.CustomerID)
		}

		now := u.clock.Now()

		//ヘッダ
		id, err := r.Orders().Create(ctx, model.Order{
			CustomerID: in.CustomerID,
			Status:     model.OrderStatusNew,
			Note:       in.Note,
			CreatedAt:  now,
		})
		if err != nil {
			return NewInfraError(err)
		}

		if u.lockSorted {
			if err := lockProductsSorted(ctx, r.Inventory(), in.Items); err != nil {
				return err
			}
		}

		//明細（行ロック→チェック→スナップショット→在庫減算）
		for _, it := range in.Items {
			p, err := r.Inventory().LockAndReadProduct(ctx, it.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewNotFoundError("product %d not found", it.ProductID)
			}
			if err != nil {
				return NewInfraError(err)
			}
			if !p.IsActive {
				return NewBusinessError("product %d is inactive", it.ProductID)
			}
			if p.Stock < it.Quantity {
				return NewBusinessError("insufficient stock for product %d: stock=%d, requested=%d", it.ProductID, p.Stock, it.Quantity)
			}

			if err := r.OrderItems().Create(ctx, model.OrderItem{
				OrderID:   id,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: p.Price,
			}); err != nil {
				return NewInfraError(err)
			}
			if err := r.Inventory().DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
				return NewInfraError(err)
			}
		}

		//支払い
		if pi := in.Payment; pi != nil {
			pay := model.Payment{
				OrderID:  id,
				Amount:   pi.Amount,
				Paid:     pi.Paid,
				Provider: pi.Provider,
			}
			if pi.Paid {
				pay.PaidAt = &now
			}
			if _, err := r.Payments().Create(ctx, pay); err != nil {
				return NewInfraError(err)
			}
			if pi.Paid {
				if err := r.Orders().UpdateStatus(ctx, id, model.OrderStatusPaid); err != nil {
					return NewInfraError(err)
				}
			}
		}

		orderID = id
		return nil
	})
	if err != nil {
		return 0, wrapTxErr(err)
	}
	span.SetAttributes(attribute.Int64("order.id", orderID))
	return orderID, nil
}

// 重複を除いた商品IDを昇順でロックしておく。
// ループ側は同じトランザクション内なので同じ行を読み直しても待たない
func lockProductsSorted(ctx context.Context, inv repo.InventoryRepository, items []CreateOrderItemInput) error {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		_, err := inv.LockAndReadProduct(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("product %d not found", id)
		}
		if err != nil {
			return NewInfraError(err)
		}
	}
	return nil
}

type OrderDetailOutput struct {
	ID         int64             `json:"id"`
	CustomerID int64             `json:"customer_id"`
	Status     model.OrderStatus `json:"status"`
	Note       *string           `json:"note"`
	CreatedAt  time.Time         `json:"created_at"`
	Items      []model.OrderItem `json:"items"`
	Payment    *model.Payment    `json:"payment"`
	Total      decimal.Decimal   `json:"total"`
}

// 注文詳細（明細・最新の支払い・合計）
func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (OrderDetailOutput, error) {
	if orderID <= 0 {
		return OrderDetailOutput{}, NewValidationError("invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderDetailOutput{}, NewNotFoundError("order %d not found", orderID)
	}
	if err != nil {
		return OrderDetailOutput{}, NewInfraError(err)
	}

	items, err := u.items.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderDetailOutput{}, NewInfraError(err)
	}

	out := OrderDetailOutput{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		Note:       o.Note,
		CreatedAt:  o.CreatedAt,
		Items:      items,
		Total:      decimal.Zero,
	}
	for _, it := range items {
		out.Total = out.Total.Add(it.LineTotal())
	}

	p, found, err := u.pays.FindLatest(ctx, orderID)
	if err != nil {
		return OrderDetailOutput{}, NewInfraError(err)
	}
	if found {
		out.Payment = &p
	}
	return out, nil
}

type ListOrdersInput struct {
	Page       int
	Limit      int
	Status     string
	CustomerID *int64
	From       *time.Time
	To         *time.Time
}

type OrderListOutput struct {
	Items []model.Order `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// 注文一覧
func (u *OrderUsecase) ListOrders(ctx context.Context, in ListOrdersInput) (OrderListOutput, error) {
	// page/limitの最低限チェック
	if in.Page < 1 {
		return OrderListOutput{}, NewValidationError("invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return OrderListOutput{}, NewValidationError("invalid limit")
	}
	if in.From != nil && in.To != nil && in.From.After(*in.To) {
		return OrderListOutput{}, NewValidationError("from must be <= to")
	}

	f := repo.OrderListFilter{
		Page:       in.Page,
		Limit:      in.Limit,
		CustomerID: in.CustomerID,
		From:       in.From,
		To:         in.To,
	}
	if in.Status != "" {
		st, ok := model.ParseOrderStatus(in.Status)
		if !ok {
			return OrderListOutput{}, NewValidationError("invalid status")
		}
		f.Status = &st
	}

	orders, total, err := u.orders.List(ctx, f)
	if err != nil {
		return OrderListOutput{}, NewInfraError(err)
	}
	return OrderListOutput{Items: orders, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
