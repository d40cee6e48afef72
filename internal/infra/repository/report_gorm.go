package repository

import (
	"context"
	"time"

	repo "ordersystem/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportGormRepository struct {
	db *gorm.DB
}

func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{db: db}
}

// 氏名の連結はDB方言に依存しないようGo側で行う
type topCustomerScan struct {
	CustomerID  int64
	FirstName   string
	LastName    string
	OrdersCount int64
	TotalSpent  decimal.Decimal
}

// 売上上位の顧客（注文なしの顧客も0で含む）
func (r *ReportGormRepository) TopCustomers(ctx context.Context, limit int) ([]repo.TopCustomerRow, error) {
	var rows []topCustomerScan
	err := r.db.WithContext(ctx).Raw(`
		SELECT
		  c.id AS customer_id,
		  c.first_name AS first_name,
		  c.last_name AS last_name,
		  COUNT(DISTINCT o.id) AS orders_count,
		  COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS total_spent
		FROM customers c
		LEFT JOIN orders o ON o.customer_id = c.id
		LEFT JOIN order_items oi ON oi.order_id = o.id
		GROUP BY c.id, c.first_name, c.last_name
		ORDER BY total_spent DESC, c.id ASC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, translateErr(err)
	}

	out := make([]repo.TopCustomerRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, repo.TopCustomerRow{
			CustomerID:   row.CustomerID,
			CustomerName: row.FirstName + " " + row.LastName,
			OrdersCount:  row.OrdersCount,
			TotalSpent:   row.TotalSpent,
		})
	}
	return out, nil
}

// 商品別の販売数と売上（未販売の商品も0で含む）
func (r *ReportGormRepository) ProductSales(ctx context.Context) ([]repo.ProductSalesRow, error) {
	rows := []repo.ProductSalesRow{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
		  p.id AS product_id,
		  p.name AS name,
		  COALESCE(SUM(oi.quantity), 0) AS qty_sold,
		  COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS revenue
		FROM products p
		LEFT JOIN order_items oi ON oi.product_id = p.id
		GROUP BY p.id, p.name
		ORDER BY revenue DESC, p.id ASC`).Scan(&rows).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return rows, nil
}

type orderTotalScan struct {
	OrderID     int64
	CustomerID  int64
	FirstName   string
	LastName    string
	Status      string
	CreatedAt   time.Time
	TotalAmount decimal.Decimal
}

// 注文ごとの合計（新しい順）
func (r *ReportGormRepository) OrderTotals(ctx context.Context) ([]repo.OrderTotalRow, error) {
	var rows []orderTotalScan
	err := r.db.WithContext(ctx).Raw(`
		SELECT
		  o.id AS order_id,
		  c.id AS customer_id,
		  c.first_name AS first_name,
		  c.last_name AS last_name,
		  o.state AS status,
		  o.created_at AS created_at,
		  COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS total_amount
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		LEFT JOIN order_items oi ON oi.order_id = o.id
		GROUP BY o.id, c.id, c.first_name, c.last_name, o.state, o.created_at
		ORDER BY o.id DESC`).Scan(&rows).Error
	if err != nil {
		return nil, translateErr(err)
	}

	out := make([]repo.OrderTotalRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, repo.OrderTotalRow{
			OrderID:      row.OrderID,
			CustomerID:   row.CustomerID,
			CustomerName: row.FirstName + " " + row.LastName,
			Status:       row.Status,
			CreatedAt:    row.CreatedAt,
			TotalAmount:  row.TotalAmount,
		})
	}
	return out, nil
}
