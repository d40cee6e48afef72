package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TopCustomerRow struct {
	CustomerID   int64           `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	OrdersCount  int64           `json:"orders_count"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
}

type ProductSalesRow struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	QtySold   int64           `json:"qty_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type OrderTotalRow struct {
	OrderID      int64           `json:"order_id"`
	CustomerID   int64           `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// 集計（読み取り専用）
type ReportRepository interface {
	TopCustomers(ctx context.Context, limit int) ([]TopCustomerRow, error)
	ProductSales(ctx context.Context) ([]ProductSalesRow, error)
	OrderTotals(ctx context.Context) ([]OrderTotalRow, error)
}
